package usecase

import (
	"sort"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/diillson/cloud-cost-ai-go/pkg/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DriverAnalyzer ranks (service, region) pairs by total spend. The report is
// computed once and reused until Reset is called.
type DriverAnalyzer struct {
	records []entity.CostRecord
	topN    int
	log     *zap.Logger

	report *entity.DriverReport
}

// NewDriverAnalyzer cria o analisador. topN <= 0 usa o padrão de 10.
func NewDriverAnalyzer(records []entity.CostRecord, topN int) *DriverAnalyzer {
	if topN <= 0 {
		topN = types.DefaultDriverTopN
	}
	return &DriverAnalyzer{
		records: records,
		topN:    topN,
		log:     logging.Named("DriverAnalyzer"),
	}
}

// AnalyzeCostDrivers agrupa por (serviço, região), soma o custo e devolve os
// topN maiores. Empates são resolvidos por serviço e depois região.
func (a *DriverAnalyzer) AnalyzeCostDrivers() *entity.DriverReport {
	if a.report != nil {
		return a.report
	}

	type groupKey struct{ service, region string }
	totals := make(map[groupKey]decimal.Decimal)
	var order []groupKey
	for _, r := range a.records {
		k := groupKey{r.Service, r.Region}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] = totals[k].Add(decimal.NewFromFloat(r.CostUSD))
	}

	drivers := make([]entity.CostDriver, 0, len(order))
	for _, k := range order {
		drivers = append(drivers, entity.CostDriver{
			Service:      k.service,
			Region:       k.region,
			TotalCostUSD: totals[k].InexactFloat64(),
		})
	}

	sort.SliceStable(drivers, func(i, j int) bool {
		if drivers[i].TotalCostUSD != drivers[j].TotalCostUSD {
			return drivers[i].TotalCostUSD > drivers[j].TotalCostUSD
		}
		if drivers[i].Service != drivers[j].Service {
			return drivers[i].Service < drivers[j].Service
		}
		return drivers[i].Region < drivers[j].Region
	})
	if len(drivers) > a.topN {
		drivers = drivers[:a.topN]
	}

	a.report = &entity.DriverReport{Drivers: drivers}
	a.log.Info("cost driver analysis completed",
		zap.Int("groups", len(order)),
		zap.Int("reported", len(drivers)))
	return a.report
}

// Reset descarta o relatório em cache.
func (a *DriverAnalyzer) Reset() {
	a.report = nil
}
