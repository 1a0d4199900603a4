package usecase

import (
	"sort"
	"time"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// distinctServices retorna os serviços na ordem da primeira aparição.
func distinctServices(records []entity.CostRecord) []string {
	seen := make(map[string]bool)
	var services []string
	for _, r := range records {
		if !seen[r.Service] {
			seen[r.Service] = true
			services = append(services, r.Service)
		}
	}
	return services
}

// dailySeries soma o custo de um serviço por data e ordena cronologicamente.
func dailySeries(records []entity.CostRecord, service string) []entity.Observation {
	totals := make(map[int64]decimal.Decimal)
	for _, r := range records {
		if r.Service != service {
			continue
		}
		key := r.Date.Unix()
		totals[key] = totals[key].Add(decimal.NewFromFloat(r.CostUSD))
	}

	series := make([]entity.Observation, 0, len(totals))
	for sec, total := range totals {
		series = append(series, entity.Observation{Date: time.Unix(sec, 0).UTC(), Value: total.InexactFloat64()})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}

// TotalCost sums cost_usd over all records.
func TotalCost(records []entity.CostRecord) float64 {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.CostUSD))
	}
	return total.InexactFloat64()
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
