package usecase

import (
	"fmt"
	"sort"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/diillson/cloud-cost-ai-go/pkg/logging"
	"go.uber.org/zap"
)

// serviceAdvice é a tabela estática de recomendações por serviço.
var serviceAdvice = map[string]string{
	"EC2":          "EC2 optimization: use Reserved/Spot Instances and right-size instance types.",
	"RDS":          "RDS optimization: enable storage autoscaling and Reserved Instances.",
	"S3":           "S3 optimization: apply lifecycle policies and move cold data to Glacier.",
	"Lambda":       "Lambda optimization: reduce memory over-allocation and execution duration.",
	"DataTransfer": "Data transfer optimization: use regional endpoints and reduce cross-region traffic.",
}

const genericAdviceFormat = "%s optimization: review usage and apply cost controls."

// AdviceFor returns the recommendation for a service, falling back to the
// generic message for services outside the table.
func AdviceFor(service string) string {
	if advice, ok := serviceAdvice[service]; ok {
		return advice
	}
	return fmt.Sprintf(genericAdviceFormat, service)
}

// OptimizationAdvisor turns the most expensive services of a DriverReport into
// recommendations. The result is cached until Reset.
type OptimizationAdvisor struct {
	drivers *entity.DriverReport
	topN    int
	log     *zap.Logger

	recommendations []string
}

// NewOptimizationAdvisor cria o advisor. topN <= 0 usa o padrão de 3.
func NewOptimizationAdvisor(drivers *entity.DriverReport, topN int) *OptimizationAdvisor {
	if topN <= 0 {
		topN = types.DefaultAdviceTopN
	}
	return &OptimizationAdvisor{
		drivers: drivers,
		topN:    topN,
		log:     logging.Named("OptimizationAdvisor"),
	}
}

// RecommendSavings returns the deduplicated advice for the topN services,
// sorted for display.
func (o *OptimizationAdvisor) RecommendSavings() []string {
	if o.recommendations != nil {
		return o.recommendations
	}

	unique := make(map[string]struct{})
	for _, service := range o.topServices() {
		unique[AdviceFor(service)] = struct{}{}
	}

	recommendations := make([]string, 0, len(unique))
	for advice := range unique {
		recommendations = append(recommendations, advice)
	}
	sort.Strings(recommendations)

	o.recommendations = recommendations
	o.log.Info("optimization recommendations generated", zap.Int("count", len(recommendations)))
	return o.recommendations
}

// Reset descarta as recomendações em cache.
func (o *OptimizationAdvisor) Reset() {
	o.recommendations = nil
}

func (o *OptimizationAdvisor) topServices() []string {
	if o.drivers == nil {
		return nil
	}

	totals := make(map[string]float64)
	var services []string
	for _, d := range o.drivers.Drivers {
		if _, ok := totals[d.Service]; !ok {
			services = append(services, d.Service)
		}
		totals[d.Service] += d.TotalCostUSD
	}

	sort.SliceStable(services, func(i, j int) bool {
		if totals[services[i]] != totals[services[j]] {
			return totals[services[i]] > totals[services[j]]
		}
		return services[i] < services[j]
	})
	if len(services) > o.topN {
		services = services[:o.topN]
	}
	return services
}
