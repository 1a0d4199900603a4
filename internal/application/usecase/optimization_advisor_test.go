package usecase

import (
	"testing"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func drivers(ds ...entity.CostDriver) *entity.DriverReport {
	return &entity.DriverReport{Drivers: ds}
}

func TestRecommendSavings(t *testing.T) {
	t.Run("TopServicesOnly", func(t *testing.T) {
		report := drivers(
			entity.CostDriver{Service: "EC2", Region: "us-east-1", TotalCostUSD: 500},
			entity.CostDriver{Service: "S3", Region: "us-east-1", TotalCostUSD: 300},
			entity.CostDriver{Service: "EC2", Region: "eu-west-1", TotalCostUSD: 100},
			entity.CostDriver{Service: "RDS", Region: "us-east-1", TotalCostUSD: 200},
			entity.CostDriver{Service: "Lambda", Region: "us-east-1", TotalCostUSD: 10},
		)

		got := NewOptimizationAdvisor(report, 2).RecommendSavings()
		assert.Equal(t, []string{AdviceFor("EC2"), AdviceFor("S3")}, got)
	})

	t.Run("DeduplicatesAdvice", func(t *testing.T) {
		report := drivers(
			entity.CostDriver{Service: "EC2", Region: "us-east-1", TotalCostUSD: 30},
			entity.CostDriver{Service: "EC2", Region: "eu-west-1", TotalCostUSD: 20},
			entity.CostDriver{Service: "EC2", Region: "ap-south-1", TotalCostUSD: 10},
		)
		assert.Equal(t, []string{AdviceFor("EC2")}, NewOptimizationAdvisor(report, 3).RecommendSavings())
	})

	t.Run("GenericAdviceForUnknownService", func(t *testing.T) {
		report := drivers(entity.CostDriver{Service: "Amazon CloudFront", Region: "global", TotalCostUSD: 1})
		assert.Equal(t,
			[]string{"Amazon CloudFront optimization: review usage and apply cost controls."},
			NewOptimizationAdvisor(report, 0).RecommendSavings())
	})

	t.Run("EmptyReport", func(t *testing.T) {
		assert.Empty(t, NewOptimizationAdvisor(nil, 3).RecommendSavings())
		assert.Empty(t, NewOptimizationAdvisor(drivers(), 3).RecommendSavings())
	})

	t.Run("MemoizedUntilReset", func(t *testing.T) {
		report := drivers(entity.CostDriver{Service: "RDS", Region: "us-east-1", TotalCostUSD: 1})
		advisor := NewOptimizationAdvisor(report, 3)
		first := advisor.RecommendSavings()

		report.Drivers[0].Service = "S3"
		assert.Equal(t, first, advisor.RecommendSavings())

		advisor.Reset()
		assert.Equal(t, []string{AdviceFor("S3")}, advisor.RecommendSavings())
	})
}

func TestAdviceFor(t *testing.T) {
	for _, service := range []string{"EC2", "RDS", "S3", "Lambda", "DataTransfer"} {
		assert.Contains(t, AdviceFor(service), "optimization:", service)
		assert.NotContains(t, AdviceFor(service), "review usage", service)
	}
}
