package usecase

import (
	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/pkg/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SimulationEngine estima a economia hipotética aplicando um percentual de
// redução sobre o custo previsto.
type SimulationEngine struct {
	forecasts entity.ForecastSeries
	log       *zap.Logger
}

func NewSimulationEngine(forecasts entity.ForecastSeries) *SimulationEngine {
	return &SimulationEngine{
		forecasts: forecasts,
		log:       logging.Named("SimulationEngine"),
	}
}

// SimulateWhatIf returns round(sum(forecast) * reductionPercent / 100, 2) per
// service. A negative forecast sum yields zero savings.
func (s *SimulationEngine) SimulateWhatIf(reductionPercent float64) entity.SavingsReport {
	pct := decimal.NewFromFloat(reductionPercent).Div(decimal.NewFromInt(100))

	report := make(entity.SavingsReport, len(s.forecasts))
	for service, points := range s.forecasts {
		total := decimal.Zero
		for _, p := range points {
			total = total.Add(decimal.NewFromFloat(p.Forecast))
		}
		if total.IsNegative() {
			total = decimal.Zero
		}
		report[service] = total.Mul(pct).Round(2).InexactFloat64()
	}

	s.log.Info("simulation completed",
		zap.Float64("reduction_percent", reductionPercent),
		zap.Int("services", len(report)))
	return report
}
