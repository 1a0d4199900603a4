package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/domain/repository"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/diillson/cloud-cost-ai-go/pkg/logging"
	"go.uber.org/zap"
)

// Forecaster fits the forecast model once per service and optionally renders a
// chart for each forecast.
type Forecaster struct {
	records []entity.CostRecord
	model   repository.ForecastModel
	horizon int
	charts  repository.ChartRepository
	plotDir string
	log     *zap.Logger

	plots map[string]string
}

// ForecasterOption configura o Forecaster.
type ForecasterOption func(*Forecaster)

// WithChartRenderer grava {service}_forecast.png em dir após cada previsão.
func WithChartRenderer(charts repository.ChartRepository, dir string) ForecasterOption {
	return func(f *Forecaster) {
		f.charts = charts
		if dir != "" {
			f.plotDir = dir
		}
	}
}

// NewForecaster cria o Forecaster. horizon <= 0 usa o padrão de 30 períodos.
func NewForecaster(records []entity.CostRecord, model repository.ForecastModel, horizon int, opts ...ForecasterOption) *Forecaster {
	if horizon <= 0 {
		horizon = types.DefaultHorizon
	}
	f := &Forecaster{
		records: records,
		model:   model,
		horizon: horizon,
		plotDir: types.DefaultPlotDir,
		log:     logging.Named("Forecaster"),
		plots:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RunForecast gera a previsão de cada serviço distinto. Qualquer falha aborta a
// execução sem resultado parcial.
func (f *Forecaster) RunForecast(ctx context.Context) (entity.ForecastSeries, error) {
	services := distinctServices(f.records)
	f.log.Info("starting forecasting", zap.Strings("services", services), zap.Int("horizon", f.horizon))

	forecasts := make(entity.ForecastSeries, len(services))
	plots := make(map[string]string)
	for _, service := range services {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		history := dailySeries(f.records, service)
		if required := f.model.MinObservations(); len(history) < required {
			return nil, &types.InsufficientDataError{
				Service:      service,
				Observations: len(history),
				Required:     required,
			}
		}

		points, err := f.model.FitPredict(ctx, history, f.horizon)
		if err != nil {
			return nil, fmt.Errorf("forecasting %s: %w", service, err)
		}
		forecasts[service] = points

		if f.charts != nil {
			path, err := f.charts.RenderForecast(f.plotDir, service, points)
			if err != nil {
				return nil, fmt.Errorf("rendering forecast plot for %s: %w", service, err)
			}
			plots[service] = path
			f.log.Info("saved plot", zap.String("service", service), zap.String("path", path))
		}

		f.log.Info("forecast completed", zap.String("service", service), zap.Int("points", len(points)))
	}

	f.plots = plots
	return forecasts, nil
}

// PlotPaths returns the chart written for each service by the last run.
func (f *Forecaster) PlotPaths() map[string]string {
	return f.plots
}
