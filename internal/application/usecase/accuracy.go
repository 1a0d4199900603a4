package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/domain/repository"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/diillson/cloud-cost-ai-go/pkg/logging"
	"go.uber.org/zap"
)

// DefaultTrainRatio é a fração cronológica da série usada para treino.
const DefaultTrainRatio = 0.8

// AccuracyEvaluator faz o backtest do modelo: treina no início da série de cada
// serviço e compara a previsão com o trecho final.
type AccuracyEvaluator struct {
	model      repository.ForecastModel
	trainRatio float64
	charts     repository.ChartRepository
	plotDir    string
	log        *zap.Logger
}

func NewAccuracyEvaluator(model repository.ForecastModel, charts repository.ChartRepository, plotDir string) *AccuracyEvaluator {
	if plotDir == "" {
		plotDir = types.DefaultAccuracyPlotDir
	}
	return &AccuracyEvaluator{
		model:      model,
		trainRatio: DefaultTrainRatio,
		charts:     charts,
		plotDir:    plotDir,
		log:        logging.Named("AccuracyEvaluator"),
	}
}

// Evaluate returns one result per service in order of first appearance.
func (e *AccuracyEvaluator) Evaluate(ctx context.Context, records []entity.CostRecord) ([]entity.AccuracyResult, error) {
	var results []entity.AccuracyResult
	for _, service := range distinctServices(records) {
		result, err := e.evaluateService(ctx, service, dailySeries(records, service))
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (e *AccuracyEvaluator) evaluateService(ctx context.Context, service string, series []entity.Observation) (entity.AccuracyResult, error) {
	split := int(float64(len(series)) * e.trainRatio)
	train, test := series[:split], series[split:]
	result := entity.AccuracyResult{Service: service, TrainSize: len(train), TestSize: len(test)}

	switch {
	case len(test) == 0:
		result.Skipped = true
		result.Reason = "no observations left for testing"
		return result, nil
	case len(train) < e.model.MinObservations():
		result.Skipped = true
		result.Reason = fmt.Sprintf("training set has %d observations, model requires %d", len(train), e.model.MinObservations())
		return result, nil
	}

	points, err := e.model.FitPredict(ctx, train, len(test))
	if err != nil {
		return result, fmt.Errorf("backtesting %s: %w", service, err)
	}
	if len(points) < len(test) {
		return result, fmt.Errorf("backtesting %s: model returned %d points for %d test periods", service, len(points), len(test))
	}
	tail := points[len(points)-len(test):]

	dates := make([]time.Time, len(test))
	actual := make([]float64, len(test))
	predicted := make([]float64, len(test))
	for i := range test {
		dates[i] = test[i].Date
		actual[i] = test[i].Value
		predicted[i] = tail[i].Forecast
	}

	mae, rmse, mape := accuracyMetrics(actual, predicted)
	result.MAE = round2(mae)
	result.RMSE = round2(rmse)
	result.MAPE = round2(mape)

	if e.charts != nil {
		path, err := e.charts.RenderAccuracy(e.plotDir, service, dates, actual, predicted)
		if err != nil {
			return result, fmt.Errorf("rendering accuracy plot for %s: %w", service, err)
		}
		result.PlotPath = path
	}

	e.log.Info("accuracy evaluated",
		zap.String("service", service),
		zap.Float64("mae", result.MAE),
		zap.Float64("rmse", result.RMSE),
		zap.Float64("mape", result.MAPE))
	return result, nil
}

// accuracyMetrics computes MAE, RMSE and MAPE (%). MAPE ignores zero actuals and
// is zero when every actual is zero.
func accuracyMetrics(actual, predicted []float64) (mae, rmse, mape float64) {
	if len(actual) == 0 {
		return 0, 0, 0
	}

	var absSum, sqSum, pctSum float64
	pctCount := 0
	for i := range actual {
		diff := actual[i] - predicted[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
		if actual[i] != 0 {
			pctSum += math.Abs(diff / actual[i])
			pctCount++
		}
	}

	n := float64(len(actual))
	mae = absSum / n
	rmse = math.Sqrt(sqSum / n)
	if pctCount > 0 {
		mape = pctSum / float64(pctCount) * 100
	}
	return mae, rmse, mape
}
