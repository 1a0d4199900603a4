package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/domain/repository"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultIntervalWidth é a largura do intervalo de confiança (80%).
	DefaultIntervalWidth = 0.80

	day = 24 * time.Hour

	// weekly seasonality needs at least two full cycles of history
	minSeasonalSpan = 14 * day
)

// LinearTrendModel ajusta uma tendência linear por mínimos quadrados sobre o
// índice de dias, com sazonalidade semanal opcional, e estima os limites a partir
// do desvio padrão dos resíduos.
type LinearTrendModel struct {
	IntervalWidth     float64
	WeeklySeasonality bool
}

// NewLinearTrendModel cria o modelo com intervalo de 80% e sazonalidade semanal.
func NewLinearTrendModel() repository.ForecastModel {
	return &LinearTrendModel{
		IntervalWidth:     DefaultIntervalWidth,
		WeeklySeasonality: true,
	}
}

// MinObservations returns the smallest history a trend line can be fitted on.
func (m *LinearTrendModel) MinObservations() int {
	return 2
}

// FitPredict fits the history and returns one point per historical date followed
// by horizon daily points after the last observation.
func (m *LinearTrendModel) FitPredict(ctx context.Context, history []entity.Observation, horizon int) ([]entity.ForecastPoint, error) {
	if len(history) < m.MinObservations() {
		return nil, fmt.Errorf("linear trend needs at least %d observations, got %d", m.MinObservations(), len(history))
	}
	if horizon < 0 {
		return nil, fmt.Errorf("horizon must not be negative: %d", horizon)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	origin := history[0].Date
	xs := make([]float64, len(history))
	ys := make([]float64, len(history))
	for i, obs := range history {
		if i > 0 && !obs.Date.After(history[i-1].Date) {
			return nil, fmt.Errorf("history must be strictly increasing in date at index %d", i)
		}
		xs[i] = dayIndex(origin, obs.Date)
		ys[i] = obs.Value
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	residuals := make([]float64, len(history))
	for i := range xs {
		residuals[i] = ys[i] - (alpha + beta*xs[i])
	}

	var seasonal [7]float64
	last := history[len(history)-1].Date
	if m.WeeklySeasonality && last.Sub(origin) >= minSeasonalSpan {
		seasonal = weekdayMeans(history, residuals)
		for i, obs := range history {
			residuals[i] -= seasonal[obs.Date.Weekday()]
		}
	}

	sigma := stat.StdDev(residuals, nil)
	z := m.zScore()

	predict := func(date time.Time) entity.ForecastPoint {
		yhat := alpha + beta*dayIndex(origin, date) + seasonal[date.Weekday()]
		return entity.ForecastPoint{
			Date:     date,
			Forecast: yhat,
			Lower:    yhat - z*sigma,
			Upper:    yhat + z*sigma,
		}
	}

	points := make([]entity.ForecastPoint, 0, len(history)+horizon)
	for _, obs := range history {
		points = append(points, predict(obs.Date))
	}
	for i := 1; i <= horizon; i++ {
		points = append(points, predict(last.AddDate(0, 0, i)))
	}

	return points, nil
}

// zScore converte a largura do intervalo no quantil da normal padrão.
func (m *LinearTrendModel) zScore() float64 {
	width := m.IntervalWidth
	if width <= 0 || width >= 1 {
		width = DefaultIntervalWidth
	}
	return distuv.UnitNormal.Quantile(0.5 + width/2)
}

func dayIndex(origin, date time.Time) float64 {
	return float64(date.Sub(origin)) / float64(day)
}

func weekdayMeans(history []entity.Observation, residuals []float64) [7]float64 {
	var sums [7]float64
	var counts [7]int
	for i, obs := range history {
		wd := obs.Date.Weekday()
		sums[wd] += residuals[i]
		counts[wd]++
	}

	var means [7]float64
	for wd := range means {
		if counts[wd] > 0 {
			means[wd] = sums[wd] / float64(counts[wd])
		}
	}
	return means
}
