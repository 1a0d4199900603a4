package repository

import (
	"time"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
)

// ChartRepository renders forecast charts to image files and returns their paths.
type ChartRepository interface {
	RenderForecast(dir, service string, points []entity.ForecastPoint) (string, error)
	RenderAccuracy(dir, service string, dates []time.Time, actual, predicted []float64) (string, error)
}
