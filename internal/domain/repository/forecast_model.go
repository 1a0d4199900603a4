package repository

import (
	"context"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
)

// ForecastModel é a capacidade de previsão usada pelo pipeline. Recebe uma série
// diária ordenada e devolve um ponto por data histórica mais horizon datas futuras.
type ForecastModel interface {
	FitPredict(ctx context.Context, history []entity.Observation, horizon int) ([]entity.ForecastPoint, error)
	MinObservations() int
}
