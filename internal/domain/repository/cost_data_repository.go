package repository

import (
	"context"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
)

// CostDataRepository defines a source of cost records.
type CostDataRepository interface {
	LoadCostRecords(ctx context.Context, query entity.CostQuery) ([]entity.CostRecord, error)
}
