package repository

import (
	"context"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	// Cost Explorer como fonte de dados
	CostDataRepository

	// Profile Operations
	GetAWSProfiles() []string
	GetAccountID(ctx context.Context, profile string) (string, error)

	// Budget Operations
	GetBudget(ctx context.Context, profile, name string) (entity.BudgetInfo, error)
}
