package usecase

import (
	"fmt"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
)

// BudgetAlert compares a total cost against a spend ceiling.
type BudgetAlert struct {
	limit float64
}

func NewBudgetAlert(limit float64) *BudgetAlert {
	return &BudgetAlert{limit: limit}
}

// CheckBudget considera estourado apenas quando o total ultrapassa o limite;
// igualdade fica dentro do orçamento.
func (b *BudgetAlert) CheckBudget(totalCost float64) entity.BudgetStatus {
	status := entity.BudgetStatus{
		TotalCost: totalCost,
		Limit:     b.limit,
		Exceeded:  totalCost > b.limit,
	}
	if status.Exceeded {
		status.Message = fmt.Sprintf("Budget exceeded! Total cost $%.2f > Budget $%.2f", totalCost, b.limit)
	} else {
		status.Message = fmt.Sprintf("Cost within budget. Total cost $%.2f <= Budget $%.2f", totalCost, b.limit)
	}
	return status
}
