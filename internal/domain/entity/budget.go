package entity

// BudgetInfo represents a budget with actual and forecasted spend.
type BudgetInfo struct {
	Name     string  `json:"name"`
	Limit    float64 `json:"limit"`
	Actual   float64 `json:"actual"`
	Forecast float64 `json:"forecast,omitempty"`
}

// BudgetStatus é o resultado da comparação entre o custo total e o limite.
type BudgetStatus struct {
	Message   string  `json:"message"`
	Exceeded  bool    `json:"exceeded"`
	TotalCost float64 `json:"total_cost"`
	Limit     float64 `json:"limit"`
}
