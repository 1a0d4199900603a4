package entity

import "time"

// CostReport agrega a saída de todas as etapas do pipeline para uma execução.
type CostReport struct {
	RunID           string            `json:"run_id"`
	GeneratedAt     time.Time         `json:"generated_at"`
	Source          string            `json:"source"`
	AccountID       string            `json:"account_id,omitempty"`
	RecordCount     int               `json:"record_count"`
	TotalCost       float64           `json:"total_cost"`
	Horizon         int               `json:"horizon"`
	ReductionPct    float64           `json:"reduction_percent"`
	DriverReport    *DriverReport     `json:"driver_report"`
	Recommendations []string          `json:"recommendations"`
	Simulation      SavingsReport     `json:"simulation"`
	Forecasts       ForecastSeries    `json:"forecasts"`
	BudgetStatus    BudgetStatus      `json:"budget_status"`
	PlotPaths       map[string]string `json:"plot_paths,omitempty"`
}
