package entity

// CostDriver is a (service, region) pair ranked by aggregate spend.
type CostDriver struct {
	Service      string  `json:"service"`
	Region       string  `json:"region"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// DriverReport lista os maiores geradores de custo em ordem decrescente.
type DriverReport struct {
	Drivers []CostDriver `json:"drivers"`
}

// Len returns the number of drivers in the report.
func (r *DriverReport) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Drivers)
}
