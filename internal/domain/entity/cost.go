package entity

import "time"

// CostRecord represents one row of cost data: a day's spend for a service in a region.
type CostRecord struct {
	Date    time.Time `json:"date"`
	Service string    `json:"service"`
	Region  string    `json:"region"`
	CostUSD float64   `json:"cost_usd"`
}

// CostQuery carrega os parâmetros de leitura para qualquer fonte de dados.
// Fontes de arquivo usam Path; a fonte AWS usa Profile e Days.
type CostQuery struct {
	Path    string `json:"path,omitempty"`
	Profile string `json:"profile,omitempty"`
	Days    int    `json:"days,omitempty"`
}
