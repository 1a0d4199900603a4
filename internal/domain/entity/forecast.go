package entity

import (
	"sort"
	"time"
)

// Observation is one aggregated (date, value) point of a service's cost history.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ForecastPoint represents the predicted cost for a date with its confidence bounds.
type ForecastPoint struct {
	Date     time.Time `json:"date"`
	Forecast float64   `json:"forecast"`
	Lower    float64   `json:"lower"`
	Upper    float64   `json:"upper"`
}

// ForecastSeries maps a service name to its forecast, one point per historical
// and future date in chronological order.
type ForecastSeries map[string][]ForecastPoint

// Services retorna os nomes dos serviços em ordem alfabética.
func (f ForecastSeries) Services() []string {
	services := make([]string, 0, len(f))
	for service := range f {
		services = append(services, service)
	}
	sort.Strings(services)
	return services
}
