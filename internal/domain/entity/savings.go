package entity

import "sort"

// SavingsReport maps a service to its potential savings in USD.
type SavingsReport map[string]float64

// Services retorna os serviços ordenados por economia decrescente.
func (s SavingsReport) Services() []string {
	services := make([]string, 0, len(s))
	for service := range s {
		services = append(services, service)
	}
	sort.Slice(services, func(i, j int) bool {
		if s[services[i]] != s[services[j]] {
			return s[services[i]] > s[services[j]]
		}
		return services[i] < services[j]
	})
	return services
}
