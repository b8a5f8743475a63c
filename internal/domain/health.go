package domain

import "context"

const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
	HealthDown     = "down"
)

type HealthStatus struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Healthy is false only when a critical dependency is unreachable.
func (h HealthStatus) Healthy() bool {
	return h.Status != HealthDown
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}
