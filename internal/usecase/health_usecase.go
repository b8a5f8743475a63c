package usecase

import (
	"context"
	"time"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/logger"
)

// HealthCheck pings one dependency. A failing critical check marks the
// service down; any other failure only degrades it.
type HealthCheck struct {
	Name     string
	Check    func(ctx context.Context) error
	Critical bool
}

type healthUsecase struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthUsecase(checks ...HealthCheck) domain.HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) domain.HealthStatus {
	status := domain.HealthStatus{Status: domain.HealthOK, Services: map[string]string{}}
	for _, hc := range u.checks {
		cctx, cancel := context.WithTimeout(ctx, u.timeout)
		err := hc.Check(cctx)
		cancel()

		if err == nil {
			status.Services[hc.Name] = "up"
			continue
		}

		logger.FromContext(ctx).Warn("Health check failed", "service", hc.Name, "error", err)
		status.Services[hc.Name] = "down"
		if hc.Critical {
			status.Status = domain.HealthDown
		} else if status.Status == domain.HealthOK {
			status.Status = domain.HealthDegraded
		}
	}
	return status
}
