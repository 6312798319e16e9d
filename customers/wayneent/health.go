// Package wayneent holds the Wayne Enterprises capability variants.
package wayneent

import (
	"context"

	"github.com/orderly-app/orderly"
)

// HealthService is the Wayne Enterprises variant of the health
// capability: the standard report extended with their contractual
// component checks.
type HealthService struct {
	orderly.HealthService
}

// NewHealthService wraps the default health service with the Wayne
// Enterprises extensions.
func NewHealthService(underlying orderly.HealthService) *HealthService {
	return &HealthService{HealthService: underlying}
}

var _ orderly.HealthService = (*HealthService)(nil)

// Status extends the default report with Wayne-specific checks.
func (s *HealthService) Status(ctx context.Context) (*orderly.HealthStatus, error) {
	status, err := s.HealthService.Status(ctx)
	if err != nil {
		return nil, err
	}

	status.Checks = append(status.Checks,
		orderly.HealthCheck{Name: "special_service", Status: orderly.HealthPass, Message: "operational"},
		orderly.HealthCheck{Name: "bat_signal", Status: orderly.HealthPass, Message: "ready"},
	)
	return status, nil
}
