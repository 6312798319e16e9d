package mock

import (
	"context"

	platform "github.com/orderly-app/orderly"
)

var _ platform.HealthService = &HealthService{}

// HealthService is a mock implementation of the health capability.
type HealthService struct {
	StatusF func(context.Context) (*platform.HealthStatus, error)
}

func (s *HealthService) Status(ctx context.Context) (*platform.HealthStatus, error) {
	return s.StatusF(ctx)
}
