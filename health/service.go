// Package health provides the default variant of the health capability.
package health

import (
	"context"
	"sort"

	"github.com/benbjohnson/clock"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/tenancy"
)

// Pinger probes a backing component. bolt.Client implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service is the default health capability variant: it reports process
// identity and probes registered components.
type Service struct {
	name    string
	version string
	clock   clock.Clock

	checks map[string]Pinger
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for report timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithCheck registers a named component probe.
func WithCheck(name string, p Pinger) Option {
	return func(s *Service) {
		s.checks[name] = p
	}
}

// NewService constructs the default health service.
func NewService(name, version string, opts ...Option) *Service {
	s := &Service{
		name:    name,
		version: version,
		clock:   clock.New(),
		checks:  make(map[string]Pinger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ orderly.HealthService = (*Service)(nil)

// Status probes every registered component and aggregates the outcome.
// The report never carries an error; a failed probe shows up as a failed
// check with the overall status set to fail.
func (s *Service) Status(ctx context.Context) (*orderly.HealthStatus, error) {
	status := &orderly.HealthStatus{
		Name:    s.name,
		Version: s.version,
		Status:  orderly.HealthPass,
		Time:    s.clock.Now().UTC(),
	}

	if tenant, ok := tenancy.TenantFromContext(ctx); ok {
		status.Tenant = tenant.String()
	}

	for name, p := range s.checks {
		check := orderly.HealthCheck{Name: name, Status: orderly.HealthPass}
		if err := p.Ping(ctx); err != nil {
			check.Status = orderly.HealthFail
			check.Message = err.Error()
			status.Status = orderly.HealthFail
		}
		status.Checks = append(status.Checks, check)
	}
	sort.Slice(status.Checks, func(i, j int) bool {
		return status.Checks[i].Name < status.Checks[j].Name
	})

	return status, nil
}
