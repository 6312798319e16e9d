package orderly

import (
	"context"
	"time"
)

// Health statuses.
const (
	HealthPass = "pass"
	HealthFail = "fail"
)

// HealthCheck is the outcome of probing a single component.
type HealthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthStatus is the aggregate health report for the process.
type HealthStatus struct {
	Name    string        `json:"name"`
	Version string        `json:"version"`
	Status  string        `json:"status"`
	Tenant  string        `json:"tenant,omitempty"`
	Time    time.Time     `json:"time"`
	Checks  []HealthCheck `json:"checks,omitempty"`
}

// HealthService is the health capability. Tenants may extend the report
// with their own component checks.
type HealthService interface {
	// Status produces the current health report.
	Status(ctx context.Context) (*HealthStatus, error)
}
