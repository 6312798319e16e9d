package wayneent_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/customers/wayneent"
	"github.com/orderly-app/orderly/mock"
)

func TestHealthService_AppendsWayneChecks(t *testing.T) {
	svc := wayneent.NewHealthService(&mock.HealthService{
		StatusF: func(context.Context) (*orderly.HealthStatus, error) {
			return &orderly.HealthStatus{
				Name:   "orderlyd",
				Status: orderly.HealthPass,
				Checks: []orderly.HealthCheck{
					{Name: "bolt", Status: orderly.HealthPass},
				},
			}, nil
		},
	})

	status, err := svc.Status(context.Background())
	require.NoError(t, err)

	var names []string
	for _, c := range status.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"bolt", "special_service", "bat_signal"}, names)
	assert.Equal(t, orderly.HealthPass, status.Status)
}

func TestHealthService_PropagatesUnderlyingFailure(t *testing.T) {
	svc := wayneent.NewHealthService(&mock.HealthService{
		StatusF: func(context.Context) (*orderly.HealthStatus, error) {
			return &orderly.HealthStatus{
				Status: orderly.HealthFail,
				Checks: []orderly.HealthCheck{
					{Name: "bolt", Status: orderly.HealthFail, Message: "file locked"},
				},
			}, nil
		},
	})

	status, err := svc.Status(context.Background())
	require.NoError(t, err)

	// The base report's failure is preserved; the Wayne checks only add.
	assert.Equal(t, orderly.HealthFail, status.Status)
	assert.Len(t, status.Checks, 3)
}
