package mock

import (
	"context"

	platform "github.com/orderly-app/orderly"
)

var _ platform.NotificationService = &NotificationService{}

// NotificationService is a mock implementation of the notification capability.
type NotificationService struct {
	OrderCreatedF func(context.Context, *platform.Order) error
	OrderUpdatedF func(context.Context, *platform.Order) error
}

func (s *NotificationService) OrderCreated(ctx context.Context, o *platform.Order) error {
	return s.OrderCreatedF(ctx, o)
}

func (s *NotificationService) OrderUpdated(ctx context.Context, o *platform.Order) error {
	return s.OrderUpdatedF(ctx, o)
}
