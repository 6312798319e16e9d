package mock

import (
	"context"

	platform "github.com/orderly-app/orderly"
)

var _ platform.OrderService = &OrderService{}

// OrderService is a mock implementation of the order capability.
type OrderService struct {
	CreateOrderF     func(context.Context, *platform.Order) error
	FindOrderByGUIDF func(context.Context, string) (*platform.Order, error)
	FindOrdersF      func(context.Context, platform.OrderFilter, platform.FindOptions) ([]*platform.Order, int, error)
	UpdateOrderF     func(context.Context, platform.ID, platform.OrderUpdate) (*platform.Order, error)
	DeleteOrderF     func(context.Context, platform.ID) error
}

func (s *OrderService) CreateOrder(ctx context.Context, o *platform.Order) error {
	return s.CreateOrderF(ctx, o)
}

func (s *OrderService) FindOrderByGUID(ctx context.Context, guid string) (*platform.Order, error) {
	return s.FindOrderByGUIDF(ctx, guid)
}

func (s *OrderService) FindOrders(ctx context.Context, filter platform.OrderFilter, opts platform.FindOptions) ([]*platform.Order, int, error) {
	return s.FindOrdersF(ctx, filter, opts)
}

func (s *OrderService) UpdateOrder(ctx context.Context, id platform.ID, upd platform.OrderUpdate) (*platform.Order, error) {
	return s.UpdateOrderF(ctx, id, upd)
}

func (s *OrderService) DeleteOrder(ctx context.Context, id platform.ID) error {
	return s.DeleteOrderF(ctx, id)
}
