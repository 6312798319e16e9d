// Package order provides the default variant of the order capability,
// backed by a Store, plus logging and metrics decorators shared by all
// variants.
package order

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
)

// Store is the persistence seam of the order service. bolt.Client
// implements it.
type Store interface {
	CreateOrder(ctx context.Context, o *orderly.Order) error
	FindOrderByID(ctx context.Context, id orderly.ID) (*orderly.Order, error)
	FindOrderByGUID(ctx context.Context, guid string) (*orderly.Order, error)
	FindOrders(ctx context.Context, filter orderly.OrderFilter, opts orderly.FindOptions) ([]*orderly.Order, int, error)
	PutOrder(ctx context.Context, o *orderly.Order) error
	DeleteOrder(ctx context.Context, id orderly.ID) error
}

// Service is the default order capability variant.
type Service struct {
	store Store
	clock clock.Clock
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock sets the clock used for order timestamps.
func WithClock(c clock.Clock) ServiceOption {
	return func(s *Service) {
		s.clock = c
	}
}

// NewService constructs the default order service over store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		clock: clock.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ orderly.OrderService = (*Service)(nil)

// CreateOrder validates o, assigns its GUID and timestamps, and persists it.
func (s *Service) CreateOrder(ctx context.Context, o *orderly.Order) error {
	if !o.UserID.Valid() {
		return &errors.Error{
			Code: errors.EInvalid,
			Op:   orderly.OpCreateOrder,
			Msg:  "user id is required",
		}
	}
	if !o.ProjectID.Valid() {
		return &errors.Error{
			Code: errors.EInvalid,
			Op:   orderly.OpCreateOrder,
			Msg:  "project id is required",
		}
	}
	if o.Details == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Op:   orderly.OpCreateOrder,
			Msg:  "order details must not be empty",
		}
	}

	now := s.clock.Now().UTC()
	o.GUID = uuid.NewString()
	o.CreatedAt = now
	o.UpdatedAt = now

	return s.store.CreateOrder(ctx, o)
}

// FindOrderByGUID returns a single order by GUID.
func (s *Service) FindOrderByGUID(ctx context.Context, guid string) (*orderly.Order, error) {
	if guid == "" {
		return nil, &errors.Error{
			Code: errors.EEmptyValue,
			Op:   orderly.OpFindOrderByGUID,
			Msg:  "guid must not be empty",
		}
	}
	return s.store.FindOrderByGUID(ctx, guid)
}

// FindOrders returns orders matching filter, newest first, paginated by opts.
func (s *Service) FindOrders(ctx context.Context, filter orderly.OrderFilter, opts orderly.FindOptions) ([]*orderly.Order, int, error) {
	if opts.Limit <= 0 {
		opts.Limit = orderly.DefaultPageSize
	}
	if opts.Limit > orderly.MaxPageSize {
		opts.Limit = orderly.MaxPageSize
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.store.FindOrders(ctx, filter, opts)
}

// UpdateOrder applies upd to the order and bumps its updated timestamp.
func (s *Service) UpdateOrder(ctx context.Context, id orderly.ID, upd orderly.OrderUpdate) (*orderly.Order, error) {
	o, err := s.store.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.ProjectID != nil {
		o.ProjectID = *upd.ProjectID
	}
	if upd.Details != nil {
		if *upd.Details == "" {
			return nil, &errors.Error{
				Code: errors.EEmptyValue,
				Op:   orderly.OpUpdateOrder,
				Msg:  "order details must not be empty",
			}
		}
		o.Details = *upd.Details
	}
	o.UpdatedAt = s.clock.Now().UTC()

	if err := s.store.PutOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteOrder removes an order by ID.
func (s *Service) DeleteOrder(ctx context.Context, id orderly.ID) error {
	return s.store.DeleteOrder(ctx, id)
}
