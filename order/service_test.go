package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
	"github.com/orderly-app/orderly/order"
)

// storeStub is an in-memory order.Store.
type storeStub struct {
	nextID orderly.ID
	orders map[orderly.ID]*orderly.Order
}

func newStoreStub() *storeStub {
	return &storeStub{orders: map[orderly.ID]*orderly.Order{}}
}

func (s *storeStub) CreateOrder(_ context.Context, o *orderly.Order) error {
	s.nextID++
	o.ID = s.nextID
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *storeStub) FindOrderByID(_ context.Context, id orderly.ID) (*orderly.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, &errors.Error{Code: errors.ENotFound, Msg: "order not found"}
	}
	cp := *o
	return &cp, nil
}

func (s *storeStub) FindOrderByGUID(_ context.Context, guid string) (*orderly.Order, error) {
	for _, o := range s.orders {
		if o.GUID == guid {
			cp := *o
			return &cp, nil
		}
	}
	return nil, &errors.Error{Code: errors.ENotFound, Msg: "order not found"}
}

func (s *storeStub) FindOrders(_ context.Context, _ orderly.OrderFilter, opts orderly.FindOptions) ([]*orderly.Order, int, error) {
	var out []*orderly.Order
	for _, o := range s.orders {
		cp := *o
		out = append(out, &cp)
	}
	n := len(out)
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, n, nil
}

func (s *storeStub) PutOrder(_ context.Context, o *orderly.Order) error {
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *storeStub) DeleteOrder(_ context.Context, id orderly.ID) error {
	delete(s.orders, id)
	return nil
}

func TestService_CreateOrder(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))

	store := newStoreStub()
	svc := order.NewService(store, order.WithClock(mock))

	o := &orderly.Order{UserID: 1, ProjectID: 2, Details: "replace the batcomputer"}
	require.NoError(t, svc.CreateOrder(context.Background(), o))

	assert.NotEmpty(t, o.GUID)
	assert.True(t, o.ID.Valid())
	assert.Equal(t, mock.Now().UTC(), o.CreatedAt)
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)

	got, err := svc.FindOrderByGUID(context.Background(), o.GUID)
	require.NoError(t, err)
	assert.Equal(t, o.Details, got.Details)
}

func TestService_CreateOrderValidation(t *testing.T) {
	svc := order.NewService(newStoreStub())

	cases := []struct {
		name string
		o    *orderly.Order
		code string
	}{
		{
			name: "missing user",
			o:    &orderly.Order{ProjectID: 2, Details: "x"},
			code: errors.EInvalid,
		},
		{
			name: "missing project",
			o:    &orderly.Order{UserID: 1, Details: "x"},
			code: errors.EInvalid,
		},
		{
			name: "empty details",
			o:    &orderly.Order{UserID: 1, ProjectID: 2},
			code: errors.EEmptyValue,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.CreateOrder(context.Background(), tc.o)
			require.Error(t, err)
			assert.Equal(t, tc.code, errors.ErrorCode(err))
		})
	}
}

func TestService_UpdateOrder(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))

	store := newStoreStub()
	svc := order.NewService(store, order.WithClock(mock))

	o := &orderly.Order{UserID: 1, ProjectID: 2, Details: "initial"}
	require.NoError(t, svc.CreateOrder(context.Background(), o))

	mock.Add(time.Hour)
	details := "amended"
	updated, err := svc.UpdateOrder(context.Background(), o.ID, orderly.OrderUpdate{Details: &details})
	require.NoError(t, err)

	assert.Equal(t, "amended", updated.Details)
	assert.Equal(t, o.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestService_UpdateOrderNotFound(t *testing.T) {
	svc := order.NewService(newStoreStub())

	details := "amended"
	_, err := svc.UpdateOrder(context.Background(), 42, orderly.OrderUpdate{Details: &details})
	require.Error(t, err)
	assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
}

func TestService_FindOrdersPagination(t *testing.T) {
	store := newStoreStub()
	svc := order.NewService(store)

	for i := 0; i < 30; i++ {
		require.NoError(t, svc.CreateOrder(context.Background(), &orderly.Order{
			UserID: 1, ProjectID: 2, Details: "bulk",
		}))
	}

	// zero limit gets the default page size
	os, n, err := svc.FindOrders(context.Background(), orderly.OrderFilter{}, orderly.FindOptions{})
	require.NoError(t, err)
	assert.Equal(t, 30, n)
	assert.Len(t, os, orderly.DefaultPageSize)
}
