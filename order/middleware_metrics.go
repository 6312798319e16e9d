package order

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/metric"
)

var _ orderly.OrderService = (*Metrics)(nil)

// Metrics is a RED metrics middleware for the order capability.
type Metrics struct {
	rec *metric.REDClient

	orderService orderly.OrderService
}

// NewMetrics returns a metrics service middleware for the order capability.
func NewMetrics(reg prometheus.Registerer, s orderly.OrderService) *Metrics {
	return &Metrics{
		rec:          metric.New(reg, "order"),
		orderService: s,
	}
}

func (m *Metrics) CreateOrder(ctx context.Context, o *orderly.Order) error {
	rec := m.rec.Record("create_order")
	err := m.orderService.CreateOrder(ctx, o)
	return rec(err)
}

func (m *Metrics) FindOrderByGUID(ctx context.Context, guid string) (*orderly.Order, error) {
	rec := m.rec.Record("find_order_by_guid")
	o, err := m.orderService.FindOrderByGUID(ctx, guid)
	return o, rec(err)
}

func (m *Metrics) FindOrders(ctx context.Context, filter orderly.OrderFilter, opts orderly.FindOptions) ([]*orderly.Order, int, error) {
	rec := m.rec.Record("find_orders")
	os, n, err := m.orderService.FindOrders(ctx, filter, opts)
	return os, n, rec(err)
}

func (m *Metrics) UpdateOrder(ctx context.Context, id orderly.ID, upd orderly.OrderUpdate) (*orderly.Order, error) {
	rec := m.rec.Record("update_order")
	o, err := m.orderService.UpdateOrder(ctx, id, upd)
	return o, rec(err)
}

func (m *Metrics) DeleteOrder(ctx context.Context, id orderly.ID) error {
	rec := m.rec.Record("delete_order")
	err := m.orderService.DeleteOrder(ctx, id)
	return rec(err)
}
