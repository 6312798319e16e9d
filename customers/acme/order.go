// Package acme holds the AcMe Corporation capability variants.
package acme

import (
	"context"
	"strings"

	"github.com/orderly-app/orderly"
)

// DetailsPrefix is stamped onto every AcMe order.
const DetailsPrefix = "[AcMe] "

// OrderService is the AcMe variant of the order capability. It decorates
// the default variant, prefixing order details with the tenant name on
// create and update.
type OrderService struct {
	orderly.OrderService
}

// NewOrderService wraps the default order service with AcMe behavior.
func NewOrderService(underlying orderly.OrderService) *OrderService {
	return &OrderService{OrderService: underlying}
}

var _ orderly.OrderService = (*OrderService)(nil)

// CreateOrder prefixes the details before delegating.
func (s *OrderService) CreateOrder(ctx context.Context, o *orderly.Order) error {
	o.Details = prefixed(o.Details)
	return s.OrderService.CreateOrder(ctx, o)
}

// UpdateOrder keeps the prefix maintained across edits.
func (s *OrderService) UpdateOrder(ctx context.Context, id orderly.ID, upd orderly.OrderUpdate) (*orderly.Order, error) {
	if upd.Details != nil {
		details := prefixed(*upd.Details)
		upd.Details = &details
	}
	return s.OrderService.UpdateOrder(ctx, id, upd)
}

func prefixed(details string) string {
	if strings.HasPrefix(details, DetailsPrefix) {
		return details
	}
	return DetailsPrefix + details
}
