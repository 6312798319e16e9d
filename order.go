package orderly

import (
	"context"
	"time"
)

// Order is a work order filed by a user against a project.
type Order struct {
	ID        ID        `json:"id,omitempty"`
	GUID      string    `json:"guid"`
	UserID    ID        `json:"user_id"`
	ProjectID ID        `json:"project_id"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ops for order errors and op logs.
const (
	OpCreateOrder     = "CreateOrder"
	OpFindOrderByGUID = "FindOrderByGUID"
	OpFindOrders      = "FindOrders"
	OpUpdateOrder     = "UpdateOrder"
	OpDeleteOrder     = "DeleteOrder"
)

// OrderService is the order capability: the contract through which all
// order lifecycle operations flow. Tenants may provide their own variant;
// consumers obtain the bound variant from the request context and never
// construct one directly.
type OrderService interface {
	// Creates a new order and sets o.ID, o.GUID and timestamps.
	CreateOrder(ctx context.Context, o *Order) error

	// Returns a single order by GUID.
	FindOrderByGUID(ctx context.Context, guid string) (*Order, error)

	// Returns orders matching filter and the total count of matching
	// orders. Additional options provide pagination.
	FindOrders(ctx context.Context, filter OrderFilter, opts FindOptions) ([]*Order, int, error)

	// Updates a single order with changeset. Returns the new order state.
	UpdateOrder(ctx context.Context, id ID, upd OrderUpdate) (*Order, error)

	// Removes an order by ID.
	DeleteOrder(ctx context.Context, id ID) error
}

// OrderUpdate represents updates to an order.
// Only fields which are set are updated.
type OrderUpdate struct {
	ProjectID *ID     `json:"project_id,omitempty"`
	Details   *string `json:"details,omitempty"`
}

// OrderFilter restricts the set of returned orders.
type OrderFilter struct {
	UserID    *ID
	ProjectID *ID
}

// FindOptions represents options passed to all find methods with multiple results.
type FindOptions struct {
	Limit  int
	Offset int
}

// DefaultPageSize is used when find options do not specify a limit.
const DefaultPageSize = 20

// MaxPageSize caps the number of results a single find may return.
const MaxPageSize = 100
