package orderly

import "context"

// ops for notification op logs.
const (
	OpNotifyOrderCreated = "OrderCreated"
	OpNotifyOrderUpdated = "OrderUpdated"
)

// NotificationService is the notification capability. The default variant
// sends branded email; tenant variants may change channels or templates.
type NotificationService interface {
	// OrderCreated notifies interested parties that an order was created.
	OrderCreated(ctx context.Context, o *Order) error

	// OrderUpdated notifies interested parties that an order was updated.
	OrderUpdated(ctx context.Context, o *Order) error
}

// EmailConfig holds per-tenant email branding. It belongs to the
// notification collaborator; the tenancy core never persists it.
type EmailConfig struct {
	TenantID    TenantID `json:"tenant_id"`
	FromAddress string   `json:"from_address"`
	FromName    string   `json:"from_name"`
	Footer      string   `json:"footer"`
}

// EmailConfigStore supplies tenant email branding rows.
type EmailConfigStore interface {
	// Returns the email config for tenant, or ENotFound.
	FindEmailConfig(ctx context.Context, tenant TenantID) (*EmailConfig, error)

	// Creates or replaces the email config for c.TenantID.
	PutEmailConfig(ctx context.Context, c *EmailConfig) error
}
