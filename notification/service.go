// Package notification provides the default variant of the notification
// capability: branded email on order lifecycle events.
package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
	"github.com/orderly-app/orderly/tenancy"
)

// Defaults used when a tenant has no email config row.
const (
	DefaultFromAddress = "no-reply@orderly.local"
	DefaultFromName    = "Orderly"

	// DefaultRecipient is the ops alias order notifications go to until
	// per-recipient routing exists.
	DefaultRecipient = "orders@orderly.local"
)

// Service is the default notification capability variant. Per-tenant
// email branding is read through a tenant-keyed cache; invalidation is
// the owner's call via InvalidateConfig.
type Service struct {
	configs orderly.EmailConfigStore
	mailer  Mailer
	cache   *configCache
	log     *zap.Logger

	subjectPrefix string
}

// Option configures a Service.
type Option func(*Service)

// WithSubjectPrefix prepends a branding prefix to every subject line.
// Tenant variants use it to customize templates without reimplementing
// delivery.
func WithSubjectPrefix(prefix string) Option {
	return func(s *Service) {
		s.subjectPrefix = prefix
	}
}

// NewService constructs the default notification service.
func NewService(configs orderly.EmailConfigStore, mailer Mailer, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		configs: configs,
		mailer:  mailer,
		cache:   newConfigCache(),
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ orderly.NotificationService = (*Service)(nil)

// OrderCreated sends the order-created email.
func (s *Service) OrderCreated(ctx context.Context, o *orderly.Order) error {
	return s.send(ctx, o, orderly.OpNotifyOrderCreated,
		fmt.Sprintf("Order %s created", o.GUID),
		fmt.Sprintf("A new order was created.\n\n%s", o.Details))
}

// OrderUpdated sends the order-updated email.
func (s *Service) OrderUpdated(ctx context.Context, o *orderly.Order) error {
	return s.send(ctx, o, orderly.OpNotifyOrderUpdated,
		fmt.Sprintf("Order %s updated", o.GUID),
		fmt.Sprintf("An order was updated.\n\n%s", o.Details))
}

// InvalidateConfig drops the cached email config for tenant. Callers that
// change a tenant's branding row are responsible for invalidating.
func (s *Service) InvalidateConfig(tenant orderly.TenantID) {
	s.cache.invalidate(tenant)
}

func (s *Service) send(ctx context.Context, o *orderly.Order, op, subject, body string) error {
	cfg := s.config(ctx)

	if s.subjectPrefix != "" {
		subject = s.subjectPrefix + ": " + subject
	}

	msg := Message{
		From:    fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
		To:      DefaultRecipient,
		Subject: subject,
		Body:    body + footer(cfg),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return &errors.Error{
			Code: errors.EInternal,
			Op:   op,
			Err:  err,
		}
	}
	return nil
}

// config returns the branding for the request's tenant, falling back to
// process defaults for untenanted requests and tenants without a row.
func (s *Service) config(ctx context.Context) *orderly.EmailConfig {
	tenant, ok := tenancy.TenantFromContext(ctx)
	if !ok {
		return defaultConfig("")
	}

	if cfg, ok := s.cache.get(tenant); ok {
		return cfg
	}

	cfg, err := s.configs.FindEmailConfig(ctx, tenant)
	if err != nil {
		if errors.ErrorCode(err) != errors.ENotFound {
			s.log.Warn("Failed to load tenant email config",
				zap.String("tenant", tenant.String()),
				zap.Error(err))
		}
		cfg = defaultConfig(tenant)
	}

	s.cache.put(tenant, cfg)
	return cfg
}

func defaultConfig(tenant orderly.TenantID) *orderly.EmailConfig {
	return &orderly.EmailConfig{
		TenantID:    tenant,
		FromAddress: DefaultFromAddress,
		FromName:    DefaultFromName,
	}
}

func footer(cfg *orderly.EmailConfig) string {
	if cfg.Footer == "" {
		return ""
	}
	return "\n\n--\n" + cfg.Footer
}
