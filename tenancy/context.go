package tenancy

import (
	"context"
	"fmt"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
)

type contextKey string

const (
	tenantCtxKey   = contextKey("orderly/tenant/v1")
	resolverCtxKey = contextKey("orderly/tenant-resolver/v1")
	bindingsCtxKey = contextKey("orderly/capability-bindings/v1")
)

// WithTenant returns a context carrying the resolved tenant. This is the
// convenience channel for downstream code that wants the current tenant
// without holding a resolver reference.
func WithTenant(ctx context.Context, tenant orderly.TenantID) context.Context {
	return context.WithValue(ctx, tenantCtxKey, tenant)
}

// TenantFromContext returns the resolved tenant attached to ctx, if any.
func TenantFromContext(ctx context.Context) (orderly.TenantID, bool) {
	t, ok := ctx.Value(tenantCtxKey).(orderly.TenantID)
	return t, ok
}

// WithResolver returns a context carrying the request's resolver.
func WithResolver(ctx context.Context, r *Resolver) context.Context {
	return context.WithValue(ctx, resolverCtxKey, r)
}

// ResolverFromContext returns the resolver attached to ctx, if any.
func ResolverFromContext(ctx context.Context) (*Resolver, bool) {
	r, ok := ctx.Value(resolverCtxKey).(*Resolver)
	return r, ok
}

func withBindings(ctx context.Context, installed map[Capability]interface{}) context.Context {
	return context.WithValue(ctx, bindingsCtxKey, installed)
}

func binding(ctx context.Context, c Capability) (interface{}, error) {
	installed, ok := ctx.Value(bindingsCtxKey).(map[Capability]interface{})
	if !ok {
		return nil, &errors.Error{
			Code: errors.EInternal,
			Msg:  fmt.Sprintf("capability %q not bound on context; tenancy binder did not run", c),
		}
	}
	v, ok := installed[c]
	if !ok || v == nil {
		return nil, &errors.Error{
			Code: errors.EInternal,
			Msg:  fmt.Sprintf("capability %q not bound on context; tenancy binder did not run", c),
		}
	}
	return v, nil
}

// GetOrderService returns the order capability bound to this request.
func GetOrderService(ctx context.Context) (orderly.OrderService, error) {
	v, err := binding(ctx, OrderCapability)
	if err != nil {
		return nil, err
	}
	svc, ok := v.(orderly.OrderService)
	if !ok {
		return nil, &errors.Error{
			Code: errors.EInternal,
			Msg:  fmt.Sprintf("bound order variant is a %T, not an OrderService", v),
		}
	}
	return svc, nil
}

// GetNotificationService returns the notification capability bound to this request.
func GetNotificationService(ctx context.Context) (orderly.NotificationService, error) {
	v, err := binding(ctx, NotificationCapability)
	if err != nil {
		return nil, err
	}
	svc, ok := v.(orderly.NotificationService)
	if !ok {
		return nil, &errors.Error{
			Code: errors.EInternal,
			Msg:  fmt.Sprintf("bound notification variant is a %T, not a NotificationService", v),
		}
	}
	return svc, nil
}

// GetHealthService returns the health capability bound to this request.
func GetHealthService(ctx context.Context) (orderly.HealthService, error) {
	v, err := binding(ctx, HealthCapability)
	if err != nil {
		return nil, err
	}
	svc, ok := v.(orderly.HealthService)
	if !ok {
		return nil, &errors.Error{
			Code: errors.EInternal,
			Msg:  fmt.Sprintf("bound health variant is a %T, not a HealthService", v),
		}
	}
	return svc, nil
}
