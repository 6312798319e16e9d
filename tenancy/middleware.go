package tenancy

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/orderly-app/orderly"
	octx "github.com/orderly-app/orderly/context"
)

// Binder glues the resolver and the binding table together. It runs once
// per inbound request ahead of any capability-dependent handler, and is
// invoked explicitly by the job runner for queue contexts.
type Binder struct {
	registry      *Registry
	bindings      *Bindings
	orgs          OrganizationLookup
	defaultTenant orderly.TenantID
	log           *zap.Logger
}

// BinderConfig assembles a Binder.
type BinderConfig struct {
	Registry      *Registry
	Bindings      *Bindings
	Organizations OrganizationLookup
	DefaultTenant orderly.TenantID
	Log           *zap.Logger
}

// NewBinder returns a Binder. The binding table should have been
// validated before the process starts serving traffic.
func NewBinder(cfg BinderConfig) *Binder {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Binder{
		registry:      cfg.Registry,
		bindings:      cfg.Bindings,
		orgs:          cfg.Organizations,
		defaultTenant: cfg.DefaultTenant,
		log:           log,
	}
}

// NewResolver creates a fresh resolver for one request or job.
func (b *Binder) NewResolver(signals Signals) *Resolver {
	return &Resolver{
		registry:      b.registry,
		orgs:          b.orgs,
		defaultTenant: b.defaultTenant,
		signals:       signals,
		log:           b.log,
	}
}

// Middleware resolves the tenant for the request and installs the
// capability bindings into the request context.
//
// Running it more than once per request is safe: nested route groups
// reuse the resolver already on the context, so the memoized tenant
// decision stays consistent across both runs.
func (b *Binder) Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		res, ok := ResolverFromContext(ctx)
		if !ok {
			var principal *orderly.ID
			if u, err := octx.GetPrincipal(ctx); err == nil {
				principal = &u.ID
			}
			res = b.NewResolver(SignalsFromRequest(r.Host, r.Header.Get(TenantHeader), principal))
			ctx = WithResolver(ctx, res)
		}

		ctx = b.Bind(ctx, res)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(fn)
}

// Bind resolves the tenant through res and returns a context with one
// variant installed per capability, plus the resolved tenant itself when
// there is one. Job runners call this directly after Override.
func (b *Binder) Bind(ctx context.Context, res *Resolver) context.Context {
	tenant, ok := res.Current(ctx)

	var forTenant orderly.TenantID
	if ok {
		forTenant = tenant
	}

	installed := make(map[Capability]interface{})
	for _, c := range Capabilities() {
		installed[c] = b.bindings.Resolve(c, forTenant)
	}
	ctx = withBindings(ctx, installed)

	if ok {
		ctx = WithTenant(ctx, tenant)
		b.log.Debug("Tenant context established", zap.String("tenant", tenant.String()))
	}
	return ctx
}
