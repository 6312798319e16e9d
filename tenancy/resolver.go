package tenancy

import (
	"context"
	"net"
	"strings"

	"go.uber.org/zap"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
)

// TenantHeader is the request header carrying the explicit tenant signal.
const TenantHeader = "X-Tenant-ID"

// ErrNoTenant is returned by Required when no signal resolved and no
// default tenant is configured.
var ErrNoTenant = &errors.Error{
	Code: errors.ENoTenant,
	Msg:  "unable to determine tenant context",
}

// OrganizationLookup supplies the principal-derived signal: the
// organizations a user belongs to, ordered by ascending organization ID.
type OrganizationLookup interface {
	FindUserOrganizations(ctx context.Context, userID orderly.ID) ([]*orderly.Organization, error)
}

// Signals holds the per-request values the waterfall evaluates. They are
// captured when the resolver is created so a later mutation of the
// request cannot change the outcome.
type Signals struct {
	// Header is the explicit X-Tenant-ID value, empty when absent.
	Header string
	// Host is the request host, without port.
	Host string
	// Principal is the authenticated user's ID, nil when the request is
	// anonymous.
	Principal *orderly.ID
}

// Resolver produces the single tenant decision for one request or job.
//
// Resolution is memoized, including a "no tenant" outcome: every call
// after the first returns the same value without re-running the
// waterfall. A resolver is owned by exactly one request or job and must
// not be shared, which is why no locking happens here.
type Resolver struct {
	registry      *Registry
	orgs          OrganizationLookup
	defaultTenant orderly.TenantID
	signals       Signals
	log           *zap.Logger

	resolved bool
	tenant   orderly.TenantID
	has      bool
}

// Current returns the resolved tenant, or false when no signal resolved
// and no default is configured. It never fails.
func (r *Resolver) Current(ctx context.Context) (orderly.TenantID, bool) {
	if r.resolved {
		return r.tenant, r.has
	}

	// Priority order matters here: most specific to least specific.
	tenant, ok := r.fromHeader()
	if !ok {
		tenant, ok = r.fromSubdomain()
	}
	if !ok {
		tenant, ok = r.fromPrincipal(ctx)
	}
	if !ok {
		tenant, ok = r.fromDefault()
	}

	r.resolved = true
	r.tenant = tenant
	r.has = ok
	return r.tenant, r.has
}

// Required returns the resolved tenant or ErrNoTenant. It is a
// caller-side contract for code paths that cannot proceed without tenant
// context; the waterfall itself never needs it to succeed.
func (r *Resolver) Required(ctx context.Context) (orderly.TenantID, error) {
	tenant, ok := r.Current(ctx)
	if !ok {
		return "", ErrNoTenant
	}
	return tenant, nil
}

// Override sets the resolved tenant, bypassing the waterfall. It is the
// entry point for job and queue contexts where no request exists.
// Resolvers are created fresh per request/job, so an override always
// happens before the waterfall had a chance to run.
func (r *Resolver) Override(tenant orderly.TenantID) {
	r.resolved = true
	r.tenant = tenant
	r.has = tenant != ""
}

func (r *Resolver) fromHeader() (orderly.TenantID, bool) {
	if r.signals.Header == "" {
		return "", false
	}
	return r.registry.Canonicalize(r.signals.Header)
}

func (r *Resolver) fromSubdomain() (orderly.TenantID, bool) {
	// acme.myapp.com -> "acme"; a bare myapp.com has no subdomain.
	parts := strings.Split(r.signals.Host, ".")
	if len(parts) < 3 {
		return "", false
	}
	return r.registry.Canonicalize(parts[0])
}

func (r *Resolver) fromPrincipal(ctx context.Context) (orderly.TenantID, bool) {
	if r.signals.Principal == nil || r.orgs == nil {
		return "", false
	}

	orgs, err := r.orgs.FindUserOrganizations(ctx, *r.signals.Principal)
	if err != nil {
		// A failed lookup is a missed signal, not a request failure.
		r.log.Debug("Failed to look up principal organizations",
			zap.String("user_id", r.signals.Principal.String()),
			zap.Error(err))
		return "", false
	}
	if len(orgs) == 0 {
		return "", false
	}
	return r.registry.Canonicalize(orgs[0].Slug)
}

func (r *Resolver) fromDefault() (orderly.TenantID, bool) {
	// The configured default is operator-supplied and trusted; it is not
	// validated against the registry.
	return r.defaultTenant, r.defaultTenant != ""
}

// SignalsFromRequest captures the tenant signals of an inbound request.
// The principal must already be attached to the request context by the
// authentication middleware.
func SignalsFromRequest(host, header string, principal *orderly.ID) Signals {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return Signals{
		Header:    header,
		Host:      host,
		Principal: principal,
	}
}
