// Package tenancy implements tenant resolution and per-request capability
// rebinding.
//
// A tenant is determined once per request (or job) by evaluating signal
// sources in strict precedence order: the explicit X-Tenant-ID header, the
// host subdomain, the authenticated principal's first organization, and
// finally the operator-configured default. The first signal naming a known
// tenant wins; unknown candidates are skipped, never treated as errors.
//
// With the tenant decided, the Binder installs one variant per capability
// into the request context: the tenant-specific variant when one was
// registered at startup, the default variant otherwise. Handlers consume
// capabilities through the context accessors and stay unaware of which
// variant they received.
package tenancy
