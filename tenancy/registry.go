package tenancy

import (
	"sort"

	"github.com/orderly-app/orderly"
)

// Registry is the authoritative list of recognized tenant identifiers.
// It is populated once at startup and read-only afterwards, so it is safe
// for concurrent use without locking.
type Registry struct {
	// normalized form -> canonical casing
	canonical map[string]orderly.TenantID
}

// NewRegistry builds a registry from the configured tenant identifiers.
// The given casing is kept as the canonical one.
func NewRegistry(tenants ...string) *Registry {
	r := &Registry{
		canonical: make(map[string]orderly.TenantID, len(tenants)),
	}
	for _, t := range tenants {
		id := orderly.TenantID(t)
		r.canonical[id.Normalize()] = id
	}
	return r
}

// IsKnown reports whether candidate names a registered tenant.
// Comparison is case-insensitive; no partial matches.
func (r *Registry) IsKnown(candidate string) bool {
	_, ok := r.canonical[orderly.TenantID(candidate).Normalize()]
	return ok
}

// Canonicalize returns the registered tenant ID in canonical casing
// when candidate is known.
func (r *Registry) Canonicalize(candidate string) (orderly.TenantID, bool) {
	id, ok := r.canonical[orderly.TenantID(candidate).Normalize()]
	return id, ok
}

// Tenants returns the registered tenant IDs sorted by normalized form.
func (r *Registry) Tenants() []orderly.TenantID {
	ids := make([]orderly.TenantID, 0, len(r.canonical))
	for _, id := range r.canonical {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Normalize() < ids[j].Normalize()
	})
	return ids
}
