package orderly

import "strings"

// TenantID identifies a customer/organization context that may customize
// shared behavior. It is an opaque string compared case-insensitively;
// the value itself keeps whatever canonical casing the tenant registry
// was configured with.
//
// A TenantID lives for the duration of a single request or job. It is
// never persisted by the tenancy core; durable tenant data belongs to
// the Organization entity.
type TenantID string

// Normalize returns the lower-cased comparison form of the tenant ID.
// Two TenantIDs equal under normalization are the same tenant.
func (t TenantID) Normalize() string {
	return strings.ToLower(string(t))
}

// Equal reports whether two tenant IDs name the same tenant.
func (t TenantID) Equal(other TenantID) bool {
	return strings.EqualFold(string(t), string(other))
}

func (t TenantID) String() string {
	return string(t)
}
