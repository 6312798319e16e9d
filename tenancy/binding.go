package tenancy

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
)

// Capability names a service contract that may vary by tenant.
type Capability string

// The fixed set of capabilities subject to tenant rebinding.
const (
	OrderCapability        = Capability("order")
	NotificationCapability = Capability("notification")
	HealthCapability       = Capability("health")
)

// Capabilities returns the fixed capability set the binder installs on
// every request.
func Capabilities() []Capability {
	return []Capability{OrderCapability, NotificationCapability, HealthCapability}
}

type bindingKey struct {
	capability Capability
	tenant     string // normalized
}

// Bindings maps (capability, tenant) to the concrete variant to use.
// All registration happens at process start; the table is immutable and
// safe for concurrent reads once the process serves traffic.
type Bindings struct {
	defaults map[Capability]interface{}
	variants map[bindingKey]interface{}
}

// NewBindings returns an empty binding table.
func NewBindings() *Bindings {
	return &Bindings{
		defaults: make(map[Capability]interface{}),
		variants: make(map[bindingKey]interface{}),
	}
}

// RegisterDefault installs the default variant for a capability.
// Every capability must have exactly one default.
func (b *Bindings) RegisterDefault(c Capability, variant interface{}) error {
	if variant == nil {
		return &errors.Error{
			Code: errors.EUnknownVariantConfiguration,
			Msg:  fmt.Sprintf("nil default variant for capability %q", c),
		}
	}
	if _, ok := b.defaults[c]; ok {
		return &errors.Error{
			Code: errors.EConflict,
			Msg:  fmt.Sprintf("default variant for capability %q already registered", c),
		}
	}
	b.defaults[c] = variant
	return nil
}

// Register installs a tenant-specific variant for a capability. At most
// one variant may exist per (capability, tenant) pair.
func (b *Bindings) Register(c Capability, tenant orderly.TenantID, variant interface{}) error {
	if variant == nil {
		return &errors.Error{
			Code: errors.EUnknownVariantConfiguration,
			Msg:  fmt.Sprintf("nil variant for capability %q tenant %q", c, tenant),
		}
	}
	key := bindingKey{capability: c, tenant: tenant.Normalize()}
	if _, ok := b.variants[key]; ok {
		return &errors.Error{
			Code: errors.EConflict,
			Msg:  fmt.Sprintf("variant for capability %q tenant %q already registered", c, tenant),
		}
	}
	b.variants[key] = variant
	return nil
}

// Resolve returns the variant to use for the capability and tenant. An
// empty tenant, or a tenant without a registered variant, yields the
// default. The fallback is silent: a tenant that has not customized a
// capability is the expected case, not an error.
func (b *Bindings) Resolve(c Capability, tenant orderly.TenantID) interface{} {
	if tenant != "" {
		if v, ok := b.variants[bindingKey{capability: c, tenant: tenant.Normalize()}]; ok {
			return v
		}
	}
	return b.defaults[c]
}

// Validate checks that every capability in the fixed set, and every
// capability any variant was registered under, has a default variant.
// A missing default aborts process startup; it must never surface at
// request time.
func (b *Bindings) Validate() error {
	var err error
	seen := make(map[Capability]bool)
	for _, c := range Capabilities() {
		seen[c] = true
		if _, ok := b.defaults[c]; !ok {
			err = multierr.Append(err, &errors.Error{
				Code: errors.EUnknownVariantConfiguration,
				Msg:  fmt.Sprintf("capability %q has no default variant", c),
			})
		}
	}
	for key := range b.variants {
		if seen[key.capability] {
			continue
		}
		seen[key.capability] = true
		if _, ok := b.defaults[key.capability]; !ok {
			err = multierr.Append(err, &errors.Error{
				Code: errors.EUnknownVariantConfiguration,
				Msg:  fmt.Sprintf("capability %q has tenant variants but no default variant", key.capability),
			})
		}
	}
	return err
}
