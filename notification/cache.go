package notification

import (
	"sync"

	"github.com/orderly-app/orderly"
)

// configCache is the tenant-keyed email config cache. Unlike the tenancy
// registries it is shared mutable state, so reads and writes are guarded.
type configCache struct {
	mu      sync.RWMutex
	configs map[string]*orderly.EmailConfig
}

func newConfigCache() *configCache {
	return &configCache{
		configs: make(map[string]*orderly.EmailConfig),
	}
}

func (c *configCache) get(tenant orderly.TenantID) (*orderly.EmailConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.configs[tenant.Normalize()]
	return cfg, ok
}

func (c *configCache) put(tenant orderly.TenantID, cfg *orderly.EmailConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configs[tenant.Normalize()] = cfg
}

func (c *configCache) invalidate(tenant orderly.TenantID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.configs, tenant.Normalize())
}
