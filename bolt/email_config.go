package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
)

var emailConfigBucket = []byte("emailconfigsv1")

var _ orderly.EmailConfigStore = (*Client)(nil)

// FindEmailConfig returns the email branding row for tenant.
func (c *Client) FindEmailConfig(ctx context.Context, tenant orderly.TenantID) (*orderly.EmailConfig, error) {
	var cfg *orderly.EmailConfig
	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(emailConfigBucket).Get(tenantKey(tenant))
		if len(v) == 0 {
			return &errors.Error{
				Code: errors.ENotFound,
				Msg:  fmt.Sprintf("email config for tenant %q not found", tenant),
			}
		}
		var ec orderly.EmailConfig
		if err := json.Unmarshal(v, &ec); err != nil {
			return &errors.Error{Code: errors.EInternal, Err: err}
		}
		cfg = &ec
		return nil
	})
	if err != nil {
		return nil, &errors.Error{Op: "FindEmailConfig", Err: err}
	}
	return cfg, nil
}

// PutEmailConfig creates or replaces the email branding row for cfg.TenantID.
func (c *Client) PutEmailConfig(ctx context.Context, cfg *orderly.EmailConfig) error {
	if cfg.TenantID == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Op:   "PutEmailConfig",
			Msg:  "tenant id must not be empty",
		}
	}

	err := c.db.Update(func(tx *bolt.Tx) error {
		v, err := json.Marshal(cfg)
		if err != nil {
			return &errors.Error{Code: errors.EInternal, Err: err}
		}
		return tx.Bucket(emailConfigBucket).Put(tenantKey(cfg.TenantID), v)
	})
	if err != nil {
		return &errors.Error{Op: "PutEmailConfig", Err: err}
	}
	return nil
}

func tenantKey(tenant orderly.TenantID) []byte {
	return []byte(tenant.Normalize())
}
