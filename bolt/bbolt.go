// Package bolt implements the persistence collaborators over a single
// boltdb file: organizations with memberships, users, projects, orders
// and tenant email configs.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Client is a client for the boltDB data store.
type Client struct {
	Path string

	db  *bolt.DB
	log *zap.Logger
}

// NewClient returns an instance of a Client.
func NewClient(log *zap.Logger) *Client {
	return &Client{
		log: log,
	}
}

// DB returns the clients DB.
func (c *Client) DB() *bolt.DB {
	return c.db
}

// Open opens or creates the boltDB file at c.Path and ensures all
// buckets exist.
func (c *Client) Open(ctx context.Context) error {
	if c.Path == "" {
		return fmt.Errorf("bolt: path required")
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0700); err != nil {
		return fmt.Errorf("unable to create directory %s: %v", filepath.Dir(c.Path), err)
	}

	if _, err := os.Stat(c.Path); err != nil && !os.IsNotExist(err) {
		return err
	}

	// The timeout bounds the wait on the file lock held by another process.
	db, err := bolt.Open(c.Path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return fmt.Errorf("unable to open boltdb file %v", err)
	}
	c.db = db

	if err := c.initialize(ctx); err != nil {
		return err
	}

	c.log.Info("Resources opened", zap.String("path", c.Path))
	return nil
}

// initialize creates buckets that are missing.
func (c *Client) initialize(ctx context.Context) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		buckets := [][]byte{
			organizationBucket,
			organizationSlugIndex,
			organizationMembersBucket,
			userBucket,
			userEmailIndex,
			projectBucket,
			orderBucket,
			orderGUIDIndex,
			emailConfigBucket,
		}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
}

// Ping probes the store. It implements health.Pinger.
func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("bolt: store not open")
	}
	return c.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(organizationBucket) == nil {
			return fmt.Errorf("bolt: store not initialized")
		}
		return nil
	})
}

// Close the connection to the bolt database.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
