package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
	"github.com/orderly-app/orderly/order"
)

var (
	orderBucket    = []byte("ordersv1")
	orderGUIDIndex = []byte("orderguidindexv1")
)

var _ order.Store = (*Client)(nil)

// CreateOrder persists o, assigning its sequential ID. The caller is
// responsible for GUID and timestamps.
func (c *Client) CreateOrder(ctx context.Context, o *orderly.Order) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		if v := tx.Bucket(orderGUIDIndex).Get([]byte(o.GUID)); len(v) != 0 {
			return &errors.Error{
				Code: errors.EConflict,
				Msg:  fmt.Sprintf("order with guid %q already exists", o.GUID),
			}
		}

		b := tx.Bucket(orderBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		o.ID = orderly.ID(seq)

		if err := putOrder(tx, o); err != nil {
			return err
		}
		encodedID, err := o.ID.Encode()
		if err != nil {
			return err
		}
		return tx.Bucket(orderGUIDIndex).Put([]byte(o.GUID), encodedID)
	})
	if err != nil {
		return &errors.Error{Op: orderly.OpCreateOrder, Err: err}
	}
	return nil
}

func putOrder(tx *bolt.Tx, o *orderly.Order) error {
	encodedID, err := o.ID.Encode()
	if err != nil {
		return &errors.Error{Code: errors.EInvalid, Err: err}
	}
	v, err := json.Marshal(o)
	if err != nil {
		return &errors.Error{Code: errors.EInternal, Err: err}
	}
	return tx.Bucket(orderBucket).Put(encodedID, v)
}

// FindOrderByID returns a single order by ID.
func (c *Client) FindOrderByID(ctx context.Context, id orderly.ID) (*orderly.Order, error) {
	var o *orderly.Order
	err := c.db.View(func(tx *bolt.Tx) error {
		ord, err := findOrderByID(tx, id)
		if err != nil {
			return err
		}
		o = ord
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func findOrderByID(tx *bolt.Tx, id orderly.ID) (*orderly.Order, error) {
	encodedID, err := id.Encode()
	if err != nil {
		return nil, &errors.Error{Code: errors.EInvalid, Err: err}
	}

	v := tx.Bucket(orderBucket).Get(encodedID)
	if len(v) == 0 {
		return nil, &errors.Error{
			Code: errors.ENotFound,
			Msg:  "order not found",
		}
	}

	var o orderly.Order
	if err := json.Unmarshal(v, &o); err != nil {
		return nil, &errors.Error{Code: errors.EInternal, Err: err}
	}
	return &o, nil
}

// FindOrderByGUID returns a single order by GUID.
func (c *Client) FindOrderByGUID(ctx context.Context, guid string) (*orderly.Order, error) {
	var o *orderly.Order
	err := c.db.View(func(tx *bolt.Tx) error {
		idv := tx.Bucket(orderGUIDIndex).Get([]byte(guid))
		if len(idv) == 0 {
			return &errors.Error{
				Code: errors.ENotFound,
				Msg:  fmt.Sprintf("order with guid %q not found", guid),
			}
		}

		var id orderly.ID
		if err := id.Decode(idv); err != nil {
			return &errors.Error{Code: errors.EInternal, Err: err}
		}

		ord, err := findOrderByID(tx, id)
		if err != nil {
			return err
		}
		o = ord
		return nil
	})
	if err != nil {
		return nil, &errors.Error{Op: orderly.OpFindOrderByGUID, Err: err}
	}
	return o, nil
}

// FindOrders returns orders matching filter, newest first, along with the
// total count of matching orders.
//
// Order keys are sequential so a reverse cursor walk yields newest first.
func (c *Client) FindOrders(ctx context.Context, filter orderly.OrderFilter, opts orderly.FindOptions) ([]*orderly.Order, int, error) {
	var (
		orders []*orderly.Order
		count  int
	)
	err := c.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(orderBucket).Cursor()
		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			var o orderly.Order
			if err := json.Unmarshal(v, &o); err != nil {
				return &errors.Error{Code: errors.EInternal, Err: err}
			}
			if filter.UserID != nil && o.UserID != *filter.UserID {
				continue
			}
			if filter.ProjectID != nil && o.ProjectID != *filter.ProjectID {
				continue
			}

			if count >= opts.Offset && len(orders) < opts.Limit {
				orders = append(orders, &o)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return nil, 0, &errors.Error{Op: orderly.OpFindOrders, Err: err}
	}
	return orders, count, nil
}

// PutOrder overwrites an existing order.
func (c *Client) PutOrder(ctx context.Context, o *orderly.Order) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		if _, err := findOrderByID(tx, o.ID); err != nil {
			return err
		}
		return putOrder(tx, o)
	})
	if err != nil {
		return &errors.Error{Op: orderly.OpUpdateOrder, Err: err}
	}
	return nil
}

// DeleteOrder removes an order by ID, along with its GUID index entry.
func (c *Client) DeleteOrder(ctx context.Context, id orderly.ID) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		o, err := findOrderByID(tx, id)
		if err != nil {
			return err
		}
		encodedID, err := id.Encode()
		if err != nil {
			return err
		}
		if err := tx.Bucket(orderGUIDIndex).Delete([]byte(o.GUID)); err != nil {
			return err
		}
		return tx.Bucket(orderBucket).Delete(encodedID)
	})
	if err != nil {
		return &errors.Error{Op: orderly.OpDeleteOrder, Err: err}
	}
	return nil
}
