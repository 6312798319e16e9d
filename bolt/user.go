package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
)

var (
	userBucket     = []byte("usersv1")
	userEmailIndex = []byte("useremailindexv1")
)

var _ orderly.UserService = (*Client)(nil)

// FindUserByID returns a single user by ID.
func (c *Client) FindUserByID(ctx context.Context, id orderly.ID) (*orderly.User, error) {
	var u *orderly.User
	err := c.db.View(func(tx *bolt.Tx) error {
		usr, err := findUserByID(tx, id)
		if err != nil {
			return err
		}
		u = usr
		return nil
	})
	if err != nil {
		return nil, &errors.Error{Op: orderly.OpFindUserByID, Err: err}
	}
	return u, nil
}

func findUserByID(tx *bolt.Tx, id orderly.ID) (*orderly.User, error) {
	encodedID, err := id.Encode()
	if err != nil {
		return nil, &errors.Error{Code: errors.EInvalid, Err: err}
	}

	v := tx.Bucket(userBucket).Get(encodedID)
	if len(v) == 0 {
		return nil, &errors.Error{
			Code: errors.ENotFound,
			Msg:  "user not found",
		}
	}

	var u orderly.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, &errors.Error{Code: errors.EInternal, Err: err}
	}
	return &u, nil
}

// FindUserByEmail returns a single user by email address.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*orderly.User, error) {
	var u *orderly.User
	err := c.db.View(func(tx *bolt.Tx) error {
		idv := tx.Bucket(userEmailIndex).Get(emailKey(email))
		if len(idv) == 0 {
			return &errors.Error{
				Code: errors.ENotFound,
				Msg:  fmt.Sprintf("user with email %q not found", email),
			}
		}

		var id orderly.ID
		if err := id.Decode(idv); err != nil {
			return &errors.Error{Code: errors.EInternal, Err: err}
		}

		usr, err := findUserByID(tx, id)
		if err != nil {
			return err
		}
		u = usr
		return nil
	})
	if err != nil {
		return nil, &errors.Error{Op: orderly.OpFindUserByEmail, Err: err}
	}
	return u, nil
}

// FindUsers returns all users.
func (c *Client) FindUsers(ctx context.Context) ([]*orderly.User, error) {
	var users []*orderly.User
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(userBucket).ForEach(func(k, v []byte) error {
			var u orderly.User
			if err := json.Unmarshal(v, &u); err != nil {
				return err
			}
			users = append(users, &u)
			return nil
		})
	})
	if err != nil {
		return nil, &errors.Error{Op: orderly.OpFindUsers, Err: err}
	}
	return users, nil
}

// CreateUser creates a new user and assigns its ID. Emails are unique.
func (c *Client) CreateUser(ctx context.Context, u *orderly.User) error {
	if u.Email == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Op:   orderly.OpCreateUser,
			Msg:  "user email must not be empty",
		}
	}

	err := c.db.Update(func(tx *bolt.Tx) error {
		if v := tx.Bucket(userEmailIndex).Get(emailKey(u.Email)); len(v) != 0 {
			return &errors.Error{
				Code: errors.EConflict,
				Msg:  fmt.Sprintf("user with email %q already exists", u.Email),
			}
		}

		b := tx.Bucket(userBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		u.ID = orderly.ID(seq)

		encodedID, err := u.ID.Encode()
		if err != nil {
			return err
		}
		v, err := json.Marshal(u)
		if err != nil {
			return err
		}
		if err := b.Put(encodedID, v); err != nil {
			return err
		}
		return tx.Bucket(userEmailIndex).Put(emailKey(u.Email), encodedID)
	})
	if err != nil {
		return &errors.Error{Op: orderly.OpCreateUser, Err: err}
	}
	return nil
}

// DeleteUser removes a user by ID, along with its email index entry.
func (c *Client) DeleteUser(ctx context.Context, id orderly.ID) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		u, err := findUserByID(tx, id)
		if err != nil {
			return err
		}
		encodedID, err := id.Encode()
		if err != nil {
			return err
		}
		if err := tx.Bucket(userEmailIndex).Delete(emailKey(u.Email)); err != nil {
			return err
		}
		return tx.Bucket(userBucket).Delete(encodedID)
	})
	if err != nil {
		return &errors.Error{Op: orderly.OpDeleteUser, Err: err}
	}
	return nil
}

func emailKey(email string) []byte {
	return []byte(strings.ToLower(email))
}
