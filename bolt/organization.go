package bolt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
)

var (
	organizationBucket    = []byte("organizationsv1")
	organizationSlugIndex = []byte("organizationslugindexv1")

	// membership keys are userID||orgID: a prefix scan per user walks the
	// user's organizations in ascending organization ID order, which is
	// the ordering the tenancy resolver depends on.
	organizationMembersBucket = []byte("organizationmembersv1")
)

var _ orderly.OrganizationService = (*Client)(nil)

// FindOrganizationByID returns a single organization by ID.
func (c *Client) FindOrganizationByID(ctx context.Context, id orderly.ID) (*orderly.Organization, error) {
	var o *orderly.Organization
	err := c.db.View(func(tx *bolt.Tx) error {
		org, err := findOrganizationByID(tx, id)
		if err != nil {
			return err
		}
		o = org
		return nil
	})
	if err != nil {
		return nil, &errors.Error{Op: orderly.OpFindOrganizationByID, Err: err}
	}
	return o, nil
}

func findOrganizationByID(tx *bolt.Tx, id orderly.ID) (*orderly.Organization, error) {
	encodedID, err := id.Encode()
	if err != nil {
		return nil, &errors.Error{Code: errors.EInvalid, Err: err}
	}

	v := tx.Bucket(organizationBucket).Get(encodedID)
	if len(v) == 0 {
		return nil, &errors.Error{
			Code: errors.ENotFound,
			Msg:  "organization not found",
		}
	}

	var o orderly.Organization
	if err := json.Unmarshal(v, &o); err != nil {
		return nil, &errors.Error{Code: errors.EInternal, Err: err}
	}
	return &o, nil
}

// FindOrganizationBySlug returns a single organization by its slug.
// The slug index is keyed on the normalized form.
func (c *Client) FindOrganizationBySlug(ctx context.Context, slug string) (*orderly.Organization, error) {
	var o *orderly.Organization
	err := c.db.View(func(tx *bolt.Tx) error {
		idv := tx.Bucket(organizationSlugIndex).Get(slugKey(slug))
		if len(idv) == 0 {
			return &errors.Error{
				Code: errors.ENotFound,
				Msg:  fmt.Sprintf("organization with slug %q not found", slug),
			}
		}

		var id orderly.ID
		if err := id.Decode(idv); err != nil {
			return &errors.Error{Code: errors.EInternal, Err: err}
		}

		org, err := findOrganizationByID(tx, id)
		if err != nil {
			return err
		}
		o = org
		return nil
	})
	if err != nil {
		return nil, &errors.Error{Op: orderly.OpFindOrganizationBySlug, Err: err}
	}
	return o, nil
}

// FindOrganizations returns organizations matching filter.
func (c *Client) FindOrganizations(ctx context.Context, filter orderly.OrganizationFilter) ([]*orderly.Organization, error) {
	if filter.ID != nil {
		o, err := c.FindOrganizationByID(ctx, *filter.ID)
		if err != nil {
			return nil, err
		}
		return []*orderly.Organization{o}, nil
	}
	if filter.Slug != nil {
		o, err := c.FindOrganizationBySlug(ctx, *filter.Slug)
		if err != nil {
			return nil, err
		}
		return []*orderly.Organization{o}, nil
	}

	var orgs []*orderly.Organization
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(organizationBucket).ForEach(func(k, v []byte) error {
			var o orderly.Organization
			if err := json.Unmarshal(v, &o); err != nil {
				return err
			}
			orgs = append(orgs, &o)
			return nil
		})
	})
	if err != nil {
		return nil, &errors.Error{Op: orderly.OpFindOrganizations, Err: err}
	}
	return orgs, nil
}

// CreateOrganization creates a new organization and assigns its ID.
// Slugs are unique under normalization.
func (c *Client) CreateOrganization(ctx context.Context, o *orderly.Organization) error {
	if o.Slug == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Op:   orderly.OpCreateOrganization,
			Msg:  "organization slug must not be empty",
		}
	}

	err := c.db.Update(func(tx *bolt.Tx) error {
		if v := tx.Bucket(organizationSlugIndex).Get(slugKey(o.Slug)); len(v) != 0 {
			return &errors.Error{
				Code: errors.EConflict,
				Msg:  fmt.Sprintf("organization with slug %q already exists", o.Slug),
			}
		}

		b := tx.Bucket(organizationBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		o.ID = orderly.ID(seq)

		encodedID, err := o.ID.Encode()
		if err != nil {
			return err
		}
		v, err := json.Marshal(o)
		if err != nil {
			return err
		}
		if err := b.Put(encodedID, v); err != nil {
			return err
		}
		return tx.Bucket(organizationSlugIndex).Put(slugKey(o.Slug), encodedID)
	})
	if err != nil {
		return &errors.Error{Op: orderly.OpCreateOrganization, Err: err}
	}
	return nil
}

// DeleteOrganization removes an organization by ID.
func (c *Client) DeleteOrganization(ctx context.Context, id orderly.ID) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		o, err := findOrganizationByID(tx, id)
		if err != nil {
			return err
		}
		encodedID, err := id.Encode()
		if err != nil {
			return err
		}
		if err := tx.Bucket(organizationSlugIndex).Delete(slugKey(o.Slug)); err != nil {
			return err
		}
		return tx.Bucket(organizationBucket).Delete(encodedID)
	})
	if err != nil {
		return &errors.Error{Op: orderly.OpDeleteOrganization, Err: err}
	}
	return nil
}

// AddOrganizationMember records that the user belongs to the organization.
func (c *Client) AddOrganizationMember(ctx context.Context, orgID, userID orderly.ID) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		if _, err := findOrganizationByID(tx, orgID); err != nil {
			return err
		}
		key, err := memberKey(userID, orgID)
		if err != nil {
			return err
		}
		return tx.Bucket(organizationMembersBucket).Put(key, []byte{})
	})
	if err != nil {
		return &errors.Error{Op: orderly.OpAddOrganizationMember, Err: err}
	}
	return nil
}

// FindUserOrganizations returns the organizations the user belongs to,
// in ascending organization ID order.
func (c *Client) FindUserOrganizations(ctx context.Context, userID orderly.ID) ([]*orderly.Organization, error) {
	var orgs []*orderly.Organization
	err := c.db.View(func(tx *bolt.Tx) error {
		prefix, err := userID.Encode()
		if err != nil {
			return &errors.Error{Code: errors.EInvalid, Err: err}
		}

		cur := tx.Bucket(organizationMembersBucket).Cursor()
		for k, _ := cur.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = cur.Next() {
			var orgID orderly.ID
			if err := orgID.Decode(k[len(prefix):]); err != nil {
				return &errors.Error{Code: errors.EInternal, Err: err}
			}
			o, err := findOrganizationByID(tx, orgID)
			if err != nil {
				return err
			}
			orgs = append(orgs, o)
		}
		return nil
	})
	if err != nil {
		return nil, &errors.Error{Op: orderly.OpFindUserOrganizations, Err: err}
	}
	return orgs, nil
}

func slugKey(slug string) []byte {
	return []byte(orderly.TenantID(slug).Normalize())
}

func memberKey(userID, orgID orderly.ID) ([]byte, error) {
	u, err := userID.Encode()
	if err != nil {
		return nil, err
	}
	o, err := orgID.Encode()
	if err != nil {
		return nil, err
	}
	return append(u, o...), nil
}
