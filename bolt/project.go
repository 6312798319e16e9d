package bolt

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
)

var projectBucket = []byte("projectsv1")

var _ orderly.ProjectService = (*Client)(nil)

// FindProjectByID returns a single project by ID.
func (c *Client) FindProjectByID(ctx context.Context, id orderly.ID) (*orderly.Project, error) {
	var p *orderly.Project
	err := c.db.View(func(tx *bolt.Tx) error {
		prj, err := findProjectByID(tx, id)
		if err != nil {
			return err
		}
		p = prj
		return nil
	})
	if err != nil {
		return nil, &errors.Error{Op: orderly.OpFindProjectByID, Err: err}
	}
	return p, nil
}

func findProjectByID(tx *bolt.Tx, id orderly.ID) (*orderly.Project, error) {
	encodedID, err := id.Encode()
	if err != nil {
		return nil, &errors.Error{Code: errors.EInvalid, Err: err}
	}

	v := tx.Bucket(projectBucket).Get(encodedID)
	if len(v) == 0 {
		return nil, &errors.Error{
			Code: errors.ENotFound,
			Msg:  "project not found",
		}
	}

	var p orderly.Project
	if err := json.Unmarshal(v, &p); err != nil {
		return nil, &errors.Error{Code: errors.EInternal, Err: err}
	}
	return &p, nil
}

// FindProjects returns projects matching filter.
func (c *Client) FindProjects(ctx context.Context, filter orderly.ProjectFilter) ([]*orderly.Project, error) {
	var projects []*orderly.Project
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(projectBucket).ForEach(func(k, v []byte) error {
			var p orderly.Project
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			if filter.OrganizationID != nil && p.OrganizationID != *filter.OrganizationID {
				return nil
			}
			if filter.GUID != nil && p.GUID != *filter.GUID {
				return nil
			}
			projects = append(projects, &p)
			return nil
		})
	})
	if err != nil {
		return nil, &errors.Error{Op: orderly.OpFindProjects, Err: err}
	}
	return projects, nil
}

// CreateProject creates a new project, assigning its ID and GUID.
func (c *Client) CreateProject(ctx context.Context, p *orderly.Project) error {
	if !p.OrganizationID.Valid() {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Op:   orderly.OpCreateProject,
			Msg:  "project organization id must be provided",
		}
	}

	err := c.db.Update(func(tx *bolt.Tx) error {
		if _, err := findOrganizationByID(tx, p.OrganizationID); err != nil {
			return err
		}

		b := tx.Bucket(projectBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		p.ID = orderly.ID(seq)
		if p.GUID == "" {
			p.GUID = uuid.NewString()
		}

		encodedID, err := p.ID.Encode()
		if err != nil {
			return err
		}
		v, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return b.Put(encodedID, v)
	})
	if err != nil {
		return &errors.Error{Op: orderly.OpCreateProject, Err: err}
	}
	return nil
}

// DeleteProject removes a project by ID.
func (c *Client) DeleteProject(ctx context.Context, id orderly.ID) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		if _, err := findProjectByID(tx, id); err != nil {
			return err
		}
		encodedID, err := id.Encode()
		if err != nil {
			return err
		}
		return tx.Bucket(projectBucket).Delete(encodedID)
	})
	if err != nil {
		return &errors.Error{Op: orderly.OpDeleteProject, Err: err}
	}
	return nil
}
