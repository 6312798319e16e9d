package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/bolt"
	"github.com/orderly-app/orderly/kit/platform/errors"
)

func newTestClient(t *testing.T) *bolt.Client {
	t.Helper()

	c := bolt.NewClient(zaptest.NewLogger(t))
	c.Path = filepath.Join(t.TempDir(), "orderly.bolt")
	require.NoError(t, c.Open(context.Background()))
	t.Cleanup(func() {
		assert.NoError(t, c.Close())
	})
	return c
}

func TestClient_Open(t *testing.T) {
	c := newTestClient(t)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestClient_Organizations(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	o := &orderly.Organization{Slug: "AcMe", Name: "AcMe Industries"}
	require.NoError(t, c.CreateOrganization(ctx, o))
	require.True(t, o.ID.Valid())

	t.Run("find by id", func(t *testing.T) {
		got, err := c.FindOrganizationByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "AcMe", got.Slug)
	})

	t.Run("find by slug is case-insensitive", func(t *testing.T) {
		got, err := c.FindOrganizationBySlug(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, o.ID, got.ID)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		err := c.CreateOrganization(ctx, &orderly.Organization{Slug: "ACME"})
		assert.Equal(t, errors.EConflict, errors.ErrorCode(err))
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		_, err := c.FindOrganizationBySlug(ctx, "globex")
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("delete removes slug index", func(t *testing.T) {
		gone := &orderly.Organization{Slug: "ephemeral"}
		require.NoError(t, c.CreateOrganization(ctx, gone))
		require.NoError(t, c.DeleteOrganization(ctx, gone.ID))

		_, err := c.FindOrganizationBySlug(ctx, "ephemeral")
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})
}

func TestClient_FindUserOrganizations_AscendingIDOrder(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	u := &orderly.User{Name: "bruce", Email: "bruce@wayneent.example"}
	require.NoError(t, c.CreateUser(ctx, u))

	var orgs []*orderly.Organization
	for _, slug := range []string{"WayneEnt", "AcMe", "Beta"} {
		o := &orderly.Organization{Slug: slug}
		require.NoError(t, c.CreateOrganization(ctx, o))
		orgs = append(orgs, o)
	}

	// Join in an order unrelated to creation order.
	require.NoError(t, c.AddOrganizationMember(ctx, orgs[2].ID, u.ID))
	require.NoError(t, c.AddOrganizationMember(ctx, orgs[0].ID, u.ID))
	require.NoError(t, c.AddOrganizationMember(ctx, orgs[1].ID, u.ID))

	got, err := c.FindUserOrganizations(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "WayneEnt", got[0].Slug)
	assert.Equal(t, "AcMe", got[1].Slug)
	assert.Equal(t, "Beta", got[2].Slug)

	t.Run("user with no memberships", func(t *testing.T) {
		loner := &orderly.User{Name: "loner", Email: "loner@example.com"}
		require.NoError(t, c.CreateUser(ctx, loner))

		got, err := c.FindUserOrganizations(ctx, loner.ID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestClient_Users(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	u := &orderly.User{Name: "alice", Email: "Alice@Example.com"}
	require.NoError(t, c.CreateUser(ctx, u))

	t.Run("find by email is case-insensitive", func(t *testing.T) {
		got, err := c.FindUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		err := c.CreateUser(ctx, &orderly.User{Name: "imposter", Email: "ALICE@example.com"})
		assert.Equal(t, errors.EConflict, errors.ErrorCode(err))
	})

	t.Run("delete removes email index", func(t *testing.T) {
		require.NoError(t, c.DeleteUser(ctx, u.ID))
		_, err := c.FindUserByEmail(ctx, "alice@example.com")
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})
}

func TestClient_Projects(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	org := &orderly.Organization{Slug: "acme"}
	require.NoError(t, c.CreateOrganization(ctx, org))

	p := &orderly.Project{Name: "rockets", OrganizationID: org.ID}
	require.NoError(t, c.CreateProject(ctx, p))
	assert.NotEmpty(t, p.GUID)

	t.Run("create requires existing organization", func(t *testing.T) {
		err := c.CreateProject(ctx, &orderly.Project{Name: "orphan", OrganizationID: 99})
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("filter by organization", func(t *testing.T) {
		got, err := c.FindProjects(ctx, orderly.ProjectFilter{OrganizationID: &org.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "rockets", got[0].Name)
	})

	t.Run("filter by guid", func(t *testing.T) {
		got, err := c.FindProjects(ctx, orderly.ProjectFilter{GUID: &p.GUID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, p.ID, got[0].ID)
	})
}

func TestClient_Orders(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	mkOrder := func(guid string, userID orderly.ID) *orderly.Order {
		o := &orderly.Order{
			GUID:      guid,
			UserID:    userID,
			ProjectID: 1,
			Details:   "details for " + guid,
		}
		require.NoError(t, c.CreateOrder(ctx, o))
		return o
	}

	o1 := mkOrder("guid-1", 1)
	o2 := mkOrder("guid-2", 1)
	o3 := mkOrder("guid-3", 2)

	t.Run("find by guid", func(t *testing.T) {
		got, err := c.FindOrderByGUID(ctx, "guid-2")
		require.NoError(t, err)
		assert.Equal(t, o2.ID, got.ID)
	})

	t.Run("duplicate guid conflicts", func(t *testing.T) {
		err := c.CreateOrder(ctx, &orderly.Order{GUID: "guid-1", UserID: 1, ProjectID: 1})
		assert.Equal(t, errors.EConflict, errors.ErrorCode(err))
	})

	t.Run("find returns newest first with total count", func(t *testing.T) {
		got, n, err := c.FindOrders(ctx, orderly.OrderFilter{}, orderly.FindOptions{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		require.Len(t, got, 2)
		assert.Equal(t, o3.ID, got[0].ID)
		assert.Equal(t, o2.ID, got[1].ID)
	})

	t.Run("offset pages past newest", func(t *testing.T) {
		got, n, err := c.FindOrders(ctx, orderly.OrderFilter{}, orderly.FindOptions{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		require.Len(t, got, 1)
		assert.Equal(t, o1.ID, got[0].ID)
	})

	t.Run("filter by user", func(t *testing.T) {
		userID := orderly.ID(2)
		got, n, err := c.FindOrders(ctx, orderly.OrderFilter{UserID: &userID}, orderly.FindOptions{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		require.Len(t, got, 1)
		assert.Equal(t, o3.ID, got[0].ID)
	})

	t.Run("put overwrites", func(t *testing.T) {
		o1.Details = "amended"
		require.NoError(t, c.PutOrder(ctx, o1))

		got, err := c.FindOrderByID(ctx, o1.ID)
		require.NoError(t, err)
		assert.Equal(t, "amended", got.Details)
	})

	t.Run("delete removes guid index", func(t *testing.T) {
		require.NoError(t, c.DeleteOrder(ctx, o3.ID))
		_, err := c.FindOrderByGUID(ctx, "guid-3")
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})
}

func TestClient_EmailConfig(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	cfg := &orderly.EmailConfig{
		TenantID:    "AcMe",
		FromAddress: "no-reply@acme.example",
		FromName:    "AcMe Orders",
		Footer:      "AcMe Industries",
	}
	require.NoError(t, c.PutEmailConfig(ctx, cfg))

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		got, err := c.FindEmailConfig(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, "AcMe Orders", got.FromName)
	})

	t.Run("missing tenant is not found", func(t *testing.T) {
		_, err := c.FindEmailConfig(ctx, "wayneent")
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("put replaces", func(t *testing.T) {
		cfg.FromName = "AcMe Operations"
		require.NoError(t, c.PutEmailConfig(ctx, cfg))

		got, err := c.FindEmailConfig(ctx, "ACME")
		require.NoError(t, err)
		assert.Equal(t, "AcMe Operations", got.FromName)
	})
}
