package tenancy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
	"github.com/orderly-app/orderly/mock"
	"github.com/orderly-app/orderly/tenancy"
)

func newTestBinder(t *testing.T, defaultTenant orderly.TenantID, orgs tenancy.OrganizationLookup) *tenancy.Binder {
	t.Helper()
	return tenancy.NewBinder(tenancy.BinderConfig{
		Registry:      tenancy.NewRegistry("AcMe", "Beta", "WayneEnt"),
		Bindings:      tenancy.NewBindings(),
		Organizations: orgs,
		DefaultTenant: defaultTenant,
		Log:           zaptest.NewLogger(t),
	})
}

func orgLookup(orgs ...*orderly.Organization) *mock.OrganizationService {
	return &mock.OrganizationService{
		FindUserOrganizationsF: func(context.Context, orderly.ID) ([]*orderly.Organization, error) {
			return orgs, nil
		},
	}
}

func TestResolver_Waterfall(t *testing.T) {
	userID := orderly.ID(7)

	cases := []struct {
		name    string
		signals tenancy.Signals
		orgs    tenancy.OrganizationLookup
		dflt    orderly.TenantID
		want    orderly.TenantID
		wantOK  bool
	}{
		{
			name: "explicit signal wins over everything",
			signals: tenancy.Signals{
				Header:    "WayneEnt",
				Host:      "beta.app.com",
				Principal: &userID,
			},
			orgs:   orgLookup(&orderly.Organization{ID: 1, Slug: "acme"}),
			dflt:   "Beta",
			want:   "WayneEnt",
			wantOK: true,
		},
		{
			name: "explicit signal is case-insensitive",
			signals: tenancy.Signals{
				Header: "wayneent",
			},
			want:   "WayneEnt",
			wantOK: true,
		},
		{
			name: "unknown explicit signal falls through to host",
			signals: tenancy.Signals{
				Header: "globex",
				Host:   "beta.app.com",
			},
			want:   "Beta",
			wantOK: true,
		},
		{
			name: "host with three labels yields subdomain",
			signals: tenancy.Signals{
				Host: "beta.app.com",
			},
			want:   "Beta",
			wantOK: true,
		},
		{
			name: "host with two labels has no subdomain",
			signals: tenancy.Signals{
				Host: "app.com",
			},
			wantOK: false,
		},
		{
			name: "unknown subdomain falls through to principal",
			signals: tenancy.Signals{
				Host:      "globex.app.com",
				Principal: &userID,
			},
			orgs:   orgLookup(&orderly.Organization{ID: 1, Slug: "acme"}),
			want:   "AcMe",
			wantOK: true,
		},
		{
			name: "principal-only signal resolves",
			signals: tenancy.Signals{
				Principal: &userID,
			},
			orgs:   orgLookup(&orderly.Organization{ID: 1, Slug: "acme"}),
			want:   "AcMe",
			wantOK: true,
		},
		{
			name: "principal first organization is the lowest ID",
			signals: tenancy.Signals{
				Principal: &userID,
			},
			orgs: orgLookup(
				&orderly.Organization{ID: 2, Slug: "beta"},
				&orderly.Organization{ID: 9, Slug: "wayneent"},
			),
			want:   "Beta",
			wantOK: true,
		},
		{
			name: "principal with unknown org slug falls through to default",
			signals: tenancy.Signals{
				Principal: &userID,
			},
			orgs:   orgLookup(&orderly.Organization{ID: 1, Slug: "globex"}),
			dflt:   "AcMe",
			want:   "AcMe",
			wantOK: true,
		},
		{
			name:   "configured default is not validated against the registry",
			dflt:   "internal-ops",
			want:   "internal-ops",
			wantOK: true,
		},
		{
			name:   "no signals and no default resolves to none",
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBinder(t, tc.dflt, tc.orgs)
			res := b.NewResolver(tc.signals)

			tenant, ok := res.Current(context.Background())
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, tenant)
			}
		})
	}
}

func TestResolver_Required(t *testing.T) {
	b := newTestBinder(t, "", nil)

	res := b.NewResolver(tenancy.Signals{})
	_, err := res.Required(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ENoTenant, errors.ErrorCode(err))

	res = b.NewResolver(tenancy.Signals{Header: "AcMe"})
	tenant, err := res.Required(context.Background())
	require.NoError(t, err)
	assert.Equal(t, orderly.TenantID("AcMe"), tenant)
}

func TestResolver_Memoization(t *testing.T) {
	userID := orderly.ID(7)
	lookups := 0
	orgs := &mock.OrganizationService{
		FindUserOrganizationsF: func(context.Context, orderly.ID) ([]*orderly.Organization, error) {
			lookups++
			return []*orderly.Organization{{ID: 1, Slug: "acme"}}, nil
		},
	}

	b := newTestBinder(t, "", orgs)
	res := b.NewResolver(tenancy.Signals{Principal: &userID})

	first, ok := res.Current(context.Background())
	require.True(t, ok)
	second, ok := res.Current(context.Background())
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, lookups, "waterfall must not re-run once memoized")
}

func TestResolver_MemoizesNone(t *testing.T) {
	b := newTestBinder(t, "", nil)
	res := b.NewResolver(tenancy.Signals{})

	_, ok := res.Current(context.Background())
	require.False(t, ok)
	_, ok = res.Current(context.Background())
	require.False(t, ok)
}

func TestResolver_Override(t *testing.T) {
	b := newTestBinder(t, "Beta", nil)
	res := b.NewResolver(tenancy.Signals{})

	res.Override("WayneEnt")

	tenant, ok := res.Current(context.Background())
	require.True(t, ok)
	assert.Equal(t, orderly.TenantID("WayneEnt"), tenant)
}

func TestResolver_LookupFailureIsMissedSignal(t *testing.T) {
	userID := orderly.ID(7)
	orgs := &mock.OrganizationService{
		FindUserOrganizationsF: func(context.Context, orderly.ID) ([]*orderly.Organization, error) {
			return nil, &errors.Error{Code: errors.EUnavailable, Msg: "store offline"}
		},
	}

	b := newTestBinder(t, "Beta", orgs)
	res := b.NewResolver(tenancy.Signals{Principal: &userID})

	tenant, ok := res.Current(context.Background())
	require.True(t, ok)
	assert.Equal(t, orderly.TenantID("Beta"), tenant)
}

func TestSignalsFromRequest_StripsPort(t *testing.T) {
	s := tenancy.SignalsFromRequest("beta.app.com:8086", "", nil)
	assert.Equal(t, "beta.app.com", s.Host)
}
