package notification_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
	"github.com/orderly-app/orderly/notification"
	"github.com/orderly-app/orderly/tenancy"
)

type mailerSpy struct {
	sent []notification.Message
	err  error
}

func (m *mailerSpy) Send(_ context.Context, msg notification.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type configStoreStub struct {
	configs map[string]*orderly.EmailConfig
	calls   int
	err     error
}

func (s *configStoreStub) FindEmailConfig(_ context.Context, tenant orderly.TenantID) (*orderly.EmailConfig, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	cfg, ok := s.configs[tenant.Normalize()]
	if !ok {
		return nil, &errors.Error{Code: errors.ENotFound}
	}
	return cfg, nil
}

func (s *configStoreStub) PutEmailConfig(_ context.Context, cfg *orderly.EmailConfig) error {
	s.configs[cfg.TenantID.Normalize()] = cfg
	return nil
}

func TestService_OrderCreated_TenantBranding(t *testing.T) {
	store := &configStoreStub{configs: map[string]*orderly.EmailConfig{
		"acme": {
			TenantID:    "AcMe",
			FromAddress: "orders@acme.example",
			FromName:    "AcMe Orders",
			Footer:      "AcMe Industries",
		},
	}}
	mailer := &mailerSpy{}
	svc := notification.NewService(store, mailer, zaptest.NewLogger(t))

	ctx := tenancy.WithTenant(context.Background(), "AcMe")
	o := &orderly.Order{GUID: "guid-1", Details: "fix the reactor"}
	require.NoError(t, svc.OrderCreated(ctx, o))

	want := []notification.Message{{
		From:    "AcMe Orders <orders@acme.example>",
		To:      notification.DefaultRecipient,
		Subject: "Order guid-1 created",
		Body:    "A new order was created.\n\nfix the reactor\n\n--\nAcMe Industries",
	}}
	if diff := cmp.Diff(want, mailer.sent); diff != "" {
		t.Fatalf("unexpected messages (-want/+got):\n%s", diff)
	}
}

func TestService_OrderUpdated_DefaultsWithoutTenant(t *testing.T) {
	store := &configStoreStub{configs: map[string]*orderly.EmailConfig{}}
	mailer := &mailerSpy{}
	svc := notification.NewService(store, mailer, zaptest.NewLogger(t))

	o := &orderly.Order{GUID: "guid-2", Details: "routine"}
	require.NoError(t, svc.OrderUpdated(context.Background(), o))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Orderly <no-reply@orderly.local>", mailer.sent[0].From)
	assert.Equal(t, "Order guid-2 updated", mailer.sent[0].Subject)
	// An untenanted request never hits the store.
	assert.Zero(t, store.calls)
}

func TestService_ConfigCaching(t *testing.T) {
	store := &configStoreStub{configs: map[string]*orderly.EmailConfig{
		"acme": {TenantID: "AcMe", FromAddress: "orders@acme.example", FromName: "AcMe"},
	}}
	mailer := &mailerSpy{}
	svc := notification.NewService(store, mailer, zaptest.NewLogger(t))

	ctx := tenancy.WithTenant(context.Background(), "acme")
	o := &orderly.Order{GUID: "guid-3", Details: "x"}

	require.NoError(t, svc.OrderCreated(ctx, o))
	require.NoError(t, svc.OrderCreated(ctx, o))
	assert.Equal(t, 1, store.calls)

	svc.InvalidateConfig("ACME")
	require.NoError(t, svc.OrderCreated(ctx, o))
	assert.Equal(t, 2, store.calls)
}

func TestService_MissingConfigFallsBackToDefaults(t *testing.T) {
	store := &configStoreStub{configs: map[string]*orderly.EmailConfig{}}
	mailer := &mailerSpy{}
	svc := notification.NewService(store, mailer, zaptest.NewLogger(t))

	ctx := tenancy.WithTenant(context.Background(), "Beta")
	require.NoError(t, svc.OrderCreated(ctx, &orderly.Order{GUID: "g", Details: "d"}))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Orderly <no-reply@orderly.local>", mailer.sent[0].From)
}

func TestService_SubjectPrefix(t *testing.T) {
	store := &configStoreStub{configs: map[string]*orderly.EmailConfig{}}
	mailer := &mailerSpy{}
	svc := notification.NewService(store, mailer, zaptest.NewLogger(t),
		notification.WithSubjectPrefix("Beta Portal"))

	require.NoError(t, svc.OrderCreated(context.Background(), &orderly.Order{GUID: "g", Details: "d"}))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Beta Portal: Order g created", mailer.sent[0].Subject)
}

func TestService_MailerFailure(t *testing.T) {
	store := &configStoreStub{configs: map[string]*orderly.EmailConfig{}}
	mailer := &mailerSpy{err: &errors.Error{Code: errors.EUnavailable, Msg: "smtp down"}}
	svc := notification.NewService(store, mailer, zaptest.NewLogger(t))

	err := svc.OrderCreated(context.Background(), &orderly.Order{GUID: "g", Details: "d"})
	assert.Equal(t, errors.EInternal, errors.ErrorCode(err))
}
