package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	testhelpers "github.com/stitchcraft/stitchcraft/internal/test"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

func TestTrackingTokenLifecycle(t *testing.T) {
	env := testhelpers.NewEnv(t)
	tenant := env.Tailor(t, "Kaba Corner")
	client := env.Client(t, tenant, "Araba")

	issued, err := env.Services.Tracking.Issue(tenant.Ctx(), client.ID, 0)
	require.NoError(t, err)
	require.Len(t, issued.Token.Token, 32)
	require.Nil(t, issued.Token.ExpiresAt)
	require.Equal(t, "https://stitchcraft.test/track/"+issued.Token.Token, issued.URL)

	result, err := env.Services.Tracking.Validate(context.Background(), issued.Token.Token)
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.Equal(t, client.ID, result.Client.ID)
	require.Equal(t, tenant.OrgID(), result.Tailor.Organization.ID)
	require.Equal(t, tenant.Actor.User.ID, result.Tailor.Owner.ID)
	require.Empty(t, result.Tailor.Owner.PasswordHash)

	tokens, err := env.Services.Tracking.List(tenant.Ctx(), client.ID)
	require.NoError(t, err)
	require.Len(t, tokens, 1)

	require.NoError(t, env.Services.Tracking.Deactivate(tenant.Ctx(), issued.Token.ID))
	result, err = env.Services.Tracking.Validate(context.Background(), issued.Token.Token)
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Equal(t, usecase.TokenInactive, result.Error)
	require.Nil(t, result.Client)
	require.Nil(t, result.Tailor)
}

func TestTrackingTokenRejections(t *testing.T) {
	env := testhelpers.NewEnv(t)
	tenant := env.Tailor(t, "Expiry Tailors")
	client := env.Client(t, tenant, "Kojo")

	past := time.Now().Add(-time.Hour)
	expired, err := env.Store.TrackingTokens().Create(context.Background(), model.TrackingToken{
		Token: "expired-token", ClientID: client.ID, OrganizationID: tenant.OrgID(), Active: true, ExpiresAt: &past,
	})
	require.NoError(t, err)

	cases := []struct {
		token string
		want  usecase.TokenError
	}{
		{"", usecase.TokenInvalid},
		{"   ", usecase.TokenInvalid},
		{"unknown-token", usecase.TokenInvalid},
		{expired.Token, usecase.TokenExpired},
	}
	for _, tc := range cases {
		result, err := env.Services.Tracking.Validate(context.Background(), tc.token)
		require.NoError(t, err)
		require.False(t, result.Valid, "token %q", tc.token)
		require.Equal(t, tc.want, result.Error, "token %q", tc.token)
		require.Nil(t, result.Client)
		require.Nil(t, result.Tailor)
	}

	_, err = env.Services.Tracking.Portal(context.Background(), expired.Token)
	var rejected *usecase.TokenRejectedError
	require.True(t, errors.As(err, &rejected))
	require.Equal(t, usecase.TokenExpired, rejected.Reason)
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestTrackingTokenWithTTL(t *testing.T) {
	env := testhelpers.NewEnv(t)
	tenant := env.Tailor(t, "TTL Tailors")
	client := env.Client(t, tenant, "Mensah")

	issued, err := env.Services.Tracking.Issue(tenant.Ctx(), client.ID, 48*time.Hour)
	require.NoError(t, err)
	require.NotNil(t, issued.Token.ExpiresAt)
	require.WithinDuration(t, time.Now().Add(48*time.Hour), *issued.Token.ExpiresAt, time.Minute)

	_, err = env.Services.Tracking.Issue(tenant.Ctx(), client.ID, -time.Hour)
	_, ok := domainErrors.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
}

func TestTrackingPortal(t *testing.T) {
	env := testhelpers.NewEnv(t)
	tenant := env.Tailor(t, "Portal Tailors")
	client := env.Client(t, tenant, "Adwoa")
	other := env.Client(t, tenant, "Someone Else")
	order := env.Order(t, tenant, client.ID, "250")
	env.Order(t, tenant, other.ID, "90")

	_, err := env.Services.Payments.Record(tenant.Ctx(), usecase.PaymentInput{
		OrderID: order.ID, Amount: testhelpers.Money("100"), Reference: "PORTAL-1", Method: model.PaymentMethodCash,
	})
	require.NoError(t, err)

	issued, err := env.Services.Tracking.Issue(tenant.Ctx(), client.ID, 0)
	require.NoError(t, err)

	portal, err := env.Services.Tracking.Portal(context.Background(), issued.Token.Token)
	require.NoError(t, err)
	require.Equal(t, client.ID, portal.Client.ID)
	require.Len(t, portal.Orders, 1)
	require.Equal(t, order.ID, portal.Orders[0].ID)
	require.Len(t, portal.Payments, 1)
	require.Equal(t, "PORTAL-1", portal.Payments[0].Reference)

	tokens, err := env.Services.Tracking.List(tenant.Ctx(), client.ID)
	require.NoError(t, err)
	require.NotNil(t, tokens[0].LastUsedAt)
}

func TestTrackingIsolation(t *testing.T) {
	env := testhelpers.NewEnv(t)
	alpha := env.Tailor(t, "Alpha Tracking")
	beta := env.Tailor(t, "Beta Tracking")
	client := env.Client(t, alpha, "Alpha Client")

	issued, err := env.Services.Tracking.Issue(alpha.Ctx(), client.ID, 0)
	require.NoError(t, err)

	_, err = env.Services.Tracking.Issue(beta.Ctx(), client.ID, 0)
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = env.Services.Tracking.List(beta.Ctx(), client.ID)
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
	require.ErrorIs(t, env.Services.Tracking.Deactivate(beta.Ctx(), issued.Token.ID), domainErrors.ErrNotFound)
	require.True(t, strings.HasSuffix(env.Services.Tracking.TrackingURL("abc"), "/track/abc"))
}
