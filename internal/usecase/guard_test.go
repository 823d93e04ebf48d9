package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
)

func newGuard(t *testing.T) *Guard {
	t.Helper()
	table, err := policy.Default()
	if err != nil {
		t.Fatalf("default policy: %v", err)
	}
	return NewGuard(table)
}

func TestGuardRequireUser(t *testing.T) {
	guard := newGuard(t)
	if _, err := guard.RequireUser(context.Background()); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized without actor, got %v", err)
	}

	inactive := &model.Actor{User: model.User{ID: 1, Role: model.RoleTailor}}
	if _, err := guard.RequireUser(WithActor(context.Background(), inactive)); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for inactive user, got %v", err)
	}

	active := &model.Actor{User: model.User{ID: 1, Role: model.RoleTailor, Active: true}}
	got, err := guard.RequireUser(WithActor(context.Background(), active))
	if err != nil || got != active {
		t.Fatalf("unexpected result: %v %v", got, err)
	}
}

func TestGuardRoles(t *testing.T) {
	guard := newGuard(t)
	tailor := WithActor(context.Background(), &model.Actor{User: model.User{ID: 1, Role: model.RoleTailor, Active: true}, OrganizationID: 5})
	admin := WithActor(context.Background(), &model.Actor{User: model.User{ID: 2, Role: model.RoleAdmin, Active: true}})
	client := WithActor(context.Background(), &model.Actor{User: model.User{ID: 3, Role: model.RoleClient, Active: true}, OrganizationID: 5, ClientID: 9})
	unlinked := WithActor(context.Background(), &model.Actor{User: model.User{ID: 4, Role: model.RoleClient, Active: true}})

	cases := []struct {
		name  string
		check func(context.Context) (*model.Actor, error)
		ctx   context.Context
		want  error
	}{
		{"tailor as tailor", guard.RequireActiveTailor, tailor, nil},
		{"admin as tailor", guard.RequireActiveTailor, admin, domainErrors.ErrForbidden},
		{"admin as admin", guard.RequireAdmin, admin, nil},
		{"tailor as admin", guard.RequireAdmin, tailor, domainErrors.ErrForbidden},
		{"client as client", guard.RequireClient, client, nil},
		{"unlinked client", guard.RequireClient, unlinked, domainErrors.ErrForbidden},
		{"tailor as client", guard.RequireClient, tailor, domainErrors.ErrForbidden},
		{"admin has no organization", guard.RequireOrganization, admin, domainErrors.ErrForbidden},
		{"tailor organization", guard.RequireOrganization, tailor, nil},
		{"anonymous", guard.RequireActiveTailor, context.Background(), domainErrors.ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.check(tc.ctx)
			if tc.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestGuardRequirePermission(t *testing.T) {
	guard := newGuard(t)
	worker := &model.Actor{
		User:           model.User{ID: 7, Role: model.RoleWorker, Active: true},
		OrganizationID: 5,
		Membership:     &model.Membership{OrganizationID: 5, UserID: 7, Role: model.MembershipWorker, Permissions: []string{"invoices:*"}},
	}
	ctx := WithActor(context.Background(), worker)

	if _, err := guard.RequirePermission(ctx, policy.OrdersWrite, 5); err != nil {
		t.Fatalf("worker role should allow orders:write: %v", err)
	}
	if _, err := guard.RequirePermission(ctx, policy.InvoicesWrite, 5); err != nil {
		t.Fatalf("membership should allow invoices:write: %v", err)
	}
	if _, err := guard.RequirePermission(ctx, policy.WorkersManage, 5); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for workers:manage, got %v", err)
	}
	if _, err := guard.RequirePermission(ctx, policy.OrdersRead, 6); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign organization, got %v", err)
	}

	admin := WithActor(context.Background(), &model.Actor{User: model.User{ID: 1, Role: model.RoleAdmin, Active: true}})
	if _, err := guard.RequirePermission(admin, policy.PaymentsWrite, 42); err != nil {
		t.Fatalf("admin should pass any organization: %v", err)
	}

	client := WithActor(context.Background(), &model.Actor{User: model.User{ID: 3, Role: model.RoleClient, Active: true}, OrganizationID: 5, ClientID: 1})
	if _, err := guard.Authorize(client, policy.OrdersRead); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("client role has no tenant permissions, got %v", err)
	}
}
