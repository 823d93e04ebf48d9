package usecase

import (
	"context"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
)

// Guard enforces role and permission checks against the actor in context.
type Guard struct {
	policy *policy.Table
}

func NewGuard(table *policy.Table) *Guard {
	return &Guard{policy: table}
}

// RequireUser returns the active caller or ErrUnauthorized when there is none.
func (g *Guard) RequireUser(ctx context.Context) (*model.Actor, error) {
	actor, ok := ActorFrom(ctx)
	if !ok {
		return nil, domainErrors.ErrUnauthorized
	}
	if !actor.User.Active {
		return nil, domainErrors.ErrForbidden
	}
	return actor, nil
}

func (g *Guard) requireRole(ctx context.Context, role model.Role) (*model.Actor, error) {
	actor, err := g.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if actor.User.Role != role {
		return nil, domainErrors.ErrForbidden
	}
	return actor, nil
}

func (g *Guard) RequireActiveTailor(ctx context.Context) (*model.Actor, error) {
	return g.requireRole(ctx, model.RoleTailor)
}

func (g *Guard) RequireAdmin(ctx context.Context) (*model.Actor, error) {
	return g.requireRole(ctx, model.RoleAdmin)
}

// RequireClient also demands a linked client record.
func (g *Guard) RequireClient(ctx context.Context) (*model.Actor, error) {
	actor, err := g.requireRole(ctx, model.RoleClient)
	if err != nil {
		return nil, err
	}
	if actor.ClientID == 0 || !actor.HasOrganization() {
		return nil, domainErrors.ErrForbidden
	}
	return actor, nil
}

// RequireOrganization demands an actor working inside a tenant.
func (g *Guard) RequireOrganization(ctx context.Context) (*model.Actor, error) {
	actor, err := g.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.HasOrganization() {
		return nil, domainErrors.ErrForbidden
	}
	return actor, nil
}

// RequirePermission checks perm for organizationID. A foreign organization is reported as ErrNotFound.
func (g *Guard) RequirePermission(ctx context.Context, perm policy.Permission, organizationID int64) (*model.Actor, error) {
	actor, err := g.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if actor.User.Role == model.RoleAdmin {
		return actor, nil
	}
	if actor.OrganizationID != organizationID {
		return nil, domainErrors.ErrNotFound
	}
	if !g.policy.Allows(actor.User.Role, perm, actor.ExtraPermissions()) {
		return nil, domainErrors.ErrForbidden
	}
	return actor, nil
}

// Authorize checks perm inside the caller's own organization.
func (g *Guard) Authorize(ctx context.Context, perm policy.Permission) (*model.Actor, error) {
	actor, err := g.RequireOrganization(ctx)
	if err != nil {
		return nil, err
	}
	return g.RequirePermission(ctx, perm, actor.OrganizationID)
}
