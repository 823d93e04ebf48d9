package usecase

import (
	"context"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
)

// AdminUseCase exposes platform-wide operations to administrators.
type AdminUseCase struct {
	guard *Guard
	orgs  repository.OrganizationRepository
	users repository.UserRepository
}

func NewAdminUseCase(guard *Guard, orgs repository.OrganizationRepository, users repository.UserRepository) *AdminUseCase {
	return &AdminUseCase{guard: guard, orgs: orgs, users: users}
}

func (u *AdminUseCase) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	if _, err := u.guard.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return u.orgs.List(ctx)
}

// SetUserActive enables or disables a login. Administrators cannot disable themselves.
func (u *AdminUseCase) SetUserActive(ctx context.Context, userID int64, active bool) (*model.User, error) {
	actor, err := u.guard.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if actor.User.ID == userID && !active {
		return nil, domainErrors.Validation("active", "cannot deactivate your own account")
	}
	if err := u.users.SetActive(ctx, userID, active); err != nil {
		return nil, err
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	usr.PasswordHash = ""
	return usr, nil
}
