package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
	pkgAuth "github.com/stitchcraft/stitchcraft/internal/pkg/auth"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
)

// TeamUseCase manages the workers of an organization.
type TeamUseCase struct {
	guard  *Guard
	orgs   repository.OrganizationRepository
	hasher pkgAuth.PasswordHasher
}

func NewTeamUseCase(guard *Guard, orgs repository.OrganizationRepository, hasher pkgAuth.PasswordHasher) *TeamUseCase {
	return &TeamUseCase{guard: guard, orgs: orgs, hasher: hasher}
}

// WorkerInput describes a new worker account. Permissions extend the WORKER role.
type WorkerInput struct {
	Name        string
	Email       string
	Password    string
	Permissions []string
}

func (u *TeamUseCase) AddWorker(ctx context.Context, in WorkerInput) (*model.Member, error) {
	actor, err := u.guard.Authorize(ctx, policy.WorkersManage)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	verr := &domainErrors.ValidationError{}
	validateAccount(verr, name, email, in.Password)
	perms := make([]string, 0, len(in.Permissions))
	for _, p := range in.Permissions {
		p = strings.TrimSpace(p)
		if !policy.ValidPattern(p) {
			verr.Add("permissions", "invalid permission "+p)
			continue
		}
		perms = append(perms, p)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	return u.orgs.AddMember(ctx, actor.OrganizationID, model.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         model.RoleWorker,
		Active:       true,
	}, perms)
}

func (u *TeamUseCase) ListMembers(ctx context.Context) ([]model.Member, error) {
	actor, err := u.guard.Authorize(ctx, policy.WorkersManage)
	if err != nil {
		return nil, err
	}
	return u.orgs.ListMembers(ctx, actor.OrganizationID)
}
