package repository

import (
	"context"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// OrganizationRepository manages tenants and their members.
type OrganizationRepository interface {
	// CreateWithOwner stores the owner user, the organization and the OWNER membership atomically.
	CreateWithOwner(ctx context.Context, owner model.User, org model.Organization) (*model.User, *model.Organization, error)
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	List(ctx context.Context) ([]model.Organization, error)
	// AddMember stores a new user and its WORKER membership atomically.
	AddMember(ctx context.Context, orgID int64, user model.User, permissions []string) (*model.Member, error)
	MembershipByUser(ctx context.Context, userID int64) (*model.Membership, error)
	ListMembers(ctx context.Context, orgID int64) ([]model.Member, error)
}
