package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

type organizationRepository struct {
	storage *Storage
}

const organizationColumns = `id, owner_id, name, slug, created_at`

func scanOrganization(row pgx.Row) (model.Organization, error) {
	var o model.Organization
	err := row.Scan(&o.ID, &o.OwnerID, &o.Name, &o.Slug, &o.CreatedAt)
	return o, err
}

func insertMembership(ctx context.Context, tx pgx.Tx, m model.Membership) (model.Membership, error) {
	const query = `INSERT INTO memberships (organization_id, user_id, role, permissions)
                   VALUES ($1, $2, $3, $4) RETURNING created_at`
	if m.Permissions == nil {
		m.Permissions = []string{}
	}
	err := tx.QueryRow(ctx, query, m.OrganizationID, m.UserID, m.Role, m.Permissions).Scan(&m.CreatedAt)
	return m, err
}

func (r *organizationRepository) CreateWithOwner(ctx context.Context, owner model.User, org model.Organization) (*model.User, *model.Organization, error) {
	var (
		user    *model.User
		created = org
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		user, err = insertUser(ctx, tx, owner)
		if err != nil {
			return err
		}

		const query = `INSERT INTO organizations (owner_id, name, slug) VALUES ($1, $2, $3) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, query, user.ID, org.Name, org.Slug).Scan(&created.ID, &created.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		created.OwnerID = user.ID

		_, err = insertMembership(ctx, tx, model.Membership{OrganizationID: created.ID, UserID: user.ID, Role: model.MembershipOwner})
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return user, &created, nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	const query = `SELECT ` + organizationColumns + ` FROM organizations WHERE id=$1`
	org, err := scanOrganization(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &org, nil
}

func (r *organizationRepository) List(ctx context.Context) ([]model.Organization, error) {
	const query = `SELECT ` + organizationColumns + ` FROM organizations ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Organization, error) {
		return scanOrganization(row)
	})
}

func (r *organizationRepository) AddMember(ctx context.Context, orgID int64, user model.User, permissions []string) (*model.Member, error) {
	var member model.Member
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		created, err := insertUser(ctx, tx, user)
		if err != nil {
			return err
		}
		membership, err := insertMembership(ctx, tx, model.Membership{
			OrganizationID: orgID,
			UserID:         created.ID,
			Role:           model.MembershipWorker,
			Permissions:    permissions,
		})
		if err != nil {
			return err
		}
		member = model.Member{User: *created, Membership: membership}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *organizationRepository) MembershipByUser(ctx context.Context, userID int64) (*model.Membership, error) {
	const query = `SELECT organization_id, user_id, role, permissions, created_at FROM memberships WHERE user_id=$1`
	var m model.Membership
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.Permissions, &m.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *organizationRepository) ListMembers(ctx context.Context, orgID int64) ([]model.Member, error) {
	const query = `SELECT u.id, u.email, u.name, u.role, u.active, u.created_at, m.role, m.permissions, m.created_at
                   FROM memberships m JOIN users u ON u.id = m.user_id
                   WHERE m.organization_id=$1 ORDER BY u.id`
	rows, err := r.storage.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Member, error) {
		var m model.Member
		err := row.Scan(&m.User.ID, &m.User.Email, &m.User.Name, &m.User.Role, &m.User.Active, &m.User.CreatedAt,
			&m.Membership.Role, &m.Membership.Permissions, &m.Membership.CreatedAt)
		m.Membership.OrganizationID = orgID
		m.Membership.UserID = m.User.ID
		return m, err
	})
}
