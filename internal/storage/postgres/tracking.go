package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

type trackingRepository struct {
	storage *Storage
}

const trackingColumns = `id, token, client_id, organization_id, active, last_used_at, expires_at, created_at`

func scanTrackingToken(row pgx.Row) (model.TrackingToken, error) {
	var t model.TrackingToken
	err := row.Scan(&t.ID, &t.Token, &t.ClientID, &t.OrganizationID, &t.Active, &t.LastUsedAt, &t.ExpiresAt, &t.CreatedAt)
	return t, err
}

func (r *trackingRepository) Create(ctx context.Context, token model.TrackingToken) (*model.TrackingToken, error) {
	const query = `INSERT INTO tracking_tokens (token, client_id, organization_id, expires_at)
                   VALUES ($1, $2, $3, $4) RETURNING id, active, created_at`
	created := token
	err := r.storage.pool.QueryRow(ctx, query, token.Token, token.ClientID, token.OrganizationID, token.ExpiresAt).
		Scan(&created.ID, &created.Active, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *trackingRepository) GetByToken(ctx context.Context, token string) (*model.TrackingToken, error) {
	const query = `SELECT ` + trackingColumns + ` FROM tracking_tokens WHERE token=$1`
	t, err := scanTrackingToken(r.storage.pool.QueryRow(ctx, query, token))
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *trackingRepository) ListByClient(ctx context.Context, orgID, clientID int64) ([]model.TrackingToken, error) {
	const query = `SELECT ` + trackingColumns + ` FROM tracking_tokens WHERE organization_id=$1 AND client_id=$2 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, orgID, clientID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.TrackingToken, error) {
		return scanTrackingToken(row)
	})
}

func (r *trackingRepository) Deactivate(ctx context.Context, orgID, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE tracking_tokens SET active=FALSE WHERE organization_id=$1 AND id=$2`, orgID, id)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}

func (r *trackingRepository) Touch(ctx context.Context, id int64, at time.Time) error {
	_, err := r.storage.pool.Exec(ctx, `UPDATE tracking_tokens SET last_used_at=$1 WHERE id=$2`, at, id)
	return err
}
