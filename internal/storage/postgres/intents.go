package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

type intentRepository struct {
	storage *Storage
}

const intentColumns = `id, reference, order_id, organization_id, amount, email, status, authorization_url, attempts, last_checked_at, created_at`

func scanIntent(row pgx.Row) (model.PaymentIntent, error) {
	var i model.PaymentIntent
	err := row.Scan(&i.ID, &i.Reference, &i.OrderID, &i.OrganizationID, &i.Amount, &i.Email, &i.Status,
		&i.AuthorizationURL, &i.Attempts, &i.LastCheckedAt, &i.CreatedAt)
	return i, err
}

func (r *intentRepository) Create(ctx context.Context, intent model.PaymentIntent) (*model.PaymentIntent, error) {
	const query = `INSERT INTO payment_intents (reference, order_id, organization_id, amount, email, status, authorization_url)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	created := intent
	err := r.storage.pool.QueryRow(ctx, query, intent.Reference, intent.OrderID, intent.OrganizationID, intent.Amount,
		intent.Email, intent.Status, intent.AuthorizationURL).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *intentRepository) GetByReference(ctx context.Context, reference string) (*model.PaymentIntent, error) {
	const query = `SELECT ` + intentColumns + ` FROM payment_intents WHERE reference=$1`
	i, err := scanIntent(r.storage.pool.QueryRow(ctx, query, reference))
	if err != nil {
		return nil, notFound(err)
	}
	return &i, nil
}

// SelectPendingForVerification claims a batch of pending intents and stamps them as checked,
// so concurrent reconcilers skip rows another one already holds.
func (r *intentRepository) SelectPendingForVerification(ctx context.Context, staleAfter time.Duration, limit int) ([]model.PaymentIntent, error) {
	const selectQuery = `SELECT ` + intentColumns + `
                         FROM payment_intents
                         WHERE status='PENDING' AND (last_checked_at IS NULL OR last_checked_at < $1)
                         ORDER BY created_at
                         LIMIT $2
                         FOR UPDATE SKIP LOCKED`
	const touchQuery = `UPDATE payment_intents SET attempts = attempts + 1, last_checked_at=$1 WHERE id=$2`

	cutoff := time.Now().Add(-staleAfter)
	var intents []model.PaymentIntent
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, cutoff, limit)
		if err != nil {
			return err
		}
		claimed, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PaymentIntent, error) {
			return scanIntent(row)
		})
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, intent := range claimed {
			if _, err := tx.Exec(ctx, touchQuery, now, intent.ID); err != nil {
				return err
			}
			intent.Attempts++
			checked := now
			intent.LastCheckedAt = &checked
			intents = append(intents, intent)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return intents, nil
}

func (r *intentRepository) UpdateStatus(ctx context.Context, reference string, status model.IntentStatus) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE payment_intents SET status=$1 WHERE reference=$2`, status, reference)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
