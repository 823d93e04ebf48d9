package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

type paymentRepository struct {
	storage *Storage
}

const paymentColumns = `id, order_id, organization_id, amount, method, reference, paid_at, notes, created_at`

func scanPayment(row pgx.Row) (model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.OrganizationID, &p.Amount, &p.Method, &p.Reference, &p.PaidAt, &p.Notes, &p.CreatedAt)
	return p, err
}

func collectPayments(rows pgx.Rows, err error) ([]model.Payment, error) {
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Payment, error) {
		return scanPayment(row)
	})
}

func (r *paymentRepository) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE reference=$1`
	p, err := scanPayment(r.storage.pool.QueryRow(ctx, query, reference))
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *paymentRepository) Record(ctx context.Context, payment model.Payment) (*model.Payment, error) {
	const insertPayment = `INSERT INTO payments (order_id, organization_id, amount, method, reference, paid_at, notes)
                           VALUES ($1, $2, $3, $4, $5, $6, $7)
                           ON CONFLICT (reference) DO NOTHING
                           RETURNING id, created_at`
	const bumpOrder = `UPDATE orders SET paid_amount = paid_amount + $1, updated_at=NOW() WHERE id=$2`

	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}
	recorded := payment
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertPayment, payment.OrderID, payment.OrganizationID, payment.Amount,
			payment.Method, payment.Reference, payment.PaidAt, payment.Notes).Scan(&recorded.ID, &recorded.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		tag, err := tx.Exec(ctx, bumpOrder, payment.Amount, payment.OrderID)
		if err != nil {
			return err
		}
		return requireAffected(tag)
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) && r.storage.logger != nil {
			r.storage.logger.Debug("payment reference already recorded", zap.String("reference", payment.Reference))
		}
		return nil, err
	}
	return &recorded, nil
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orgID, orderID int64) ([]model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE organization_id=$1 AND order_id=$2 ORDER BY paid_at DESC, id DESC`
	return collectPayments(r.storage.pool.Query(ctx, query, orgID, orderID))
}

func (r *paymentRepository) List(ctx context.Context, orgID int64) ([]model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE organization_id=$1 ORDER BY paid_at DESC, id DESC`
	return collectPayments(r.storage.pool.Query(ctx, query, orgID))
}

func (r *paymentRepository) ListByClient(ctx context.Context, orgID, clientID int64) ([]model.Payment, error) {
	const query = `SELECT p.id, p.order_id, p.organization_id, p.amount, p.method, p.reference, p.paid_at, p.notes, p.created_at
                   FROM payments p JOIN orders o ON o.id = p.order_id
                   WHERE p.organization_id=$1 AND o.client_id=$2 ORDER BY p.paid_at DESC, p.id DESC`
	return collectPayments(r.storage.pool.Query(ctx, query, orgID, clientID))
}
