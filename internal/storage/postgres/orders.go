package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, organization_id, client_id, title, description, total_amount, paid_amount, status, due_date, created_at, updated_at`

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.OrganizationID, &o.ClientID, &o.Title, &o.Description,
		&o.TotalAmount, &o.PaidAmount, &o.Status, &o.DueDate, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func collectOrders(rows pgx.Rows, err error) ([]model.Order, error) {
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Order, error) {
		return scanOrder(row)
	})
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (organization_id, client_id, title, description, total_amount, status, due_date)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, paid_amount, created_at, updated_at`
	created := order
	err := r.storage.pool.QueryRow(ctx, query, order.OrganizationID, order.ClientID, order.Title, order.Description,
		order.TotalAmount, order.Status, order.DueDate).Scan(&created.ID, &created.PaidAmount, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) Get(ctx context.Context, orgID, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE organization_id=$1 AND id=$2`
	o, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orgID, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	o, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context, orgID int64, status model.OrderStatus) ([]model.Order, error) {
	if status == "" {
		const query = `SELECT ` + orderColumns + ` FROM orders WHERE organization_id=$1 ORDER BY created_at DESC, id DESC`
		return collectOrders(r.storage.pool.Query(ctx, query, orgID))
	}
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE organization_id=$1 AND status=$2 ORDER BY created_at DESC, id DESC`
	return collectOrders(r.storage.pool.Query(ctx, query, orgID, status))
}

func (r *orderRepository) ListByClient(ctx context.Context, orgID, clientID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE organization_id=$1 AND client_id=$2 ORDER BY created_at DESC, id DESC`
	return collectOrders(r.storage.pool.Query(ctx, query, orgID, clientID))
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orgID, id int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE organization_id=$2 AND id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, orgID, id)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
