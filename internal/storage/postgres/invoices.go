package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

type invoiceRepository struct {
	storage *Storage
}

const invoiceColumns = `id, organization_id, order_id, number, amount, status, issued_at, due_at`

func scanInvoice(row pgx.Row) (model.Invoice, error) {
	var i model.Invoice
	err := row.Scan(&i.ID, &i.OrganizationID, &i.OrderID, &i.Number, &i.Amount, &i.Status, &i.IssuedAt, &i.DueAt)
	return i, err
}

// InvoiceNumber formats the per-organization invoice number for a year and sequence.
func InvoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV-%d-%04d", year, seq)
}

func (r *invoiceRepository) Create(ctx context.Context, invoice model.Invoice) (*model.Invoice, error) {
	const nextSeq = `INSERT INTO invoice_sequences (organization_id, year, last) VALUES ($1, $2, 1)
                     ON CONFLICT (organization_id, year) DO UPDATE SET last = invoice_sequences.last + 1
                     RETURNING last`
	const insertInvoice = `INSERT INTO invoices (organization_id, order_id, number, amount, status, issued_at, due_at)
                           VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	created := invoice
	if created.IssuedAt.IsZero() {
		created.IssuedAt = time.Now().UTC()
	}
	if created.Status == "" {
		created.Status = model.InvoiceStatusIssued
	}
	year := created.IssuedAt.Year()

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var seq int
		if err := tx.QueryRow(ctx, nextSeq, created.OrganizationID, year).Scan(&seq); err != nil {
			return err
		}
		created.Number = InvoiceNumber(year, seq)
		return tx.QueryRow(ctx, insertInvoice, created.OrganizationID, created.OrderID, created.Number,
			created.Amount, created.Status, created.IssuedAt, created.DueAt).Scan(&created.ID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *invoiceRepository) Get(ctx context.Context, orgID, id int64) (*model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE organization_id=$1 AND id=$2`
	i, err := scanInvoice(r.storage.pool.QueryRow(ctx, query, orgID, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &i, nil
}

func (r *invoiceRepository) List(ctx context.Context, orgID int64) ([]model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE organization_id=$1 ORDER BY issued_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Invoice, error) {
		return scanInvoice(row)
	})
}

func (r *invoiceRepository) Void(ctx context.Context, orgID, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE invoices SET status=$1 WHERE organization_id=$2 AND id=$3`, model.InvoiceStatusVoid, orgID, id)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
