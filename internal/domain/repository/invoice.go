package repository

import (
	"context"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// InvoiceRepository stores invoices. Create assigns the per-organization number.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice model.Invoice) (*model.Invoice, error)
	Get(ctx context.Context, orgID, id int64) (*model.Invoice, error)
	List(ctx context.Context, orgID int64) ([]model.Invoice, error)
	Void(ctx context.Context, orgID, id int64) error
}
