package usecase

import (
	"context"
	"io"
	"strconv"
	"time"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
	"github.com/stitchcraft/stitchcraft/internal/pkg/export"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
)

// Export datasets.
const (
	DatasetClients  = "clients"
	DatasetInvoices = "invoices"
	DatasetPayments = "payments"
)

// ExportUseCase renders organization data as downloadable tables.
type ExportUseCase struct {
	guard    *Guard
	clients  repository.ClientRepository
	invoices repository.InvoiceRepository
	payments repository.PaymentRepository
}

func NewExportUseCase(guard *Guard, clients repository.ClientRepository, invoices repository.InvoiceRepository, payments repository.PaymentRepository) *ExportUseCase {
	return &ExportUseCase{guard: guard, clients: clients, invoices: invoices, payments: payments}
}

// Build loads dataset for the caller's organization with its fixed column set.
func (u *ExportUseCase) Build(ctx context.Context, dataset string) (export.Table, error) {
	actor, err := u.guard.Authorize(ctx, policy.ExportsRead)
	if err != nil {
		return export.Table{}, err
	}
	orgID := actor.OrganizationID

	switch dataset {
	case DatasetClients:
		clients, err := u.clients.List(ctx, orgID)
		if err != nil {
			return export.Table{}, err
		}
		t := export.Table{Name: dataset, Header: []string{"id", "name", "phone", "email", "created_at"}}
		for _, c := range clients {
			t.Rows = append(t.Rows, []string{strconv.FormatInt(c.ID, 10), c.Name, c.Phone, c.Email, formatTime(c.CreatedAt)})
		}
		return t, nil
	case DatasetInvoices:
		invoices, err := u.invoices.List(ctx, orgID)
		if err != nil {
			return export.Table{}, err
		}
		t := export.Table{Name: dataset, Header: []string{"number", "order_id", "amount", "status", "issued_at", "due_at"}}
		for _, inv := range invoices {
			due := ""
			if inv.DueAt != nil {
				due = formatTime(*inv.DueAt)
			}
			t.Rows = append(t.Rows, []string{inv.Number, strconv.FormatInt(inv.OrderID, 10), inv.Amount.StringFixed(2),
				string(inv.Status), formatTime(inv.IssuedAt), due})
		}
		return t, nil
	case DatasetPayments:
		payments, err := u.payments.List(ctx, orgID)
		if err != nil {
			return export.Table{}, err
		}
		t := export.Table{Name: dataset, Header: []string{"reference", "order_id", "amount", "method", "paid_at", "notes"}}
		for _, p := range payments {
			t.Rows = append(t.Rows, []string{p.Reference, strconv.FormatInt(p.OrderID, 10), p.Amount.StringFixed(2),
				string(p.Method), formatTime(p.PaidAt), p.Notes})
		}
		return t, nil
	}
	return export.Table{}, domainErrors.ErrNotFound
}

// Export writes dataset to w in the requested format.
func (u *ExportUseCase) Export(ctx context.Context, w io.Writer, dataset string, format export.Format) error {
	t, err := u.Build(ctx, dataset)
	if err != nil {
		return err
	}
	return export.Write(w, format, t)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
