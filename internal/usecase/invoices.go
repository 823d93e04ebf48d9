package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
)

// InvoiceUseCase issues and voids invoices for orders.
type InvoiceUseCase struct {
	guard    *Guard
	orders   repository.OrderRepository
	invoices repository.InvoiceRepository
}

func NewInvoiceUseCase(guard *Guard, orders repository.OrderRepository, invoices repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{guard: guard, orders: orders, invoices: invoices}
}

// InvoiceInput describes an invoice to issue. A nil Amount bills the order total.
type InvoiceInput struct {
	OrderID int64
	Amount  *decimal.Decimal
	DueAt   *time.Time
}

func (u *InvoiceUseCase) Issue(ctx context.Context, in InvoiceInput) (*model.Invoice, error) {
	actor, err := u.guard.Authorize(ctx, policy.InvoicesWrite)
	if err != nil {
		return nil, err
	}
	order, err := u.orders.Get(ctx, actor.OrganizationID, in.OrderID)
	if err != nil {
		return nil, err
	}

	amount := order.TotalAmount
	if in.Amount != nil {
		amount = in.Amount.Round(2)
	}
	verr := &domainErrors.ValidationError{}
	if !amount.IsPositive() {
		verr.Add("amount", "must be greater than zero")
	}
	if order.Status == model.OrderStatusCancelled {
		verr.Add("orderId", "order is cancelled")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return u.invoices.Create(ctx, model.Invoice{
		OrganizationID: actor.OrganizationID,
		OrderID:        order.ID,
		Amount:         amount,
		Status:         model.InvoiceStatusIssued,
		DueAt:          in.DueAt,
	})
}

func (u *InvoiceUseCase) List(ctx context.Context) ([]model.Invoice, error) {
	actor, err := u.guard.Authorize(ctx, policy.InvoicesRead)
	if err != nil {
		return nil, err
	}
	return u.invoices.List(ctx, actor.OrganizationID)
}

func (u *InvoiceUseCase) Get(ctx context.Context, id int64) (*model.Invoice, error) {
	actor, err := u.guard.Authorize(ctx, policy.InvoicesRead)
	if err != nil {
		return nil, err
	}
	return u.invoices.Get(ctx, actor.OrganizationID, id)
}

// Void marks an issued invoice as void. Voiding twice is rejected.
func (u *InvoiceUseCase) Void(ctx context.Context, id int64) (*model.Invoice, error) {
	actor, err := u.guard.Authorize(ctx, policy.InvoicesWrite)
	if err != nil {
		return nil, err
	}
	invoice, err := u.invoices.Get(ctx, actor.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == model.InvoiceStatusVoid {
		return nil, domainErrors.Validation("status", "invoice is already void")
	}
	if err := u.invoices.Void(ctx, actor.OrganizationID, id); err != nil {
		return nil, err
	}
	invoice.Status = model.InvoiceStatusVoid
	return invoice, nil
}
