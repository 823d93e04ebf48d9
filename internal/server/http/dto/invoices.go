package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// InvoiceRequest issues an invoice. Amount defaults to the order total.
type InvoiceRequest struct {
	OrderID int64            `json:"orderId" binding:"required,gt=0"`
	Amount  *decimal.Decimal `json:"amount"`
	DueAt   *time.Time       `json:"dueAt"`
}

// InvoiceResponse describes an invoice.
type InvoiceResponse struct {
	ID       int64           `json:"id"`
	OrderID  int64           `json:"orderId"`
	Number   string          `json:"number"`
	Amount   decimal.Decimal `json:"amount"`
	Status   string          `json:"status"`
	IssuedAt time.Time       `json:"issuedAt"`
	DueAt    *time.Time      `json:"dueAt,omitempty"`
}

func NewInvoice(i model.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:       i.ID,
		OrderID:  i.OrderID,
		Number:   i.Number,
		Amount:   i.Amount,
		Status:   string(i.Status),
		IssuedAt: i.IssuedAt,
		DueAt:    i.DueAt,
	}
}
