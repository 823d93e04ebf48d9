package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// PaymentRequest records a manual payment.
type PaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	PaidAt    *time.Time      `json:"paidAt"`
	Notes     string          `json:"notes"`
}

// PaymentResponse describes a stored payment.
type PaymentResponse struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	PaidAt    time.Time       `json:"paidAt"`
	Notes     string          `json:"notes,omitempty"`
}

// PaymentResultResponse is returned by payment recording.
type PaymentResultResponse struct {
	Payment         PaymentResponse `json:"payment"`
	AlreadyRecorded bool            `json:"alreadyRecorded"`
}

// CheckoutRequest starts an online payment. Amount defaults to the outstanding balance.
type CheckoutRequest struct {
	Email  string           `json:"email" binding:"omitempty,email"`
	Amount *decimal.Decimal `json:"amount"`
}

// CheckoutResponse points the payer to the provider.
type CheckoutResponse struct {
	Reference        string          `json:"reference"`
	AuthorizationURL string          `json:"authorizationUrl"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
}

// CheckoutStatusResponse reports a verified checkout.
type CheckoutStatusResponse struct {
	Reference       string           `json:"reference"`
	Status          string           `json:"status"`
	Payment         *PaymentResponse `json:"payment,omitempty"`
	AlreadyRecorded bool             `json:"alreadyRecorded,omitempty"`
}

func NewPayment(p model.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Method:    string(p.Method),
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
		Notes:     p.Notes,
	}
}

func NewPayments(items []model.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewPayment(p))
	}
	return out
}

func NewCheckout(in model.PaymentIntent) CheckoutResponse {
	return CheckoutResponse{
		Reference:        in.Reference,
		AuthorizationURL: in.AuthorizationURL,
		Amount:           in.Amount,
		Status:           string(in.Status),
	}
}
