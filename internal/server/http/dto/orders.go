package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// OrderRequest creates an order.
type OrderRequest struct {
	ClientID    int64           `json:"clientId" binding:"required,gt=0"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	DueDate     *time.Time      `json:"dueDate"`
}

// StatusRequest changes an order status.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse describes an order with its balance.
type OrderResponse struct {
	ID          int64           `json:"id"`
	ClientID    int64           `json:"clientId"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Status      string          `json:"status"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func NewOrder(o model.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		ClientID:    o.ClientID,
		Title:       o.Title,
		Description: o.Description,
		TotalAmount: o.TotalAmount,
		PaidAmount:  o.PaidAmount,
		Outstanding: o.Outstanding(),
		Status:      string(o.Status),
		DueDate:     o.DueDate,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func NewOrders(items []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(items))
	for _, o := range items {
		out = append(out, NewOrder(o))
	}
	return out
}
