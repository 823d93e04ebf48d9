package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the production lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusDelivered, OrderStatusCancelled},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Order is a unit of tailoring work for a client.
type Order struct {
	ID             int64
	OrganizationID int64
	ClientID       int64
	Title          string
	Description    string
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	Status         OrderStatus
	DueDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Outstanding returns the unpaid remainder, never negative.
func (o Order) Outstanding() decimal.Decimal {
	rest := o.TotalAmount.Sub(o.PaidAmount)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
