package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RoutingPaymentRecorded is the routing key of PaymentRecorded events.
const RoutingPaymentRecorded = "payment.recorded"

// Publisher delivers domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// PaymentRecorded is emitted once per newly stored payment.
type PaymentRecorded struct {
	PaymentID      int64           `json:"paymentId"`
	OrderID        int64           `json:"orderId"`
	OrganizationID int64           `json:"organizationId"`
	Reference      string          `json:"reference"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	PaidAt         time.Time       `json:"paidAt"`
}
