package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod describes how funds were received.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodPaystack     PaymentMethod = "PAYSTACK"
)

// Valid reports whether m is a known method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMobileMoney, PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodPaystack:
		return true
	}
	return false
}

// Payment is an immutable record of funds received for one order.
// Reference is unique across all payments.
type Payment struct {
	ID             int64
	OrderID        int64
	OrganizationID int64
	Amount         decimal.Decimal
	Method         PaymentMethod
	Reference      string
	PaidAt         time.Time
	Notes          string
	CreatedAt      time.Time
}

// IntentStatus tracks a provider checkout started for an order.
type IntentStatus string

const (
	IntentStatusPending   IntentStatus = "PENDING"
	IntentStatusSucceeded IntentStatus = "SUCCEEDED"
	IntentStatusFailed    IntentStatus = "FAILED"
)

// PaymentIntent is a checkout initialized with the payment provider.
type PaymentIntent struct {
	ID               int64
	Reference        string
	OrderID          int64
	OrganizationID   int64
	Amount           decimal.Decimal
	Email            string
	Status           IntentStatus
	AuthorizationURL string
	Attempts         int
	LastCheckedAt    *time.Time
	CreatedAt        time.Time
}
