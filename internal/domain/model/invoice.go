package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus describes whether an invoice is still in force.
type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "ISSUED"
	InvoiceStatusVoid   InvoiceStatus = "VOID"
)

// Invoice is a bill issued for an order.
type Invoice struct {
	ID             int64
	OrganizationID int64
	OrderID        int64
	Number         string
	Amount         decimal.Decimal
	Status         InvoiceStatus
	IssuedAt       time.Time
	DueAt          *time.Time
}
