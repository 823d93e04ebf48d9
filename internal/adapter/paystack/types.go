package paystack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction statuses reported by verify.
const (
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusAbandoned = "abandoned"
	StatusReversed  = "reversed"
)

// EventChargeSuccess is the webhook event emitted for a completed charge.
const EventChargeSuccess = "charge.success"

// InitializeRequest describes a checkout to start.
type InitializeRequest struct {
	Email       string
	Amount      decimal.Decimal
	Reference   string
	CallbackURL string
	Metadata    Metadata
}

type initializePayload struct {
	Email       string   `json:"email"`
	Amount      int64    `json:"amount"`
	Reference   string   `json:"reference"`
	CallbackURL string   `json:"callback_url,omitempty"`
	Metadata    Metadata `json:"metadata"`
}

// Checkout is the provider answer to initialize.
type Checkout struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Metadata is attached to transactions so callbacks can be routed back to an order.
type Metadata struct {
	OrderID        ID `json:"orderId,omitempty"`
	OrganizationID ID `json:"organizationId,omitempty"`
}

// Transaction is a verified charge or a webhook payload.
type Transaction struct {
	Reference string     `json:"reference"`
	Status    string     `json:"status"`
	Amount    int64      `json:"amount"`
	Currency  string     `json:"currency"`
	PaidAt    *time.Time `json:"paid_at"`
	Channel   string     `json:"channel"`
	Metadata  Metadata   `json:"metadata"`
}

// AmountDecimal converts the minor-unit amount to major units.
func (t Transaction) AmountDecimal() decimal.Decimal {
	return FromMinor(t.Amount)
}

// Event is a webhook notification.
type Event struct {
	Event string      `json:"event"`
	Data  Transaction `json:"data"`
}

// ParseEvent decodes a webhook body.
func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("decode paystack event: %w", err)
	}
	return &ev, nil
}

// ID accepts identifiers sent either as JSON numbers or strings. Zero means absent.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		data = []byte(s)
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", string(data))
	}
	*id = ID(v)
	return nil
}

// ToMinor converts major units to the provider's minor units (pesewas).
func ToMinor(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// FromMinor converts provider minor units to major units.
func FromMinor(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}
