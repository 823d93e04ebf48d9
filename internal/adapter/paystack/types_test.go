package paystack

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseEvent(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"PSK-1","status":"success","amount":25000,"paid_at":"2026-04-02T12:00:00Z","metadata":{"orderId":42}}}`)
	ev, err := ParseEvent(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ev.Event != EventChargeSuccess || ev.Data.Reference != "PSK-1" || ev.Data.Metadata.OrderID != 42 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if !ev.Data.AmountDecimal().Equal(decimal.NewFromInt(250)) {
		t.Fatalf("unexpected amount: %s", ev.Data.AmountDecimal())
	}

	if _, err := ParseEvent([]byte(`{`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    ID
		wantErr bool
	}{
		{name: "number", body: `{"orderId":7}`, want: 7},
		{name: "string", body: `{"orderId":"8"}`, want: 8},
		{name: "empty string", body: `{"orderId":""}`, want: 0},
		{name: "null", body: `{"orderId":null}`, want: 0},
		{name: "missing", body: `{}`, want: 0},
		{name: "garbage", body: `{"orderId":"abc"}`, wantErr: true},
		{name: "fraction", body: `{"orderId":1.5}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseEvent([]byte(`{"event":"charge.success","data":{"metadata":` + tt.body + `}}`))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ev.Data.Metadata.OrderID != tt.want {
				t.Fatalf("got %d, want %d", ev.Data.Metadata.OrderID, tt.want)
			}
		})
	}
}

func TestMinorUnits(t *testing.T) {
	if got := ToMinor(decimal.RequireFromString("150.505")); got != 15051 {
		t.Fatalf("unexpected minor units: %d", got)
	}
	if got := FromMinor(15000); !got.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("unexpected major units: %s", got)
	}
}
