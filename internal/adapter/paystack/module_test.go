package paystack

import (
	"testing"

	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{PaystackBaseURL: "https://api.paystack.co", PaystackSecretKey: "sk_live"}
	client, err := newClient(clientParams{Config: cfg, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	httpClient, ok := client.(*HTTPClient)
	if !ok {
		t.Fatalf("expected *HTTPClient, got %T", client)
	}
	if httpClient.secretKey != "sk_live" || httpClient.baseURL.Host != "api.paystack.co" {
		t.Fatalf("unexpected client: %+v", httpClient)
	}

	if _, err := newClient(clientParams{Config: &config.Config{PaystackBaseURL: "relative"}, Logger: zap.NewNop()}); err == nil {
		t.Fatal("expected error for relative url")
	}
}
