package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func forge(s *HMACStrategy, payload string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(payload + "." + s.sign(payload)))
}

func TestNewHMACStrategyDefaults(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
	if strategy.now == nil {
		t.Fatal("expected default clock")
	}
	if strategy.Name() != "hmac-sha256" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}
}

func TestHMACStrategyIssueAndParse(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour, Now: fixedClock(now)})
	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	session, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if session.UserID != 42 {
		t.Fatalf("unexpected user id: %d", session.UserID)
	}
	if !session.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %s", session.ExpiresAt)
	}
}

func TestHMACStrategyRejectsNonPositiveUser(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if _, err := strategy.IssueToken(0); err == nil {
		t.Fatal("expected error for zero user id")
	}
}

func TestHMACStrategyParseFailures(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	strategy := NewHMACStrategy("secret", Options{Now: fixedClock(now)})
	future := now.Add(time.Hour).Unix()

	valid, err := strategy.IssueToken(7)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, _ := base64.RawURLEncoding.DecodeString(valid)
	parts := strings.Split(string(raw), ".")
	parts[3] = "tampered"
	tampered := base64.RawURLEncoding.EncodeToString([]byte(strings.Join(parts, ".")))

	other := NewHMACStrategy("other", Options{Now: fixedClock(now)})
	foreign, _ := other.IssueToken(7)

	cases := map[string]string{
		"not base64":      "%%%",
		"wrong parts":     base64.RawURLEncoding.EncodeToString([]byte("only.two")),
		"wrong version":   forge(strategy, fmt.Sprintf("v0.7.%d", future)),
		"bad signature":   tampered,
		"foreign secret":  foreign,
		"bad user id":     forge(strategy, fmt.Sprintf("v1.abc.%d", future)),
		"negative user":   forge(strategy, fmt.Sprintf("v1.-3.%d", future)),
		"bad expiry":      forge(strategy, "v1.10.soon"),
		"expired":         forge(strategy, fmt.Sprintf("v1.10.%d", now.Add(-time.Minute).Unix())),
		"expires exactly": forge(strategy, fmt.Sprintf("v1.10.%d", now.Unix())),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
