package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid session token")

const tokenVersion = "v1"

// HMACStrategy signs "v1.<userID>.<expiry>" with HMAC-SHA256.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: now}
}

// IssueToken generates a signed session token for the user.
func (s *HMACStrategy) IssueToken(userID int64) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("issue token: invalid user id %d", userID)
	}
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%s.%d.%d", tokenVersion, userID, expires)
	raw := payload + "." + s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(raw)), nil
}

// ParseToken validates the signature and expiry and returns the session.
func (s *HMACStrategy) ParseToken(token string) (Session, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ".")
	if len(parts) != 4 || parts[0] != tokenVersion {
		return Session{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ".")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return Session{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || userID <= 0 {
		return Session{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	expiresAt := time.Unix(expires, 0)
	if !expiresAt.After(s.now()) {
		return Session{}, ErrInvalidToken
	}

	return Session{UserID: userID, ExpiresAt: expiresAt}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac-sha256"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
