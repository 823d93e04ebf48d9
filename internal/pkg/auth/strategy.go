package auth

import "time"

// Session is the verified content of a session token.
type Session struct {
	UserID    int64
	ExpiresAt time.Time
}

// Strategy issues and verifies session tokens.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (Session, error)
	Name() string
}

// Options tune token issuing.
type Options struct {
	TTL time.Duration
	Now func() time.Time
}
