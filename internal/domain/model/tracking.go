package model

import "time"

// TrackingToken is an opaque capability granting read access to one client's data.
type TrackingToken struct {
	ID             int64
	Token          string
	ClientID       int64
	OrganizationID int64
	Active         bool
	LastUsedAt     *time.Time
	ExpiresAt      *time.Time
	CreatedAt      time.Time
}

// Expired reports whether the token has an expiry in the past relative to now.
func (t TrackingToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !t.ExpiresAt.After(now)
}

// Tailor is the organization behind a client together with its owner.
type Tailor struct {
	Organization Organization
	Owner        User
}
