package model

import "time"

// Organization is the tenant boundary: a tailoring business owned by one tailor.
type Organization struct {
	ID        int64
	OwnerID   int64
	Name      string
	Slug      string
	CreatedAt time.Time
}

// MembershipRole describes how a user belongs to an organization.
type MembershipRole string

const (
	MembershipOwner  MembershipRole = "OWNER"
	MembershipWorker MembershipRole = "WORKER"
)

// Membership links a user to an organization with explicit extra permissions.
type Membership struct {
	OrganizationID int64
	UserID         int64
	Role           MembershipRole
	Permissions    []string
	CreatedAt      time.Time
}

// Member is a membership joined with its user.
type Member struct {
	User       User
	Membership Membership
}
