package model

import "time"

// Role is the account type of a user.
type Role string

const (
	RoleTailor Role = "TAILOR"
	RoleWorker Role = "WORKER"
	RoleClient Role = "CLIENT"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleTailor, RoleWorker, RoleClient, RoleAdmin:
		return true
	}
	return false
}

// User represents a login of any role.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
}
