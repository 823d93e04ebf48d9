package dto

import (
	"time"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// RegisterRequest is the tailor sign-up payload.
type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	BusinessName string `json:"businessName" binding:"required"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is a user without credentials.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionResponse is returned after register and login.
type SessionResponse struct {
	User         UserResponse          `json:"user"`
	Organization *OrganizationResponse `json:"organization,omitempty"`
	Token        string                `json:"token"`
}

// ActorResponse describes the authenticated caller.
type ActorResponse struct {
	User           UserResponse `json:"user"`
	OrganizationID int64        `json:"organizationId,omitempty"`
	ClientID       int64        `json:"clientId,omitempty"`
	Permissions    []string     `json:"permissions,omitempty"`
}

// OrganizationResponse describes a tenant.
type OrganizationResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// SetActiveRequest toggles a user login.
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func NewUser(u model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role), Active: u.Active, CreatedAt: u.CreatedAt}
}

func NewOrganization(o model.Organization) OrganizationResponse {
	return OrganizationResponse{ID: o.ID, OwnerID: o.OwnerID, Name: o.Name, Slug: o.Slug, CreatedAt: o.CreatedAt}
}

func NewActor(a *model.Actor) ActorResponse {
	return ActorResponse{
		User:           NewUser(a.User),
		OrganizationID: a.OrganizationID,
		ClientID:       a.ClientID,
		Permissions:    a.ExtraPermissions(),
	}
}
