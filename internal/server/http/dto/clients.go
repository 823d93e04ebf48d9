package dto

import (
	"time"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// ClientRequest creates or updates a client.
type ClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"omitempty,email"`
	Notes string `json:"notes"`
}

// ClientResponse describes a client record.
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	HasLogin  bool      `json:"hasLogin"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClientLoginRequest creates a portal login for a client.
type ClientLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// MeasurementRequest adds a measurement set.
type MeasurementRequest struct {
	Label   string             `json:"label" binding:"required"`
	Values  map[string]float64 `json:"values" binding:"required,min=1"`
	TakenAt *time.Time         `json:"takenAt"`
}

// MeasurementResponse describes a stored measurement set.
type MeasurementResponse struct {
	ID      int64              `json:"id"`
	Label   string             `json:"label"`
	Values  map[string]float64 `json:"values"`
	TakenAt time.Time          `json:"takenAt"`
}

// WorkerRequest adds a worker to the organization.
type WorkerRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=8"`
	Permissions []string `json:"permissions"`
}

// MemberResponse describes an organization member.
type MemberResponse struct {
	User        UserResponse `json:"user"`
	Role        string       `json:"role"`
	Permissions []string     `json:"permissions"`
}

func NewClient(c model.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Notes:     c.Notes,
		HasLogin:  c.UserID != nil,
		CreatedAt: c.CreatedAt,
	}
}

func NewClients(items []model.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewClient(c))
	}
	return out
}

func NewMeasurement(m model.Measurement) MeasurementResponse {
	return MeasurementResponse{ID: m.ID, Label: m.Label, Values: m.Values, TakenAt: m.TakenAt}
}

func NewMember(m model.Member) MemberResponse {
	perms := m.Membership.Permissions
	if perms == nil {
		perms = []string{}
	}
	return MemberResponse{User: NewUser(m.User), Role: string(m.Membership.Role), Permissions: perms}
}
