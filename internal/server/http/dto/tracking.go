package dto

import (
	"time"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// IssueTokenRequest creates a tracking link. Zero hours never expires.
type IssueTokenRequest struct {
	TTLHours int `json:"ttlHours" binding:"gte=0,lte=87600"`
}

// TokenResponse describes a tracking token.
type TokenResponse struct {
	ID         int64      `json:"id"`
	Token      string     `json:"token"`
	URL        string     `json:"url"`
	Active     bool       `json:"active"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// TailorResponse is the public face of a tailoring business.
type TailorResponse struct {
	Business string `json:"business"`
	Slug     string `json:"slug"`
	Owner    string `json:"owner"`
	Email    string `json:"email"`
}

// PortalClientResponse is what a client sees about themselves.
type PortalClientResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// TokenValidationResponse reports whether a tracking token is usable.
type TokenValidationResponse struct {
	Valid  bool                  `json:"valid"`
	Error  string                `json:"error,omitempty"`
	Client *PortalClientResponse `json:"client,omitempty"`
	Tailor *TailorResponse       `json:"tailor,omitempty"`
}

// PortalResponse is the tracking page payload.
type PortalResponse struct {
	Client   PortalClientResponse `json:"client"`
	Tailor   TailorResponse       `json:"tailor"`
	Orders   []OrderResponse      `json:"orders"`
	Payments []PaymentResponse    `json:"payments"`
}

func NewToken(t model.TrackingToken, url string) TokenResponse {
	return TokenResponse{
		ID:         t.ID,
		Token:      t.Token,
		URL:        url,
		Active:     t.Active,
		LastUsedAt: t.LastUsedAt,
		ExpiresAt:  t.ExpiresAt,
		CreatedAt:  t.CreatedAt,
	}
}

func NewTailor(t model.Tailor) TailorResponse {
	return TailorResponse{Business: t.Organization.Name, Slug: t.Organization.Slug, Owner: t.Owner.Name, Email: t.Owner.Email}
}

func NewPortalClient(c model.Client) PortalClientResponse {
	return PortalClientResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email}
}
