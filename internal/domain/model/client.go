package model

import "time"

// Client is a customer record kept by an organization.
type Client struct {
	ID             int64
	OrganizationID int64
	UserID         *int64
	Name           string
	Phone          string
	Email          string
	Notes          string
	CreatedAt      time.Time
}

// Measurement is a named set of body measurements taken for a client.
type Measurement struct {
	ID             int64
	OrganizationID int64
	ClientID       int64
	Label          string
	Values         map[string]float64
	TakenAt        time.Time
}
