package repository

import (
	"context"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// ClientRepository describes persistence of client records. Reads are scoped by organization.
type ClientRepository interface {
	Create(ctx context.Context, client model.Client) (*model.Client, error)
	Get(ctx context.Context, orgID, id int64) (*model.Client, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Client, error)
	List(ctx context.Context, orgID int64) ([]model.Client, error)
	Update(ctx context.Context, client model.Client) (*model.Client, error)
	// AttachUser creates a CLIENT login and links it to the client record atomically.
	AttachUser(ctx context.Context, orgID, clientID int64, user model.User) (*model.User, error)
}

// MeasurementRepository stores client measurement sets.
type MeasurementRepository interface {
	Create(ctx context.Context, m model.Measurement) (*model.Measurement, error)
	ListByClient(ctx context.Context, orgID, clientID int64) ([]model.Measurement, error)
}
