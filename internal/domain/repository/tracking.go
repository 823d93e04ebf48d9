package repository

import (
	"context"
	"time"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// TrackingTokenRepository manages client tracking tokens.
type TrackingTokenRepository interface {
	Create(ctx context.Context, token model.TrackingToken) (*model.TrackingToken, error)
	GetByToken(ctx context.Context, token string) (*model.TrackingToken, error)
	ListByClient(ctx context.Context, orgID, clientID int64) ([]model.TrackingToken, error)
	Deactivate(ctx context.Context, orgID, id int64) error
	Touch(ctx context.Context, id int64, at time.Time) error
}
