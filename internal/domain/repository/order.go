package repository

import (
	"context"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	Get(ctx context.Context, orgID, id int64) (*model.Order, error)
	// GetByID is unscoped and reserved for provider callbacks that carry no tenant.
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, orgID int64, status model.OrderStatus) ([]model.Order, error)
	ListByClient(ctx context.Context, orgID, clientID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orgID, id int64, status model.OrderStatus) error
}
