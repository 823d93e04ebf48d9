package repository

import (
	"context"
	"time"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// PaymentRepository records payments and keeps order paid amounts in sync.
type PaymentRepository interface {
	GetByReference(ctx context.Context, reference string) (*model.Payment, error)
	// Record inserts the payment and increments the order's paid amount in one transaction.
	// It returns ErrAlreadyExists when the reference is already taken.
	Record(ctx context.Context, payment model.Payment) (*model.Payment, error)
	ListByOrder(ctx context.Context, orgID, orderID int64) ([]model.Payment, error)
	List(ctx context.Context, orgID int64) ([]model.Payment, error)
	ListByClient(ctx context.Context, orgID, clientID int64) ([]model.Payment, error)
}

// PaymentIntentRepository tracks checkouts started with the payment provider.
type PaymentIntentRepository interface {
	Create(ctx context.Context, intent model.PaymentIntent) (*model.PaymentIntent, error)
	GetByReference(ctx context.Context, reference string) (*model.PaymentIntent, error)
	// SelectPendingForVerification claims pending intents not checked within staleAfter.
	SelectPendingForVerification(ctx context.Context, staleAfter time.Duration, limit int) ([]model.PaymentIntent, error)
	UpdateStatus(ctx context.Context, reference string, status model.IntentStatus) error
}
