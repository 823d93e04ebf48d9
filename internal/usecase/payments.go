package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/adapter/events"
	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
)

// PaymentInput describes funds received for an order.
type PaymentInput struct {
	OrderID   int64
	Amount    decimal.Decimal
	Reference string
	Method    model.PaymentMethod
	PaidAt    *time.Time
	Notes     string
}

// PaymentResult is the outcome of recording a payment.
// AlreadyRecorded is set when the reference was seen before and nothing changed.
type PaymentResult struct {
	Payment         *model.Payment
	AlreadyRecorded bool
}

// PaymentUseCase records payments idempotently, keyed by reference.
type PaymentUseCase struct {
	guard     *Guard
	orders    repository.OrderRepository
	payments  repository.PaymentRepository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(guard *Guard, orders repository.OrderRepository, payments repository.PaymentRepository,
	publisher events.Publisher, logger *zap.Logger) *PaymentUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentUseCase{guard: guard, orders: orders, payments: payments, publisher: publisher, logger: logger}
}

func (in PaymentInput) normalize() (PaymentInput, error) {
	in.Reference = strings.TrimSpace(in.Reference)
	in.Notes = strings.TrimSpace(in.Notes)
	in.Method = model.PaymentMethod(strings.ToUpper(strings.TrimSpace(string(in.Method))))
	in.Amount = in.Amount.Round(2)

	verr := &domainErrors.ValidationError{}
	if in.OrderID <= 0 {
		verr.Add("orderId", "is required")
	}
	if !in.Amount.IsPositive() {
		verr.Add("amount", "must be greater than zero")
	}
	if in.Reference == "" {
		verr.Add("reference", "is required")
	}
	if !in.Method.Valid() {
		verr.Add("method", "unknown payment method")
	}
	return in, verr.OrNil()
}

// Record stores a manual payment for an order of the caller's organization.
func (u *PaymentUseCase) Record(ctx context.Context, in PaymentInput) (*PaymentResult, error) {
	actor, err := u.guard.Authorize(ctx, policy.PaymentsWrite)
	if err != nil {
		return nil, err
	}
	in, err = in.normalize()
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Get(ctx, actor.OrganizationID, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == model.OrderStatusCancelled {
		return nil, domainErrors.Validation("orderId", "order is cancelled")
	}

	existing, err := u.lookup(ctx, in.Reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.OrganizationID != actor.OrganizationID {
			return nil, domainErrors.ErrAlreadyExists
		}
		return &PaymentResult{Payment: existing, AlreadyRecorded: true}, nil
	}

	return u.record(ctx, order, in)
}

// RecordProviderPayment stores a payment confirmed by the payment provider.
// Orders are resolved without tenant scope and cancelled orders still accept the money.
func (u *PaymentUseCase) RecordProviderPayment(ctx context.Context, in PaymentInput) (*PaymentResult, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	existing, err := u.lookup(ctx, in.Reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &PaymentResult{Payment: existing, AlreadyRecorded: true}, nil
	}

	order, err := u.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	return u.record(ctx, order, in)
}

func (u *PaymentUseCase) lookup(ctx context.Context, reference string) (*model.Payment, error) {
	payment, err := u.payments.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup payment reference: %w", err)
	}
	return payment, nil
}

func (u *PaymentUseCase) record(ctx context.Context, order *model.Order, in PaymentInput) (*PaymentResult, error) {
	payment := model.Payment{
		OrderID:        order.ID,
		OrganizationID: order.OrganizationID,
		Amount:         in.Amount,
		Method:         in.Method,
		Reference:      in.Reference,
		Notes:          in.Notes,
	}
	if in.PaidAt != nil {
		payment.PaidAt = in.PaidAt.UTC()
	}

	stored, err := u.payments.Record(ctx, payment)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			raced, lookupErr := u.lookup(ctx, in.Reference)
			if lookupErr != nil {
				return nil, lookupErr
			}
			return &PaymentResult{Payment: raced, AlreadyRecorded: true}, nil
		}
		return nil, err
	}

	u.publish(ctx, stored)
	return &PaymentResult{Payment: stored}, nil
}

func (u *PaymentUseCase) publish(ctx context.Context, p *model.Payment) {
	if u.publisher == nil {
		return
	}
	event := events.PaymentRecorded{
		PaymentID:      p.ID,
		OrderID:        p.OrderID,
		OrganizationID: p.OrganizationID,
		Reference:      p.Reference,
		Amount:         p.Amount,
		Method:         string(p.Method),
		PaidAt:         p.PaidAt,
	}
	if err := u.publisher.Publish(ctx, events.RoutingPaymentRecorded, event); err != nil {
		u.logger.Warn("publish payment event", zap.String("reference", p.Reference), zap.Error(err))
	}
}

func (u *PaymentUseCase) ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	actor, err := u.guard.Authorize(ctx, policy.PaymentsRead)
	if err != nil {
		return nil, err
	}
	if _, err := u.orders.Get(ctx, actor.OrganizationID, orderID); err != nil {
		return nil, err
	}
	return u.payments.ListByOrder(ctx, actor.OrganizationID, orderID)
}

func (u *PaymentUseCase) List(ctx context.Context) ([]model.Payment, error) {
	actor, err := u.guard.Authorize(ctx, policy.PaymentsRead)
	if err != nil {
		return nil, err
	}
	return u.payments.List(ctx, actor.OrganizationID)
}
