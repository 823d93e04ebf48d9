package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
)

// OrderUseCase coordinates order creation and lifecycle changes.
type OrderUseCase struct {
	guard   *Guard
	orders  repository.OrderRepository
	clients repository.ClientRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(guard *Guard, orders repository.OrderRepository, clients repository.ClientRepository) *OrderUseCase {
	return &OrderUseCase{guard: guard, orders: orders, clients: clients}
}

// OrderInput describes a new order.
type OrderInput struct {
	ClientID    int64
	Title       string
	Description string
	TotalAmount decimal.Decimal
	DueDate     *time.Time
}

func (u *OrderUseCase) Create(ctx context.Context, in OrderInput) (*model.Order, error) {
	actor, err := u.guard.Authorize(ctx, policy.OrdersWrite)
	if err != nil {
		return nil, err
	}

	verr := &domainErrors.ValidationError{}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.Add("title", "is required")
	}
	if !in.TotalAmount.IsPositive() {
		verr.Add("totalAmount", "must be greater than zero")
	}
	if in.ClientID <= 0 {
		verr.Add("clientId", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := u.clients.Get(ctx, actor.OrganizationID, in.ClientID); err != nil {
		return nil, err
	}

	return u.orders.Create(ctx, model.Order{
		OrganizationID: actor.OrganizationID,
		ClientID:       in.ClientID,
		Title:          title,
		Description:    strings.TrimSpace(in.Description),
		TotalAmount:    in.TotalAmount.Round(2),
		PaidAmount:     decimal.Zero,
		Status:         model.OrderStatusPending,
		DueDate:        in.DueDate,
	})
}

// List returns the organization's orders, optionally filtered by status.
func (u *OrderUseCase) List(ctx context.Context, status string) ([]model.Order, error) {
	actor, err := u.guard.Authorize(ctx, policy.OrdersRead)
	if err != nil {
		return nil, err
	}
	filter := model.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if filter != "" && !filter.Valid() {
		return nil, domainErrors.Validation("status", "unknown order status")
	}
	return u.orders.List(ctx, actor.OrganizationID, filter)
}

func (u *OrderUseCase) Get(ctx context.Context, id int64) (*model.Order, error) {
	actor, err := u.guard.Authorize(ctx, policy.OrdersRead)
	if err != nil {
		return nil, err
	}
	return u.orders.Get(ctx, actor.OrganizationID, id)
}

// UpdateStatus moves an order along its lifecycle.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	actor, err := u.guard.Authorize(ctx, policy.OrdersWrite)
	if err != nil {
		return nil, err
	}
	next := model.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !next.Valid() {
		return nil, domainErrors.Validation("status", "unknown order status")
	}

	order, err := u.orders.Get(ctx, actor.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, domainErrors.Validation("status", "cannot move from "+string(order.Status)+" to "+string(next))
	}
	if err := u.orders.UpdateStatus(ctx, actor.OrganizationID, id, next); err != nil {
		return nil, err
	}
	order.Status = next
	return order, nil
}

// ClientOrders lists the orders of the client linked to the calling user.
func (u *OrderUseCase) ClientOrders(ctx context.Context) ([]model.Order, error) {
	actor, err := u.guard.RequireClient(ctx)
	if err != nil {
		return nil, err
	}
	return u.orders.ListByClient(ctx, actor.OrganizationID, actor.ClientID)
}
