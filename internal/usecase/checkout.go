package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/adapter/paystack"
	"github.com/stitchcraft/stitchcraft/internal/config"
	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
)

// CheckoutPath is the route the provider redirects customers to after paying.
const CheckoutPath = "/api/v1/checkout/callback"

// CheckoutInput starts an online payment for an order. A nil Amount charges the outstanding balance.
type CheckoutInput struct {
	OrderID int64
	Email   string
	Amount  *decimal.Decimal
}

// VerifyResult reports the state of a checkout after asking the provider.
type VerifyResult struct {
	Intent  *model.PaymentIntent
	Payment *PaymentResult
}

// CheckoutUseCase starts and settles provider checkouts.
type CheckoutUseCase struct {
	guard       *Guard
	orders      repository.OrderRepository
	intents     repository.PaymentIntentRepository
	payments    *PaymentUseCase
	tracking    *TrackingUseCase
	provider    paystack.Client
	callbackURL string
	logger      *zap.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(guard *Guard, orders repository.OrderRepository, intents repository.PaymentIntentRepository,
	payments *PaymentUseCase, tracking *TrackingUseCase, provider paystack.Client, cfg *config.Config, logger *zap.Logger) *CheckoutUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	callback := ""
	if cfg != nil && cfg.PublicBaseURL != "" {
		callback = strings.TrimRight(cfg.PublicBaseURL, "/") + CheckoutPath
	}
	return &CheckoutUseCase{
		guard:       guard,
		orders:      orders,
		intents:     intents,
		payments:    payments,
		tracking:    tracking,
		provider:    provider,
		callbackURL: callback,
		logger:      logger,
	}
}

// Start initializes a checkout for an order of the caller's organization.
func (u *CheckoutUseCase) Start(ctx context.Context, in CheckoutInput) (*model.PaymentIntent, error) {
	actor, err := u.guard.Authorize(ctx, policy.PaymentsWrite)
	if err != nil {
		return nil, err
	}
	order, err := u.orders.Get(ctx, actor.OrganizationID, in.OrderID)
	if err != nil {
		return nil, err
	}
	return u.initialize(ctx, order, in)
}

// StartFromPortal initializes a checkout through a tracking link. Only the token's own orders qualify.
func (u *CheckoutUseCase) StartFromPortal(ctx context.Context, token string, in CheckoutInput) (*model.PaymentIntent, error) {
	result, err := u.tracking.Require(ctx, token)
	if err != nil {
		return nil, err
	}
	order, err := u.orders.Get(ctx, result.Client.OrganizationID, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order.ClientID != result.Client.ID {
		return nil, domainErrors.ErrNotFound
	}
	if strings.TrimSpace(in.Email) == "" {
		in.Email = result.Client.Email
	}
	return u.initialize(ctx, order, in)
}

func (u *CheckoutUseCase) initialize(ctx context.Context, order *model.Order, in CheckoutInput) (*model.PaymentIntent, error) {
	email := normalizeEmail(in.Email)
	amount := order.Outstanding()
	if in.Amount != nil {
		amount = in.Amount.Round(2)
	}

	verr := &domainErrors.ValidationError{}
	if !strings.Contains(email, "@") {
		verr.Add("email", "must be a valid email address")
	}
	if !amount.IsPositive() {
		verr.Add("amount", "must be greater than zero")
	}
	if order.Status == model.OrderStatusCancelled {
		verr.Add("orderId", "order is cancelled")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	reference := "SC-" + uuid.NewString()
	checkout, err := u.provider.Initialize(ctx, paystack.InitializeRequest{
		Email:       email,
		Amount:      amount,
		Reference:   reference,
		CallbackURL: u.callbackURL,
		Metadata: paystack.Metadata{
			OrderID:        paystack.ID(order.ID),
			OrganizationID: paystack.ID(order.OrganizationID),
		},
	})
	if err != nil {
		return nil, err
	}
	if checkout.Reference != "" {
		reference = checkout.Reference
	}

	return u.intents.Create(ctx, model.PaymentIntent{
		Reference:        reference,
		OrderID:          order.ID,
		OrganizationID:   order.OrganizationID,
		Amount:           amount,
		Email:            email,
		Status:           model.IntentStatusPending,
		AuthorizationURL: checkout.AuthorizationURL,
	})
}

// Verify asks the provider for the outcome of a checkout and records a successful charge.
func (u *CheckoutUseCase) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, domainErrors.Validation("reference", "is required")
	}
	intent, err := u.intents.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if intent.Status != model.IntentStatusPending {
		return &VerifyResult{Intent: intent}, nil
	}

	tx, err := u.provider.Verify(ctx, reference)
	if err != nil {
		if errors.Is(err, paystack.ErrTransactionNotFound) {
			return &VerifyResult{Intent: intent}, nil
		}
		return nil, err
	}

	switch tx.Status {
	case paystack.StatusSuccess:
		payment, err := u.payments.RecordProviderPayment(ctx, PaymentInput{
			OrderID:   intent.OrderID,
			Amount:    tx.AmountDecimal(),
			Reference: reference,
			Method:    model.PaymentMethodPaystack,
			PaidAt:    tx.PaidAt,
			Notes:     tx.Channel,
		})
		if err != nil {
			return nil, err
		}
		if err := u.intents.UpdateStatus(ctx, reference, model.IntentStatusSucceeded); err != nil {
			return nil, err
		}
		intent.Status = model.IntentStatusSucceeded
		return &VerifyResult{Intent: intent, Payment: payment}, nil
	case paystack.StatusFailed, paystack.StatusAbandoned, paystack.StatusReversed:
		if err := u.intents.UpdateStatus(ctx, reference, model.IntentStatusFailed); err != nil {
			return nil, err
		}
		intent.Status = model.IntentStatusFailed
	}
	return &VerifyResult{Intent: intent}, nil
}

// PendingForVerification claims intents for the reconciler.
func (u *CheckoutUseCase) PendingForVerification(ctx context.Context, staleAfter time.Duration, limit int) ([]model.PaymentIntent, error) {
	return u.intents.SelectPendingForVerification(ctx, staleAfter, limit)
}
