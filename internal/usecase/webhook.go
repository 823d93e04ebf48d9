package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/adapter/paystack"
	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
)

// WebhookOutcome tells what happened to an accepted webhook.
type WebhookOutcome string

const (
	WebhookRecorded  WebhookOutcome = "recorded"
	WebhookDuplicate WebhookOutcome = "duplicate"
	WebhookIgnored   WebhookOutcome = "ignored"
)

// WebhookUseCase turns provider notifications into payments.
type WebhookUseCase struct {
	verifier *paystack.Verifier
	payments *PaymentUseCase
	intents  repository.PaymentIntentRepository
	logger   *zap.Logger
}

// NewWebhookUseCase constructs WebhookUseCase.
func NewWebhookUseCase(verifier *paystack.Verifier, payments *PaymentUseCase, intents repository.PaymentIntentRepository, logger *zap.Logger) *WebhookUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookUseCase{verifier: verifier, payments: payments, intents: intents, logger: logger}
}

// Handle authenticates body against signature and records charge.success events.
// Anything it cannot act on is ignored; only internal failures are returned.
func (u *WebhookUseCase) Handle(ctx context.Context, body []byte, signature string) (WebhookOutcome, error) {
	if !u.verifier.Verify(body, signature) {
		return "", domainErrors.ErrUnauthorized
	}

	event, err := paystack.ParseEvent(body)
	if err != nil {
		u.logger.Info("ignore malformed webhook", zap.Error(err))
		return WebhookIgnored, nil
	}
	if event.Event != paystack.EventChargeSuccess {
		return WebhookIgnored, nil
	}

	data := event.Data
	log := u.logger.With(zap.String("reference", data.Reference))
	if data.Metadata.OrderID == 0 {
		log.Info("ignore webhook without order id")
		return WebhookIgnored, nil
	}

	result, err := u.payments.RecordProviderPayment(ctx, PaymentInput{
		OrderID:   int64(data.Metadata.OrderID),
		Amount:    data.AmountDecimal(),
		Reference: data.Reference,
		Method:    model.PaymentMethodPaystack,
		PaidAt:    data.PaidAt,
		Notes:     data.Channel,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			log.Info("ignore webhook for unknown order", zap.Int64("order_id", int64(data.Metadata.OrderID)))
			return WebhookIgnored, nil
		}
		if _, ok := domainErrors.AsValidation(err); ok {
			log.Info("ignore invalid webhook payload", zap.Error(err))
			return WebhookIgnored, nil
		}
		return "", err
	}

	if err := u.intents.UpdateStatus(ctx, data.Reference, model.IntentStatusSucceeded); err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		log.Warn("mark payment intent succeeded", zap.Error(err))
	}

	if result.AlreadyRecorded {
		return WebhookDuplicate, nil
	}
	log.Info("payment recorded from webhook", zap.Int64("payment_id", result.Payment.ID))
	return WebhookRecorded, nil
}
