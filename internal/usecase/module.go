package usecase

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/config"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewGuard,
	NewAuthUseCase,
	NewClientUseCase,
	NewTeamUseCase,
	NewOrderUseCase,
	NewPaymentUseCase,
	newTrackingUseCase,
	NewCheckoutUseCase,
	NewWebhookUseCase,
	NewInvoiceUseCase,
	NewAdminUseCase,
	NewExportUseCase,
)

type trackingParams struct {
	fx.In

	Guard    *Guard
	Tokens   repository.TrackingTokenRepository
	Clients  repository.ClientRepository
	Orgs     repository.OrganizationRepository
	Users    repository.UserRepository
	Orders   repository.OrderRepository
	Payments repository.PaymentRepository
	Config   *config.Config
	Logger   *zap.Logger
}

func newTrackingUseCase(p trackingParams) *TrackingUseCase {
	return NewTrackingUseCase(p.Guard, TrackingDeps{
		Tokens:   p.Tokens,
		Clients:  p.Clients,
		Orgs:     p.Orgs,
		Users:    p.Users,
		Orders:   p.Orders,
		Payments: p.Payments,
	}, p.Config, p.Logger)
}

// Services groups every use case so transports can depend on one value.
type Services struct {
	fx.In

	Auth     *AuthUseCase
	Clients  *ClientUseCase
	Team     *TeamUseCase
	Orders   *OrderUseCase
	Payments *PaymentUseCase
	Tracking *TrackingUseCase
	Checkout *CheckoutUseCase
	Webhooks *WebhookUseCase
	Invoices *InvoiceUseCase
	Admin    *AdminUseCase
	Exports  *ExportUseCase
}
