package handlers

import (
	"context"
	"io"
	"time"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/pkg/export"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.Session, error)
	Authenticate(ctx context.Context, email, password string) (*usecase.Session, error)
	ResolveActor(ctx context.Context, token string) (*model.Actor, error)
}

// ClientFacade covers clients, measurements and portal logins.
type ClientFacade interface {
	CreateClient(ctx context.Context, in usecase.ClientInput) (*model.Client, error)
	Clients(ctx context.Context) ([]model.Client, error)
	Client(ctx context.Context, id int64) (*model.Client, error)
	UpdateClient(ctx context.Context, id int64, in usecase.ClientInput) (*model.Client, error)
	CreateClientLogin(ctx context.Context, clientID int64, email, password string) (*model.User, error)
	AddMeasurement(ctx context.Context, clientID int64, in usecase.MeasurementInput) (*model.Measurement, error)
	Measurements(ctx context.Context, clientID int64) ([]model.Measurement, error)
}

// TeamFacade manages organization workers.
type TeamFacade interface {
	AddWorker(ctx context.Context, in usecase.WorkerInput) (*model.Member, error)
	Members(ctx context.Context) ([]model.Member, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, in usecase.OrderInput) (*model.Order, error)
	Orders(ctx context.Context, status string) ([]model.Order, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (*model.Order, error)
	ClientOrders(ctx context.Context) ([]model.Order, error)
}

// PaymentFacade records payments and drives provider checkouts.
type PaymentFacade interface {
	RecordPayment(ctx context.Context, in usecase.PaymentInput) (*usecase.PaymentResult, error)
	OrderPayments(ctx context.Context, orderID int64) ([]model.Payment, error)
	Payments(ctx context.Context) ([]model.Payment, error)
	StartCheckout(ctx context.Context, in usecase.CheckoutInput) (*model.PaymentIntent, error)
	VerifyCheckout(ctx context.Context, reference string) (*usecase.VerifyResult, error)
	HandlePaystackWebhook(ctx context.Context, body []byte, signature string) (usecase.WebhookOutcome, error)
}

// TrackingFacade manages tracking tokens and serves the client portal.
type TrackingFacade interface {
	IssueTrackingToken(ctx context.Context, clientID int64, ttl time.Duration) (*usecase.IssuedToken, error)
	TrackingTokens(ctx context.Context, clientID int64) ([]model.TrackingToken, error)
	DeactivateTrackingToken(ctx context.Context, id int64) error
	TrackingURL(token string) string
	ValidateTrackingToken(ctx context.Context, token string) (*usecase.TokenValidation, error)
	Portal(ctx context.Context, token string) (*usecase.Portal, error)
	StartPortalCheckout(ctx context.Context, token string, in usecase.CheckoutInput) (*model.PaymentIntent, error)
}

// InvoiceFacade issues and voids invoices.
type InvoiceFacade interface {
	IssueInvoice(ctx context.Context, in usecase.InvoiceInput) (*model.Invoice, error)
	Invoices(ctx context.Context) ([]model.Invoice, error)
	Invoice(ctx context.Context, id int64) (*model.Invoice, error)
	VoidInvoice(ctx context.Context, id int64) (*model.Invoice, error)
}

// AdminFacade exposes platform administration.
type AdminFacade interface {
	Organizations(ctx context.Context) ([]model.Organization, error)
	SetUserActive(ctx context.Context, userID int64, active bool) (*model.User, error)
}

// ExportFacade renders organization datasets.
type ExportFacade interface {
	Export(ctx context.Context, w io.Writer, dataset string, format export.Format) error
}

// StudioFacade aggregates the full set of operations used across handlers.
type StudioFacade interface {
	AuthFacade
	ClientFacade
	TeamFacade
	OrderFacade
	PaymentFacade
	TrackingFacade
	InvoiceFacade
	AdminFacade
	ExportFacade
}
