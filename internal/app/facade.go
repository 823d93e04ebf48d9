package app

import (
	"context"
	"io"
	"time"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/pkg/export"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// StudioFacade is the single entry point used by transports and workers.
type StudioFacade struct {
	uc usecase.Services
}

func NewStudioFacade(uc usecase.Services) *StudioFacade {
	return &StudioFacade{uc: uc}
}

func (f *StudioFacade) Register(ctx context.Context, in usecase.RegisterInput) (*usecase.Session, error) {
	return f.uc.Auth.Register(ctx, in)
}

func (f *StudioFacade) Authenticate(ctx context.Context, email, password string) (*usecase.Session, error) {
	return f.uc.Auth.Authenticate(ctx, email, password)
}

func (f *StudioFacade) ResolveActor(ctx context.Context, token string) (*model.Actor, error) {
	return f.uc.Auth.ResolveActor(ctx, token)
}

func (f *StudioFacade) CreateAdmin(ctx context.Context, email, name, password string) (*model.User, error) {
	return f.uc.Auth.CreateAdmin(ctx, email, name, password)
}

func (f *StudioFacade) CreateClient(ctx context.Context, in usecase.ClientInput) (*model.Client, error) {
	return f.uc.Clients.Create(ctx, in)
}

func (f *StudioFacade) Clients(ctx context.Context) ([]model.Client, error) {
	return f.uc.Clients.List(ctx)
}

func (f *StudioFacade) Client(ctx context.Context, id int64) (*model.Client, error) {
	return f.uc.Clients.Get(ctx, id)
}

func (f *StudioFacade) UpdateClient(ctx context.Context, id int64, in usecase.ClientInput) (*model.Client, error) {
	return f.uc.Clients.Update(ctx, id, in)
}

func (f *StudioFacade) CreateClientLogin(ctx context.Context, clientID int64, email, password string) (*model.User, error) {
	return f.uc.Clients.CreateLogin(ctx, clientID, email, password)
}

func (f *StudioFacade) AddMeasurement(ctx context.Context, clientID int64, in usecase.MeasurementInput) (*model.Measurement, error) {
	return f.uc.Clients.AddMeasurement(ctx, clientID, in)
}

func (f *StudioFacade) Measurements(ctx context.Context, clientID int64) ([]model.Measurement, error) {
	return f.uc.Clients.ListMeasurements(ctx, clientID)
}

func (f *StudioFacade) AddWorker(ctx context.Context, in usecase.WorkerInput) (*model.Member, error) {
	return f.uc.Team.AddWorker(ctx, in)
}

func (f *StudioFacade) Members(ctx context.Context) ([]model.Member, error) {
	return f.uc.Team.ListMembers(ctx)
}

func (f *StudioFacade) CreateOrder(ctx context.Context, in usecase.OrderInput) (*model.Order, error) {
	return f.uc.Orders.Create(ctx, in)
}

func (f *StudioFacade) Orders(ctx context.Context, status string) ([]model.Order, error) {
	return f.uc.Orders.List(ctx, status)
}

func (f *StudioFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.uc.Orders.Get(ctx, id)
}

func (f *StudioFacade) UpdateOrderStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	return f.uc.Orders.UpdateStatus(ctx, id, status)
}

func (f *StudioFacade) ClientOrders(ctx context.Context) ([]model.Order, error) {
	return f.uc.Orders.ClientOrders(ctx)
}

func (f *StudioFacade) RecordPayment(ctx context.Context, in usecase.PaymentInput) (*usecase.PaymentResult, error) {
	return f.uc.Payments.Record(ctx, in)
}

func (f *StudioFacade) OrderPayments(ctx context.Context, orderID int64) ([]model.Payment, error) {
	return f.uc.Payments.ListByOrder(ctx, orderID)
}

func (f *StudioFacade) Payments(ctx context.Context) ([]model.Payment, error) {
	return f.uc.Payments.List(ctx)
}

func (f *StudioFacade) StartCheckout(ctx context.Context, in usecase.CheckoutInput) (*model.PaymentIntent, error) {
	return f.uc.Checkout.Start(ctx, in)
}

func (f *StudioFacade) VerifyCheckout(ctx context.Context, reference string) (*usecase.VerifyResult, error) {
	return f.uc.Checkout.Verify(ctx, reference)
}

func (f *StudioFacade) PendingCheckouts(ctx context.Context, staleAfter time.Duration, limit int) ([]model.PaymentIntent, error) {
	return f.uc.Checkout.PendingForVerification(ctx, staleAfter, limit)
}

func (f *StudioFacade) HandlePaystackWebhook(ctx context.Context, body []byte, signature string) (usecase.WebhookOutcome, error) {
	return f.uc.Webhooks.Handle(ctx, body, signature)
}

func (f *StudioFacade) IssueTrackingToken(ctx context.Context, clientID int64, ttl time.Duration) (*usecase.IssuedToken, error) {
	return f.uc.Tracking.Issue(ctx, clientID, ttl)
}

func (f *StudioFacade) TrackingTokens(ctx context.Context, clientID int64) ([]model.TrackingToken, error) {
	return f.uc.Tracking.List(ctx, clientID)
}

func (f *StudioFacade) DeactivateTrackingToken(ctx context.Context, id int64) error {
	return f.uc.Tracking.Deactivate(ctx, id)
}

func (f *StudioFacade) TrackingURL(token string) string {
	return f.uc.Tracking.TrackingURL(token)
}

func (f *StudioFacade) ValidateTrackingToken(ctx context.Context, token string) (*usecase.TokenValidation, error) {
	return f.uc.Tracking.Validate(ctx, token)
}

func (f *StudioFacade) Portal(ctx context.Context, token string) (*usecase.Portal, error) {
	return f.uc.Tracking.Portal(ctx, token)
}

func (f *StudioFacade) StartPortalCheckout(ctx context.Context, token string, in usecase.CheckoutInput) (*model.PaymentIntent, error) {
	return f.uc.Checkout.StartFromPortal(ctx, token, in)
}

func (f *StudioFacade) IssueInvoice(ctx context.Context, in usecase.InvoiceInput) (*model.Invoice, error) {
	return f.uc.Invoices.Issue(ctx, in)
}

func (f *StudioFacade) Invoices(ctx context.Context) ([]model.Invoice, error) {
	return f.uc.Invoices.List(ctx)
}

func (f *StudioFacade) Invoice(ctx context.Context, id int64) (*model.Invoice, error) {
	return f.uc.Invoices.Get(ctx, id)
}

func (f *StudioFacade) VoidInvoice(ctx context.Context, id int64) (*model.Invoice, error) {
	return f.uc.Invoices.Void(ctx, id)
}

func (f *StudioFacade) Organizations(ctx context.Context) ([]model.Organization, error) {
	return f.uc.Admin.ListOrganizations(ctx)
}

func (f *StudioFacade) SetUserActive(ctx context.Context, userID int64, active bool) (*model.User, error) {
	return f.uc.Admin.SetUserActive(ctx, userID, active)
}

func (f *StudioFacade) Export(ctx context.Context, w io.Writer, dataset string, format export.Format) error {
	return f.uc.Exports.Export(ctx, w, dataset, format)
}
