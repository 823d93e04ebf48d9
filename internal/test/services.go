package test

import (
	"context"
	"testing"

	"github.com/stitchcraft/stitchcraft/internal/adapter/paystack"
	"github.com/stitchcraft/stitchcraft/internal/config"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// WebhookSecret signs webhooks in tests.
const WebhookSecret = "sk_test_secret"

// Env bundles use cases wired to in-memory doubles.
type Env struct {
	Store     *Store
	Paystack  *PaystackStub
	Publisher *PublisherStub
	Verifier  *paystack.Verifier
	Config    *config.Config
	Services  usecase.Services
}

// NewEnv wires every use case against a fresh Store.
func NewEnv(t testing.TB) *Env {
	t.Helper()
	store := NewStore()
	provider := NewPaystackStub()
	publisher := &PublisherStub{}
	verifier := paystack.NewVerifier(WebhookSecret)
	cfg := &config.Config{PublicBaseURL: "https://stitchcraft.test"}
	table, err := policy.Default()
	if err != nil {
		t.Fatalf("load default policy: %v", err)
	}
	guard := usecase.NewGuard(table)
	hasher := HasherStub{}

	payments := usecase.NewPaymentUseCase(guard, store.Orders(), store.Payments(), publisher, nil)
	tracking := usecase.NewTrackingUseCase(guard, usecase.TrackingDeps{
		Tokens:   store.TrackingTokens(),
		Clients:  store.Clients(),
		Orgs:     store.Organizations(),
		Users:    store.Users(),
		Orders:   store.Orders(),
		Payments: store.Payments(),
	}, cfg, nil)

	return &Env{
		Store:     store,
		Paystack:  provider,
		Publisher: publisher,
		Verifier:  verifier,
		Config:    cfg,
		Services: usecase.Services{
			Auth:     usecase.NewAuthUseCase(store.Users(), store.Organizations(), store.Clients(), hasher, StrategyStub{}),
			Clients:  usecase.NewClientUseCase(guard, store.Clients(), store.Measurements(), hasher),
			Team:     usecase.NewTeamUseCase(guard, store.Organizations(), hasher),
			Orders:   usecase.NewOrderUseCase(guard, store.Orders(), store.Clients()),
			Payments: payments,
			Tracking: tracking,
			Checkout: usecase.NewCheckoutUseCase(guard, store.Orders(), store.PaymentIntents(), payments, tracking, provider, cfg, nil),
			Webhooks: usecase.NewWebhookUseCase(verifier, payments, store.PaymentIntents(), nil),
			Invoices: usecase.NewInvoiceUseCase(guard, store.Orders(), store.Invoices()),
			Admin:    usecase.NewAdminUseCase(guard, store.Organizations(), store.Users()),
			Exports:  usecase.NewExportUseCase(guard, store.Clients(), store.Invoices(), store.Payments()),
		},
	}
}

// Tenant is a registered tailor with their organization.
type Tenant struct {
	Actor *model.Actor
	Token string
}

// Ctx returns a context carrying the tenant owner as actor.
func (tn Tenant) Ctx() context.Context {
	return usecase.WithActor(context.Background(), tn.Actor)
}

// OrgID returns the tenant's organization id.
func (tn Tenant) OrgID() int64 {
	return tn.Actor.OrganizationID
}

// Tailor registers a tailor and resolves them as an actor.
func (e *Env) Tailor(t testing.TB, business string) Tenant {
	t.Helper()
	session, err := e.Services.Auth.Register(context.Background(), usecase.RegisterInput{
		Name:         business + " Owner",
		Email:        RandomEmail(),
		Password:     "password123",
		BusinessName: business,
	})
	if err != nil {
		t.Fatalf("register tailor: %v", err)
	}
	actor, err := e.Services.Auth.ResolveActor(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("resolve tailor: %v", err)
	}
	return Tenant{Actor: actor, Token: session.Token}
}

// Client creates a client for the tenant.
func (e *Env) Client(t testing.TB, tn Tenant, name string) *model.Client {
	t.Helper()
	client, err := e.Services.Clients.Create(tn.Ctx(), usecase.ClientInput{Name: name, Phone: "+233200000000", Email: RandomEmail()})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

// Order creates an order with the given total for a client of the tenant.
func (e *Env) Order(t testing.TB, tn Tenant, clientID int64, total string) *model.Order {
	t.Helper()
	order, err := e.Services.Orders.Create(tn.Ctx(), usecase.OrderInput{ClientID: clientID, Title: "Kaba and slit", TotalAmount: Money(total)})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

// Sign computes the webhook signature for body.
func (e *Env) Sign(body []byte) string {
	return e.Verifier.Sign(body)
}
