package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/pkg/export"
	testhelpers "github.com/stitchcraft/stitchcraft/internal/test"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

func newFacade(t *testing.T) (*StudioFacade, *testhelpers.Env) {
	t.Helper()
	env := testhelpers.NewEnv(t)
	return NewStudioFacade(env.Services), env
}

func TestStudioFacadeAuth(t *testing.T) {
	facade, _ := newFacade(t)
	ctx := context.Background()

	session, err := facade.Register(ctx, usecase.RegisterInput{Name: "Ama", Email: "ama@example.com", Password: "password123", BusinessName: "Ama Couture"})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if session.Organization == nil || !strings.HasPrefix(session.Organization.Slug, "ama-couture-") {
		t.Fatalf("unexpected organization %+v", session.Organization)
	}

	if _, err := facade.Authenticate(ctx, "ama@example.com", "wrong-password"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	actor, err := facade.ResolveActor(ctx, session.Token)
	if err != nil {
		t.Fatalf("resolve actor: %v", err)
	}
	if actor.OrganizationID != session.Organization.ID {
		t.Fatalf("expected actor in organization %d, got %d", session.Organization.ID, actor.OrganizationID)
	}

	admin, err := facade.CreateAdmin(ctx, "root@example.com", "Root", "password123")
	if err != nil || admin.Role != model.RoleAdmin {
		t.Fatalf("expected admin, got %+v %v", admin, err)
	}
}

func TestStudioFacadeOrdersAndPayments(t *testing.T) {
	facade, env := newFacade(t)
	tenant := env.Tailor(t, "Facade Tailors")
	ctx := tenant.Ctx()

	client, err := facade.CreateClient(ctx, usecase.ClientInput{Name: "Kofi", Email: "kofi@example.com"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	order, err := facade.CreateOrder(ctx, usecase.OrderInput{ClientID: client.ID, Title: "Smock", TotalAmount: testhelpers.Money("250")})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	result, err := facade.RecordPayment(ctx, usecase.PaymentInput{OrderID: order.ID, Amount: testhelpers.Money("100"), Reference: "MOMO-1", Method: model.PaymentMethodMobileMoney})
	if err != nil || result.AlreadyRecorded {
		t.Fatalf("record payment: %+v %v", result, err)
	}
	result, err = facade.RecordPayment(ctx, usecase.PaymentInput{OrderID: order.ID, Amount: testhelpers.Money("100"), Reference: "MOMO-1", Method: model.PaymentMethodMobileMoney})
	if err != nil || !result.AlreadyRecorded {
		t.Fatalf("expected replay to be flagged, got %+v %v", result, err)
	}

	got, err := facade.Order(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if !got.Outstanding().Equal(testhelpers.Money("150")) {
		t.Fatalf("expected 150 outstanding, got %s", got.Outstanding())
	}

	payments, err := facade.Payments(ctx)
	if err != nil || len(payments) != 1 {
		t.Fatalf("expected one payment, got %d %v", len(payments), err)
	}
	if env.Publisher.Count() != 1 {
		t.Fatalf("expected one event, got %d", env.Publisher.Count())
	}

	updated, err := facade.UpdateOrderStatus(ctx, order.ID, "IN_PROGRESS")
	if err != nil || updated.Status != model.OrderStatusInProgress {
		t.Fatalf("update status: %+v %v", updated, err)
	}
}

func TestStudioFacadeCheckoutAndReconcile(t *testing.T) {
	facade, env := newFacade(t)
	tenant := env.Tailor(t, "Checkout Tailors")
	order := env.Order(t, tenant, env.Client(t, tenant, "Kofi").ID, "80")

	intent, err := facade.StartCheckout(tenant.Ctx(), usecase.CheckoutInput{OrderID: order.ID, Email: "kofi@example.com"})
	if err != nil {
		t.Fatalf("start checkout: %v", err)
	}

	pending, err := facade.PendingCheckouts(context.Background(), time.Minute, 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected the intent to be pending, got %d %v", len(pending), err)
	}

	env.Paystack.Settle(intent.Reference, "success", 8000)
	result, err := facade.VerifyCheckout(context.Background(), intent.Reference)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Intent.Status != model.IntentStatusSucceeded || result.Payment == nil {
		t.Fatalf("expected settled checkout, got %+v", result)
	}
	stored, _ := env.Store.Order(order.ID)
	if !stored.Outstanding().IsZero() {
		t.Fatalf("expected order to be paid, got %s outstanding", stored.Outstanding())
	}
}

func TestStudioFacadeTrackingAndExports(t *testing.T) {
	facade, env := newFacade(t)
	tenant := env.Tailor(t, "Tracking Tailors")
	client := env.Client(t, tenant, "Yaa")
	env.Order(t, tenant, client.ID, "60")

	issued, err := facade.IssueTrackingToken(tenant.Ctx(), client.ID, 0)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if issued.URL != facade.TrackingURL(issued.Token.Token) {
		t.Fatalf("unexpected url %q", issued.URL)
	}

	portal, err := facade.Portal(context.Background(), issued.Token.Token)
	if err != nil {
		t.Fatalf("portal: %v", err)
	}
	if len(portal.Orders) != 1 || portal.Client.ID != client.ID {
		t.Fatalf("unexpected portal %+v", portal)
	}

	if err := facade.DeactivateTrackingToken(tenant.Ctx(), issued.Token.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	validation, err := facade.ValidateTrackingToken(context.Background(), issued.Token.Token)
	if err != nil || validation.Valid || validation.Error != usecase.TokenInactive {
		t.Fatalf("expected inactive token, got %+v %v", validation, err)
	}

	var buf bytes.Buffer
	if err := facade.Export(tenant.Ctx(), &buf, usecase.DatasetClients, export.FormatCSV); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), "Yaa") {
		t.Fatalf("expected client in export, got %q", buf.String())
	}
}
