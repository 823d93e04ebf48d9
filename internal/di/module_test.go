package di

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/adapter/events"
	"github.com/stitchcraft/stitchcraft/internal/adapter/paystack"
	"github.com/stitchcraft/stitchcraft/internal/app"
	"github.com/stitchcraft/stitchcraft/internal/config"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
	"github.com/stitchcraft/stitchcraft/internal/storage/postgres"
	"github.com/stitchcraft/stitchcraft/internal/test"
	"github.com/stitchcraft/stitchcraft/internal/worker"
)

func testConfig() *config.Config {
	return &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		SessionSecret:     "secret",
		SessionTTL:        time.Hour,
		PaystackBaseURL:   "http://localhost",
		PaystackSecretKey: "sk_test",
		PublicBaseURL:     "http://localhost",
		EventsExchange:    "stitchcraft.events",
		LogLevel:          "info",
		ReconcileInterval: time.Millisecond,
		ReconcileBatch:    1,
		WorkerPoolSize:    1,
		ShutdownTimeout:   time.Millisecond,
	}
}

func replacements() fx.Option {
	store := test.NewStore()
	return fx.Options(
		fx.Replace(testConfig()),
		fx.Replace(zap.NewNop()),
		fx.Replace(&postgres.Storage{}),
		fx.Replace(fx.Annotate(store, fx.As(new(repository.Factory)))),
		fx.Replace(fx.Annotate(store.Users(), fx.As(new(repository.UserRepository)))),
		fx.Replace(fx.Annotate(store.Organizations(), fx.As(new(repository.OrganizationRepository)))),
		fx.Replace(fx.Annotate(store.Clients(), fx.As(new(repository.ClientRepository)))),
		fx.Replace(fx.Annotate(store.Measurements(), fx.As(new(repository.MeasurementRepository)))),
		fx.Replace(fx.Annotate(store.Orders(), fx.As(new(repository.OrderRepository)))),
		fx.Replace(fx.Annotate(store.Payments(), fx.As(new(repository.PaymentRepository)))),
		fx.Replace(fx.Annotate(store.PaymentIntents(), fx.As(new(repository.PaymentIntentRepository)))),
		fx.Replace(fx.Annotate(store.TrackingTokens(), fx.As(new(repository.TrackingTokenRepository)))),
		fx.Replace(fx.Annotate(store.Invoices(), fx.As(new(repository.InvoiceRepository)))),
		fx.Replace(fx.Annotate(test.NewPaystackStub(), fx.As(new(paystack.Client)))),
		fx.Replace(fx.Annotate(&test.PublisherStub{}, fx.As(new(events.Publisher)))),
	)
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	var (
		facade     *app.StudioFacade
		engine     *gin.Engine
		reconciler *worker.Reconciler
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Supply(config.Args(nil)),
		Module(replacements()),
		fx.Populate(&facade, &engine, &reconciler),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if facade == nil || engine == nil || reconciler == nil {
		t.Fatal("expected facade, router and reconciler instances")
	}
}

func TestCoreComposesWithoutServer(t *testing.T) {
	var facade *app.StudioFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Supply(config.Args(nil)),
		Core(replacements()),
		fx.Populate(&facade),
	)
	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}

	user, err := facade.CreateAdmin(context.Background(), "root@example.com", "Root", "password123")
	if err != nil {
		t.Fatalf("create admin through core graph: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected stored admin")
	}
}
