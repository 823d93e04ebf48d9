package router

import (
	"reflect"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/server/http/handlers"
	"github.com/stitchcraft/stitchcraft/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StudioFacade, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	useJSONFieldNames()

	docsHandler, err := handlers.NewDocsHandler()
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	clientHandler := handlers.NewClientHandler(facade)
	teamHandler := handlers.NewTeamHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	trackingHandler := handlers.NewTrackingHandler(facade)
	invoiceHandler := handlers.NewInvoiceHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	exportHandler := handlers.NewExportHandler(facade)

	api := engine.Group("/api/v1")
	api.GET("/docs", docsHandler.JSON)
	api.GET("/docs/openapi.yaml", docsHandler.YAML)

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	api.POST("/webhooks/paystack", paymentHandler.Webhook)
	api.GET("/checkout/callback", paymentHandler.Callback)

	track := api.Group("/track/:token")
	track.GET("", trackingHandler.Portal)
	track.GET("/validate", trackingHandler.Validate)
	track.POST("/orders/:orderId/checkout", trackingHandler.Checkout)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/auth/me", authHandler.Me)

	authed.POST("/team/workers", teamHandler.AddWorker)
	authed.GET("/team/members", teamHandler.Members)

	authed.POST("/clients", clientHandler.Create)
	authed.GET("/clients", clientHandler.List)
	authed.GET("/clients/:id", clientHandler.Get)
	authed.PUT("/clients/:id", clientHandler.Update)
	authed.POST("/clients/:id/login", clientHandler.CreateLogin)
	authed.POST("/clients/:id/measurements", clientHandler.AddMeasurement)
	authed.GET("/clients/:id/measurements", clientHandler.Measurements)
	authed.POST("/clients/:id/tracking-tokens", trackingHandler.Issue)
	authed.GET("/clients/:id/tracking-tokens", trackingHandler.List)
	authed.DELETE("/tracking-tokens/:id", trackingHandler.Deactivate)

	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	authed.POST("/orders/:id/payments", orderHandler.RecordPayment)
	authed.GET("/orders/:id/payments", orderHandler.Payments)
	authed.POST("/orders/:id/checkout", orderHandler.Checkout)
	authed.GET("/payments", paymentHandler.List)

	authed.POST("/invoices", invoiceHandler.Issue)
	authed.GET("/invoices", invoiceHandler.List)
	authed.GET("/invoices/:id", invoiceHandler.Get)
	authed.POST("/invoices/:id/void", invoiceHandler.Void)

	authed.GET("/exports/:dataset", exportHandler.Export)
	authed.GET("/me/orders", orderHandler.ClientOrders)

	authed.GET("/admin/organizations", adminHandler.Organizations)
	authed.PATCH("/admin/users/:id", adminHandler.SetActive)

	return engine, nil
}

// useJSONFieldNames makes binding errors report json field names.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}
