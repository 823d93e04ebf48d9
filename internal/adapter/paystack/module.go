package paystack

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/config"
)

// Module exposes the payment provider client and webhook verifier to fx graph.
var Module = fx.Provide(newClient, newVerifier)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.PaystackBaseURL, p.Config.PaystackSecretKey, p.Logger.Named("paystack"))
}

func newVerifier(cfg *config.Config) *Verifier {
	return NewVerifier(cfg.PaystackSecretKey)
}
