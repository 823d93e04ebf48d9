package di

import (
	"go.uber.org/fx"

	"github.com/stitchcraft/stitchcraft/internal/adapter/events"
	"github.com/stitchcraft/stitchcraft/internal/adapter/paystack"
	"github.com/stitchcraft/stitchcraft/internal/app"
	"github.com/stitchcraft/stitchcraft/internal/config"
	"github.com/stitchcraft/stitchcraft/internal/logger"
	"github.com/stitchcraft/stitchcraft/internal/pkg/auth"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
	"github.com/stitchcraft/stitchcraft/internal/server/http/handlers"
	"github.com/stitchcraft/stitchcraft/internal/server/http/router"
	"github.com/stitchcraft/stitchcraft/internal/storage/postgres"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

func services() []fx.Option {
	return []fx.Option{
		config.Module,
		logger.Module,
		policy.Module,
		auth.Module,
		postgres.Module,
		paystack.Module,
		events.Module,
		usecase.Module,
	}
}

// Core is the graph of storage and use cases without the HTTP server and
// the reconciler. One-off CLI commands run on it.
func Core(opts ...fx.Option) fx.Option {
	modules := append(services(), fx.Provide(app.NewStudioFacade))
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

// Module is the full server graph.
func Module(opts ...fx.Option) fx.Option {
	modules := append(services(),
		fx.Provide(func(f *app.StudioFacade) handlers.StudioFacade { return f }),
		router.Module,
		app.Module,
	)
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
