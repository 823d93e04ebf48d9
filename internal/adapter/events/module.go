package events

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/config"
)

// Module provides the event publisher, falling back to a no-op one without AMQP_URL.
var Module = fx.Options(
	fx.Provide(newPublisherFromConfig),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func newPublisherFromConfig(p publisherParams) (Publisher, error) {
	logger := p.Logger.Named("events")
	if p.Config.AMQPURL == "" {
		return NewNoopPublisher(logger), nil
	}
	return NewAMQPPublisher(p.Config.AMQPURL, p.Config.EventsExchange, logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
}
