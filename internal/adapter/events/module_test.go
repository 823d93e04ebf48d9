package events

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/config"
)

func TestModuleFallsBackToNoop(t *testing.T) {
	publisher, err := newPublisherFromConfig(publisherParams{Config: &config.Config{}, Logger: zap.NewNop()})
	require.NoError(t, err)
	require.IsType(t, &NoopPublisher{}, publisher)

	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, publisher)
	lc.RequireStart().RequireStop()
}

func TestModuleDialsConfiguredBroker(t *testing.T) {
	_, err := newPublisherFromConfig(publisherParams{
		Config: &config.Config{AMQPURL: "not-a-url", EventsExchange: "stitchcraft.events"},
		Logger: zap.NewNop(),
	})
	require.Error(t, err)
}
