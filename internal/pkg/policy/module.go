package policy

import (
	"go.uber.org/fx"

	"github.com/stitchcraft/stitchcraft/internal/config"
)

var Module = fx.Provide(newTable)

func newTable(cfg *config.Config) (*Table, error) {
	return Load(cfg.PolicyFile)
}
