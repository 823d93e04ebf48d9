package config

import "go.uber.org/fx"

// Module exposes configuration loader for fx graphs. The caller supplies Args.
var Module = fx.Provide(LoadArgs)
