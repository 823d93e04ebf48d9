package router

import "go.uber.org/fx"

// Module provides the gin engine built by Setup.
var Module = fx.Provide(Setup)
