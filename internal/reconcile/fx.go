package reconcile

import "go.uber.org/fx"

var Module = fx.Module("reconcile",
	fx.Provide(ProvideRepository),
	fx.Provide(New),
)
