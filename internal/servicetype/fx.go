package servicetype

import "go.uber.org/fx"

var Module = fx.Module("servicetype.service",
	fx.Provide(ProvideRepository),
	fx.Provide(New),
)
