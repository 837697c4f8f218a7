package property

import "go.uber.org/fx"

var Module = fx.Module("property.service",
	fx.Provide(ProvideRepository),
	fx.Provide(New),
)
