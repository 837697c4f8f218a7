package subject

import "go.uber.org/fx"

var Module = fx.Module("subject.service",
	fx.Provide(ProvideRepository),
	fx.Provide(New),
)
