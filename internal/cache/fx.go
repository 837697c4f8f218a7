package cache

import (
	"context"

	"go.uber.org/fx"
)

func registerHooks(lc fx.Lifecycle, c *Cache) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = ctx
			return c.Close()
		},
	})
}

var Module = fx.Module("cache",
	fx.Provide(New),
	fx.Invoke(registerHooks),
)
