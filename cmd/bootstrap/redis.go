package bootstrap

import (
	"context"
	"log/slog"

	"promenu/internal/infra/cache"
	"promenu/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		fx.Annotate(
			NewCacheKV,
			fx.As(new(cache.KV)),
		),
	),
)

// NewCacheKV wires the persisted cache tier. With redis disabled the caches
// run memory-only; every feature still works, values just do not survive a
// restart.
func NewCacheKV(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) cache.KV {
	if !cfg.Redis.Enabled {
		logger.Info("persisted cache tier disabled")
		return cache.NopKV{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				// Degraded, not fatal; the KV stays best-effort.
				logger.Warn("redis unreachable, persisted cache degraded", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return cache.NewRedisKV(client)
}
