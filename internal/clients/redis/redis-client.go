package redis_client

import (
	"context"
	"log/slog"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/N08I40K/schedule-parser-next/internal/cache"
	"github.com/N08I40K/schedule-parser-next/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func New(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Infrastructure.Redis.Addr,
		Password: cfg.Infrastructure.Redis.Password,
		DB:       cfg.Infrastructure.Redis.Db,
	})
}

// NewCacheFactory redis при заданном REDIS_ADDR, иначе память процесса
func NewCacheFactory(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) app.MemoCacheFactory {
	if cfg.Infrastructure.Redis.Addr == "" {
		log.Warn("REDIS_ADDR is empty, memo cache is kept in memory")
		return cache.NewMemory()
	}

	client := New(cfg)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// недоступный redis не валит старт: промахи кеша только логируются
			if err := client.Ping(ctx).Err(); err != nil {
				log.Error("redis ping failed", slog.String("addr", cfg.Infrastructure.Redis.Addr), slog.Any("error", err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return cache.NewRedis(client, cfg.Infrastructure.Redis.Prefix)
}
