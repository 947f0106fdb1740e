package data

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// NewRedisClient connects to the redis that backs the coin listing cache.
func NewRedisClient(cfg *config.Config) *redis.Client {
	addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              cfg.Redis.Password,
		DB:                    cfg.Redis.DB,
		ContextTimeoutEnabled: true,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("can't reach redis", slog.String("addr", addr), slog.String("err", err.Error()))
		panic(err)
	}
	slog.Info("redis connected", slog.String("addr", addr), slog.Int("db", cfg.Redis.DB))

	return rdb
}
