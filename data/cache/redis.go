package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/redis/go-redis/v9"
)

const coinIDsKey = "portfolio_tracker:coin_ids"

var ErrNotFound = errors.New("error not found in cache")

type RedisCache struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisCache(redisClient *redis.Client, cfg *config.Config) *RedisCache {
	return &RedisCache{redis: redisClient, cfg: cfg}
}

// SetCoinIDs stores the filtered symbol -> coin id listing.
func (r *RedisCache) SetCoinIDs(ctx context.Context, coinIDs map[string]string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("SetCoinIDs start", slog.String("rqID", rqID), slog.Int("count", len(coinIDs)))

	payload, err := json.Marshal(coinIDs)
	if err != nil {
		slog.Error("can't marshall coin ids in SetCoinIDs", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return errors.New("can't marshall coin ids")
	}

	err = r.redis.Set(ctx, coinIDsKey, payload, r.cfg.Cache.CoinListExpiration).Err()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("SetCoinIDs completed", slog.String("rqID", rqID))

	return nil
}

func (r *RedisCache) GetCoinIDs(ctx context.Context) (map[string]string, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("GetCoinIDs start", slog.String("rqID", rqID))

	res, err := r.redis.Get(ctx, coinIDsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", coinIDsKey))
		return nil, err
	}

	coinIDs := make(map[string]string)
	err = json.Unmarshal([]byte(res), &coinIDs)
	if err != nil {
		slog.Error("can't unmarshall coin ids in GetCoinIDs", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return nil, errors.New("can't unmarshall coin ids")
	}

	slog.Debug("GetCoinIDs finished", slog.String("rqID", rqID), slog.Int("count", len(coinIDs)))

	return coinIDs, nil
}
