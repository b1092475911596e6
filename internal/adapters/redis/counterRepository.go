package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CounterRepositoryRedis caches integer aggregates as plain string keys with a TTL.
type CounterRepositoryRedis struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewCounterRepositoryRedis(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CounterRepositoryRedis {
	return &CounterRepositoryRedis{
		Client: client,
		TTL:    ttl,
		Logger: logger,
	}
}

func (r *CounterRepositoryRedis) Get(ctx context.Context, key string) (int64, bool, error) {
	v, err := r.Client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (r *CounterRepositoryRedis) Set(ctx context.Context, key string, value int64) error {
	if err := r.Client.Set(ctx, key, value, r.TTL).Err(); err != nil {
		return err
	}
	r.Logger.Debug("counter cached", zap.String("key", key), zap.Int64("value", value))
	return nil
}

// Invalidate removes keys in one round trip.
func (r *CounterRepositoryRedis) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.Client.Del(ctx, keys...).Err()
}
