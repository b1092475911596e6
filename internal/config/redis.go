package config

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var RedisClient *redis.Client

// InitRedis connects to Redis. It returns nil when no address is configured
// or the server does not answer; the counter cache then falls back to the store.
func InitRedis(s *Settings, logger *zap.Logger) *redis.Client {
	if !s.RedisEnabled() {
		logger.Info("REDIS_ADDR not set, counter cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     s.RedisAddr,
		Password: s.RedisPassword,
		DB:       s.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		logger.Warn("Redis not reachable, counter cache disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}
	logger.Info("Connected to Redis", zap.String("ping", pong), zap.String("addr", s.RedisAddr))
	RedisClient = client
	return client
}
