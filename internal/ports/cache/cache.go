// Package cache is the port for the read-through counter cache.
package cache

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// Counter caches integer aggregates. Get reports ok=false on a miss.
type Counter interface {
	Get(ctx context.Context, key string) (int64, bool, error)
	Set(ctx context.Context, key string, value int64) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Noop is used when no cache backend is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (int64, bool, error) { return 0, false, nil }
func (Noop) Set(context.Context, string, int64) error          { return nil }
func (Noop) Invalidate(context.Context, ...string) error       { return nil }

func FollowingCountKey(userID uuid.UUID) string {
	return fmt.Sprintf("subscriptions:following_count:%s", userID)
}

func FollowersCountKey(userID uuid.UUID) string {
	return fmt.Sprintf("subscriptions:followers_count:%s", userID)
}

func UnreadCountKey(userID uuid.UUID) string {
	return fmt.Sprintf("messages:unread_count:%s", userID)
}

// ReadThrough returns the cached value for key, or loads it from the store and
// caches it. Cache failures are logged and never returned.
func ReadThrough(ctx context.Context, c Counter, logger *zap.Logger, key string, load func() (int64, error)) (int64, error) {
	if v, ok, err := c.Get(ctx, key); err != nil {
		logger.Warn("counter cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return v, nil
	}

	v, err := load()
	if err != nil {
		return 0, err
	}
	if err := c.Set(ctx, key, v); err != nil {
		logger.Warn("counter cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}

// Drop invalidates keys, logging instead of failing.
func Drop(ctx context.Context, c Counter, logger *zap.Logger, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.Invalidate(ctx, keys...); err != nil {
		logger.Warn("counter cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
