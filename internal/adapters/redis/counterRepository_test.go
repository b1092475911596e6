package redis

import (
	"context"
	"testing"
	"time"

	"socialgraph/internal/ports/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupCounter(t *testing.T) (*CounterRepositoryRedis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCounterRepositoryRedis(client, time.Minute, zaptest.NewLogger(t)), mr
}

func TestCounterRepositoryRedis(t *testing.T) {
	repo, mr := setupCounter(t)
	ctx := context.Background()
	var _ cache.Counter = repo

	user := uuid.Must(uuid.NewV4())
	key := cache.UnreadCountKey(user)

	_, ok, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, key, 7))
	v, ok, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)
	assert.Equal(t, time.Minute, mr.TTL(key))

	other := cache.FollowersCountKey(user)
	require.NoError(t, repo.Set(ctx, other, 3))
	require.NoError(t, repo.Invalidate(ctx, key, other))
	assert.False(t, mr.Exists(key))
	assert.False(t, mr.Exists(other))

	require.NoError(t, repo.Invalidate(ctx))
}

func TestCounterRepositoryRedis_Expiry(t *testing.T) {
	repo, mr := setupCounter(t)
	ctx := context.Background()
	key := cache.FollowingCountKey(uuid.Must(uuid.NewV4()))

	require.NoError(t, repo.Set(ctx, key, 1))
	mr.FastForward(2 * time.Minute)

	_, ok, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCounterRepositoryRedis_ServerDown(t *testing.T) {
	repo, mr := setupCounter(t)
	mr.Close()

	_, _, err := repo.Get(context.Background(), "k")
	assert.Error(t, err)
}
