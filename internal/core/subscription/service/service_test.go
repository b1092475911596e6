package subscriptionapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"socialgraph/internal/core/apperr"
	subscriptionEntity "socialgraph/internal/core/subscription"
	"socialgraph/internal/core/user"
	"socialgraph/internal/ports/cache"
	subscriptionPort "socialgraph/internal/ports/subscription"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type identityStub map[uuid.UUID]bool

func (s identityStub) Resolve(_ context.Context, id uuid.UUID) (*user.Ref, error) {
	if !s[id] {
		return nil, apperr.NotFound("User", id)
	}
	return &user.Ref{ID: id, Active: true}, nil
}

func (s identityStub) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return s[id], nil
}

// memoryRepo keeps edges in a set so duplicate and idempotency rules can be checked.
type memoryRepo struct {
	subscriptionPort.SubscriptionRepository

	edges       map[[2]uuid.UUID]bool
	countCalls  int
	failCreates error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{edges: map[[2]uuid.UUID]bool{}}
}

func (r *memoryRepo) Create(_ context.Context, s *subscriptionEntity.Subscription) (*subscriptionEntity.Subscription, error) {
	if r.failCreates != nil {
		return nil, r.failCreates
	}
	key := [2]uuid.UUID{s.FollowerID, s.FollowingID}
	if r.edges[key] {
		return nil, apperr.DuplicatePair("Subscription", s.FollowerID, s.FollowingID)
	}
	r.edges[key] = true
	return s, nil
}

func (r *memoryRepo) Delete(_ context.Context, follower, following uuid.UUID) (int64, error) {
	key := [2]uuid.UUID{follower, following}
	if !r.edges[key] {
		return 0, nil
	}
	delete(r.edges, key)
	return 1, nil
}

func (r *memoryRepo) IsFollowing(_ context.Context, follower, following uuid.UUID) (bool, error) {
	return r.edges[[2]uuid.UUID{follower, following}], nil
}

func (r *memoryRepo) CountFollowing(_ context.Context, userID uuid.UUID) (int64, error) {
	r.countCalls++
	var n int64
	for k := range r.edges {
		if k[0] == userID {
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) CountFollowers(_ context.Context, userID uuid.UUID) (int64, error) {
	r.countCalls++
	var n int64
	for k := range r.edges {
		if k[1] == userID {
			n++
		}
	}
	return n, nil
}

type mapCounter struct {
	values map[string]int64
	err    error
}

func (c *mapCounter) Get(_ context.Context, key string) (int64, bool, error) {
	if c.err != nil {
		return 0, false, c.err
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *mapCounter) Set(_ context.Context, key string, v int64) error {
	if c.err != nil {
		return c.err
	}
	c.values[key] = v
	return nil
}

func (c *mapCounter) Invalidate(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return c.err
}

func newService(t *testing.T, repo *memoryRepo, counters cache.Counter, ids ...uuid.UUID) *SubscriptionService {
	identity := identityStub{}
	for _, id := range ids {
		identity[id] = true
	}
	svc := NewSubscriptionService(repo, identity, counters, zaptest.NewLogger(t))
	svc.Now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestFollowUnfollow(t *testing.T) {
	ctx := context.Background()
	a, b := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	repo := newMemoryRepo()
	svc := newService(t, repo, nil, a, b)

	_, err := svc.Follow(ctx, a, b)
	require.NoError(t, err)

	_, err = svc.Follow(ctx, a, b)
	assert.True(t, errors.Is(err, apperr.ErrDuplicatePair))

	ok, err := svc.IsFollowing(ctx, b, a)
	require.NoError(t, err)
	assert.False(t, ok, "follow is directed")

	require.NoError(t, svc.Unfollow(ctx, a, b))
	require.NoError(t, svc.Unfollow(ctx, a, b))

	ok, err = svc.IsFollowing(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowValidation(t *testing.T) {
	ctx := context.Background()
	a, ghost := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	svc := newService(t, newMemoryRepo(), nil, a)

	_, err := svc.Follow(ctx, a, a)
	assert.True(t, errors.Is(err, apperr.ErrValidationFailed))

	_, err = svc.Follow(ctx, a, ghost)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCountsAreCachedAndInvalidated(t *testing.T) {
	ctx := context.Background()
	a, b, c := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	repo := newMemoryRepo()
	counters := &mapCounter{values: map[string]int64{}}
	svc := newService(t, repo, counters, a, b, c)

	_, err := svc.Follow(ctx, a, b)
	require.NoError(t, err)

	n, err := svc.CountFollowing(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = svc.CountFollowing(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, repo.countCalls)

	_, err = svc.Follow(ctx, a, c)
	require.NoError(t, err)
	n, err = svc.CountFollowing(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	stats, err := svc.FollowStats(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Following)
	assert.Equal(t, int64(1), stats.Followers)
}

func TestCacheFailureFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	a, b := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	repo := newMemoryRepo()
	counters := &mapCounter{values: map[string]int64{}, err: errors.New("connection refused")}
	svc := newService(t, repo, counters, a, b)

	_, err := svc.Follow(ctx, a, b)
	require.NoError(t, err)

	n, err := svc.CountFollowers(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
