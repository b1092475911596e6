package subscriptionapp

import (
	"context"
	"time"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/page"
	subscriptionEntity "socialgraph/internal/core/subscription"
	"socialgraph/internal/core/user"
	"socialgraph/internal/ports/cache"
	subscriptionPort "socialgraph/internal/ports/subscription"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type SubscriptionService struct {
	SubscriptionRepository subscriptionPort.SubscriptionRepository
	Identity               userPort.IdentityLookup
	Counters               cache.Counter
	Logger                 *zap.Logger
	Now                    func() time.Time
}

func NewSubscriptionService(
	repo subscriptionPort.SubscriptionRepository,
	identity userPort.IdentityLookup,
	counters cache.Counter,
	logger *zap.Logger,
) *SubscriptionService {
	if counters == nil {
		counters = cache.Noop{}
	}
	return &SubscriptionService{
		SubscriptionRepository: repo,
		Identity:               identity,
		Counters:               counters,
		Logger:                 logger,
		Now:                    func() time.Time { return time.Now().UTC() },
	}
}

// Follow adds the directed edge followerID -> followingID.
func (s *SubscriptionService) Follow(ctx context.Context, followerID, followingID uuid.UUID) (*subscriptionEntity.Subscription, error) {
	if followerID == followingID {
		return nil, apperr.Validation("cannot follow yourself")
	}
	if err := userPort.EnsureExists(ctx, s.Identity, followerID, followingID); err != nil {
		return nil, err
	}

	sub, err := s.SubscriptionRepository.Create(ctx, subscriptionEntity.New(followerID, followingID, s.Now()))
	if err != nil {
		s.Logger.Warn("follow rejected",
			zap.String("followerID", followerID.String()),
			zap.String("followingID", followingID.String()),
			zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, followerID, followingID)
	s.Logger.Info("follow created",
		zap.String("followerID", followerID.String()),
		zap.String("followingID", followingID.String()))
	return sub, nil
}

// Unfollow removes only the exact directed edge. Not following is a no-op.
func (s *SubscriptionService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	n, err := s.SubscriptionRepository.Delete(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if n > 0 {
		s.invalidate(ctx, followerID, followingID)
		s.Logger.Info("follow removed",
			zap.String("followerID", followerID.String()),
			zap.String("followingID", followingID.String()))
	}
	return nil
}

func (s *SubscriptionService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.SubscriptionRepository.IsFollowing(ctx, followerID, followingID)
}

func (s *SubscriptionService) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	return cache.ReadThrough(ctx, s.Counters, s.Logger, cache.FollowingCountKey(userID), func() (int64, error) {
		return s.SubscriptionRepository.CountFollowing(ctx, userID)
	})
}

func (s *SubscriptionService) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	return cache.ReadThrough(ctx, s.Counters, s.Logger, cache.FollowersCountKey(userID), func() (int64, error) {
		return s.SubscriptionRepository.CountFollowers(ctx, userID)
	})
}

func (s *SubscriptionService) FollowStats(ctx context.Context, userID uuid.UUID) (*subscriptionPort.FollowStatsDTO, error) {
	if err := userPort.EnsureExists(ctx, s.Identity, userID); err != nil {
		return nil, err
	}
	following, err := s.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &subscriptionPort.FollowStatsDTO{
		UserID:    userID.String(),
		Following: following,
		Followers: followers,
	}, nil
}

func (s *SubscriptionService) ListFollowing(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[user.Ref], error) {
	if err := userPort.EnsureExists(ctx, s.Identity, userID); err != nil {
		return page.Page[user.Ref]{}, err
	}
	return s.SubscriptionRepository.FollowingPage(ctx, userID, req)
}

func (s *SubscriptionService) ListFollowers(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[user.Ref], error) {
	if err := userPort.EnsureExists(ctx, s.Identity, userID); err != nil {
		return page.Page[user.Ref]{}, err
	}
	return s.SubscriptionRepository.FollowersPage(ctx, userID, req)
}

func (s *SubscriptionService) invalidate(ctx context.Context, followerID, followingID uuid.UUID) {
	cache.Drop(ctx, s.Counters, s.Logger,
		cache.FollowingCountKey(followerID),
		cache.FollowersCountKey(followingID))
}
