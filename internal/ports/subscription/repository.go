package subscription

import (
	"context"

	"socialgraph/internal/core/page"
	"socialgraph/internal/core/subscription"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
)

// SubscriptionRepository stores directed follow edges.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *subscription.Subscription) (*subscription.Subscription, error)
	Delete(ctx context.Context, followerID, followingID uuid.UUID) (int64, error)
	IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	FollowingPage(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[user.Ref], error)
	FollowersPage(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[user.Ref], error)
}

type FollowStatsDTO struct {
	UserID    string `json:"user_id"`
	Following int64  `json:"following"`
	Followers int64  `json:"followers"`
}
