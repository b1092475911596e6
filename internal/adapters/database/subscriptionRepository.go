package database

import (
	"context"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/page"
	"socialgraph/internal/core/subscription"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// SubscriptionRepositoryDatabase stores follow edges in the subscriptions table.
type SubscriptionRepositoryDatabase struct {
	db *gorm.DB
}

func NewSubscriptionRepositoryDatabase(db *gorm.DB) *SubscriptionRepositoryDatabase {
	return &SubscriptionRepositoryDatabase{db: db}
}

var followSort = sortColumns{
	"createdAt": "s.created_at",
	"username":  "users.username",
}

// Create relies on uk_subscriptions_pair: a concurrent duplicate loses with DuplicatePair.
func (repo *SubscriptionRepositoryDatabase) Create(ctx context.Context, s *subscription.Subscription) (*subscription.Subscription, error) {
	if err := repo.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, translate(err, func() error {
			return apperr.DuplicatePair("Subscription", s.FollowerID, s.FollowingID)
		})
	}
	return s, nil
}

func (repo *SubscriptionRepositoryDatabase) Delete(ctx context.Context, followerID, followingID uuid.UUID) (int64, error) {
	res := repo.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&subscription.Subscription{})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}
	return res.RowsAffected, nil
}

func (repo *SubscriptionRepositoryDatabase) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&subscription.Subscription{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

func (repo *SubscriptionRepositoryDatabase) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	return repo.count(ctx, "follower_id = ?", userID)
}

func (repo *SubscriptionRepositoryDatabase) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	return repo.count(ctx, "following_id = ?", userID)
}

func (repo *SubscriptionRepositoryDatabase) count(ctx context.Context, cond string, userID uuid.UUID) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&subscription.Subscription{}).Where(cond, userID).Count(&count).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

// FollowingPage lists the users userID follows, newest edge first.
func (repo *SubscriptionRepositoryDatabase) FollowingPage(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[user.Ref], error) {
	query := repo.db.WithContext(ctx).Model(&user.User{}).
		Joins("JOIN subscriptions s ON s.following_id = users.id").
		Where("s.follower_id = ?", userID)
	return repo.userPage(query, req)
}

// FollowersPage lists the users following userID, newest edge first.
func (repo *SubscriptionRepositoryDatabase) FollowersPage(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[user.Ref], error) {
	query := repo.db.WithContext(ctx).Model(&user.User{}).
		Joins("JOIN subscriptions s ON s.follower_id = users.id").
		Where("s.following_id = ?", userID)
	return repo.userPage(query, req)
}

func (repo *SubscriptionRepositoryDatabase) userPage(query *gorm.DB, req page.Request) (page.Page[user.Ref], error) {
	order, err := followSort.orderBy(req, "s.created_at DESC", "users.id DESC")
	if err != nil {
		return page.Page[user.Ref]{}, err
	}
	users, err := paginate[*user.User](query, req, order)
	if err != nil {
		return page.Page[user.Ref]{}, err
	}
	return page.Map(users, func(u *user.User) user.Ref { return u.Ref() }), nil
}
