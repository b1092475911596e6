package database

import (
	"context"

	"socialgraph/internal/core/page"
	"socialgraph/internal/core/post"
	"socialgraph/internal/core/subscription"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// FeedRepositoryDatabase assembles a user's feed with a single query over
// posts and subscriptions. Nothing is materialized.
type FeedRepositoryDatabase struct {
	db *gorm.DB
}

func NewFeedRepositoryDatabase(db *gorm.DB) *FeedRepositoryDatabase {
	return &FeedRepositoryDatabase{db: db}
}

func (repo *FeedRepositoryDatabase) FeedForUser(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[*post.Post], error) {
	followed := repo.db.Model(&subscription.Subscription{}).
		Select("following_id").
		Where("follower_id = ?", userID)

	query := repo.db.WithContext(ctx).Model(&post.Post{}).
		Where("posts.is_deleted = ?", false).
		Where("posts.user_id IN (?)", followed)

	return paginate[*post.Post](query, req, postNewestFirst+", "+postTie, withImages)
}
