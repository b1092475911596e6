package feed

import (
	"context"

	"socialgraph/internal/core/page"
	"socialgraph/internal/core/post"

	"github.com/gofrs/uuid"
)

// FeedRepository computes the feed at query time from subscriptions and posts.
type FeedRepository interface {
	FeedForUser(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[*post.Post], error)
}
