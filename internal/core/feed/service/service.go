package feedapp

import (
	"context"

	"socialgraph/internal/core/page"
	postEntity "socialgraph/internal/core/post"
	feedPort "socialgraph/internal/ports/feed"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
)

type FeedService struct {
	FeedRepository feedPort.FeedRepository
	Identity       userPort.IdentityLookup
}

func NewFeedService(feedRepo feedPort.FeedRepository, identity userPort.IdentityLookup) *FeedService {
	return &FeedService{
		FeedRepository: feedRepo,
		Identity:       identity,
	}
}

// GetFeed returns active posts of everyone userID follows, newest first. A
// user who follows nobody gets an empty page.
func (s *FeedService) GetFeed(ctx context.Context, userID uuid.UUID, req page.Request) (page.Page[*postEntity.Post], error) {
	if err := req.Validate(); err != nil {
		return page.Page[*postEntity.Post]{}, err
	}
	if err := userPort.EnsureExists(ctx, s.Identity, userID); err != nil {
		return page.Page[*postEntity.Post]{}, err
	}
	return s.FeedRepository.FeedForUser(ctx, userID, req)
}
