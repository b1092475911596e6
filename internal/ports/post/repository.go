package post

import (
	"context"
	"time"

	"socialgraph/internal/core/page"
	"socialgraph/internal/core/post"

	"github.com/gofrs/uuid"
)

// PostRepository stores posts.
//
// Every read excludes rows with is_deleted = true. FindPurgeable is the only
// method that looks at hidden rows.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
	SoftDeleteAllByAuthor(ctx context.Context, authorID uuid.UUID, at time.Time) (int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, req page.Request) (page.Page[*post.Post], error)
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, req page.Request) (page.Page[*post.Post], error)
	ListAll(ctx context.Context, req page.Request) (page.Page[*post.Post], error)
	CountActiveByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	FindInDateRange(ctx context.Context, start, end time.Time, req page.Request) (page.Page[*post.Post], error)
	// Delete removes the post row and all of its images in one transaction.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindPurgeable(ctx context.Context, deletedBefore time.Time, limit int) ([]uuid.UUID, error)
}

// ImageRepository stores images; callers reach it only through the owning post.
// Reads see only images whose post is active.
type ImageRepository interface {
	Create(ctx context.Context, img *post.Image) (*post.Image, error)
	FindByID(ctx context.Context, id uuid.UUID) (*post.Image, error)
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*post.Image, error)
	CountByPostID(ctx context.Context, postID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}
