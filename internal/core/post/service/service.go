package postapp

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/page"
	postEntity "socialgraph/internal/core/post"
	postPort "socialgraph/internal/ports/post"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	PostRepository  postPort.PostRepository
	ImageRepository postPort.ImageRepository
	Identity        userPort.IdentityLookup
	Logger          *zap.Logger
	Now             func() time.Time
}

func NewPostService(
	postRepo postPort.PostRepository,
	imageRepo postPort.ImageRepository,
	identity userPort.IdentityLookup,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:  postRepo,
		ImageRepository: imageRepo,
		Identity:        identity,
		Logger:          logger,
		Now:             func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost validates before touching the store.
func (s *PostService) CreatePost(ctx context.Context, authorID uuid.UUID, title, content string) (*postEntity.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if utf8.RuneCountInString(title) > postEntity.MaxTitleLength {
		return nil, apperr.Validation(fmt.Sprintf("title must be between 1 and %d characters", postEntity.MaxTitleLength))
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("content is required")
	}
	if err := userPort.EnsureExists(ctx, s.Identity, authorID); err != nil {
		return nil, err
	}

	p, err := s.PostRepository.Create(ctx, postEntity.New(authorID, title, content, s.Now()))
	if err != nil {
		s.Logger.Error("failed to create post", zap.String("authorID", authorID.String()), zap.Error(err))
		return nil, err
	}
	s.Logger.Info("post created", zap.String("postID", p.ID.String()), zap.String("authorID", authorID.String()))
	return p, nil
}

func (s *PostService) GetPost(ctx context.Context, postID uuid.UUID) (*postEntity.Post, error) {
	return s.PostRepository.FindActiveByID(ctx, postID)
}

// SoftDelete hides the post. Missing or already hidden posts are a no-op.
func (s *PostService) SoftDelete(ctx context.Context, postID uuid.UUID) error {
	n, err := s.PostRepository.SoftDelete(ctx, postID, s.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.Logger.Info("post soft-deleted", zap.String("postID", postID.String()))
	}
	return nil
}

func (s *PostService) SoftDeleteAllByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	n, err := s.PostRepository.SoftDeleteAllByAuthor(ctx, authorID, s.Now())
	if err != nil {
		return 0, err
	}
	s.Logger.Info("posts soft-deleted for author", zap.String("authorID", authorID.String()), zap.Int64("count", n))
	return n, nil
}

// DeletePost removes the post row and its images. Missing posts are a no-op.
func (s *PostService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	n, err := s.PostRepository.Delete(ctx, postID)
	if err != nil {
		return err
	}
	if n > 0 {
		s.Logger.Info("post deleted", zap.String("postID", postID.String()))
	}
	return nil
}

// ListByAuthor defaults to newest first; req.Sort overrides it.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uuid.UUID, req page.Request) (page.Page[*postEntity.Post], error) {
	return s.PostRepository.ListByAuthor(ctx, authorID, req)
}

func (s *PostService) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, req page.Request) (page.Page[*postEntity.Post], error) {
	return s.PostRepository.ListByAuthors(ctx, authorIDs, req)
}

func (s *PostService) ListAll(ctx context.Context, req page.Request) (page.Page[*postEntity.Post], error) {
	return s.PostRepository.ListAll(ctx, req)
}

func (s *PostService) CountActiveByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	return s.PostRepository.CountActiveByAuthor(ctx, authorID)
}

// FindInDateRange is inclusive on both ends.
func (s *PostService) FindInDateRange(ctx context.Context, start, end time.Time, req page.Request) (page.Page[*postEntity.Post], error) {
	if end.Before(start) {
		return page.Page[*postEntity.Post]{}, apperr.Validation("range end is before range start")
	}
	return s.PostRepository.FindInDateRange(ctx, start, end, req)
}

// AddImage attaches image metadata to an active post.
func (s *PostService) AddImage(ctx context.Context, postID uuid.UUID, url, fileName string, fileSize *int64) (*postEntity.Image, error) {
	if err := validateImage(url, fileName, fileSize); err != nil {
		return nil, err
	}
	if _, err := s.PostRepository.FindActiveByID(ctx, postID); err != nil {
		return nil, err
	}

	img, err := s.ImageRepository.Create(ctx, postEntity.NewImage(postID, url, fileName, fileSize, s.Now()))
	if err != nil {
		s.Logger.Error("failed to add image", zap.String("postID", postID.String()), zap.Error(err))
		return nil, err
	}
	s.Logger.Info("image added", zap.String("imageID", img.ID.String()), zap.String("postID", postID.String()))
	return img, nil
}

func (s *PostService) GetImage(ctx context.Context, imageID uuid.UUID) (*postEntity.Image, error) {
	return s.ImageRepository.FindByID(ctx, imageID)
}

// ListImages returns the images of an active post in upload order.
func (s *PostService) ListImages(ctx context.Context, postID uuid.UUID) ([]*postEntity.Image, error) {
	if _, err := s.PostRepository.FindActiveByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.ImageRepository.FindByPostID(ctx, postID)
}

func (s *PostService) CountImages(ctx context.Context, postID uuid.UUID) (int64, error) {
	return s.ImageRepository.CountByPostID(ctx, postID)
}

// RemoveImage is idempotent.
func (s *PostService) RemoveImage(ctx context.Context, imageID uuid.UUID) error {
	n, err := s.ImageRepository.Delete(ctx, imageID)
	if err != nil {
		return err
	}
	if n > 0 {
		s.Logger.Info("image removed", zap.String("imageID", imageID.String()))
	}
	return nil
}

// RemoveImages ignores unknown ids and reports the rows removed.
func (s *PostService) RemoveImages(ctx context.Context, imageIDs []uuid.UUID) (int64, error) {
	return s.ImageRepository.DeleteByIDs(ctx, imageIDs)
}

// PurgeDeleted hard-deletes up to limit posts soft-deleted before cutoff and
// returns how many were removed.
func (s *PostService) PurgeDeleted(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	ids, err := s.PostRepository.FindPurgeable(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}
	purged := 0
	for _, id := range ids {
		if err := s.DeletePost(ctx, id); err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}

func validateImage(url, fileName string, fileSize *int64) error {
	switch {
	case strings.TrimSpace(url) == "":
		return apperr.Validation("url is required")
	case utf8.RuneCountInString(url) > postEntity.MaxURLLength:
		return apperr.Validation(fmt.Sprintf("url must not exceed %d characters", postEntity.MaxURLLength))
	case strings.TrimSpace(fileName) == "":
		return apperr.Validation("file name is required")
	case utf8.RuneCountInString(fileName) > postEntity.MaxFileNameLength:
		return apperr.Validation(fmt.Sprintf("file name must not exceed %d characters", postEntity.MaxFileNameLength))
	case fileSize != nil && *fileSize < 0:
		return apperr.Validation("file size must not be negative")
	}
	return nil
}
