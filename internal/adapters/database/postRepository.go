package database

import (
	"context"
	"errors"
	"time"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/page"
	"socialgraph/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// PostRepositoryDatabase stores posts. Every read path goes through active(),
// which is the soft-delete filter.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

var postSort = sortColumns{
	"createdAt": "posts.created_at",
	"updatedAt": "posts.updated_at",
	"title":     "posts.title",
}

const postNewestFirst = "posts.created_at DESC"
const postTie = "posts.id DESC"

func (repo *PostRepositoryDatabase) active(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Model(&post.Post{}).Where("posts.is_deleted = ?", false)
}

func withImages(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("images.upload_date ASC, images.id ASC")
	})
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, translate(err, nil)
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindActiveByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := withImages(repo.active(ctx)).Where("posts.id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post", id)
		}
		return nil, apperr.Internal(err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&post.Post{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": at})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}
	return res.RowsAffected, nil
}

// SoftDeleteAllByAuthor is a single UPDATE, so it hides all or none.
func (repo *PostRepositoryDatabase) SoftDeleteAllByAuthor(ctx context.Context, authorID uuid.UUID, at time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&post.Post{}).
		Where("user_id = ? AND is_deleted = ?", authorID, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": at})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}
	return res.RowsAffected, nil
}

func (repo *PostRepositoryDatabase) ListByAuthor(ctx context.Context, authorID uuid.UUID, req page.Request) (page.Page[*post.Post], error) {
	return repo.page(repo.active(ctx).Where("posts.user_id = ?", authorID), req)
}

func (repo *PostRepositoryDatabase) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, req page.Request) (page.Page[*post.Post], error) {
	if len(authorIDs) == 0 {
		if err := req.Validate(); err != nil {
			return page.Page[*post.Post]{}, err
		}
		return page.Empty[*post.Post](req), nil
	}
	return repo.page(repo.active(ctx).Where("posts.user_id IN ?", authorIDs), req)
}

func (repo *PostRepositoryDatabase) ListAll(ctx context.Context, req page.Request) (page.Page[*post.Post], error) {
	return repo.page(repo.active(ctx), req)
}

func (repo *PostRepositoryDatabase) CountActiveByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	if err := repo.active(ctx).Where("posts.user_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

// FindInDateRange is inclusive on both ends.
func (repo *PostRepositoryDatabase) FindInDateRange(ctx context.Context, start, end time.Time, req page.Request) (page.Page[*post.Post], error) {
	return repo.page(repo.active(ctx).Where("posts.created_at >= ? AND posts.created_at <= ?", start, end), req)
}

func (repo *PostRepositoryDatabase) page(query *gorm.DB, req page.Request) (page.Page[*post.Post], error) {
	order, err := postSort.orderBy(req, postNewestFirst, postTie)
	if err != nil {
		return page.Page[*post.Post]{}, err
	}
	return paginate[*post.Post](query, req, order, withImages)
}

// Delete is the hard delete: images first, then the post, in one transaction.
func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var affected int64
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&post.Image{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&post.Post{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return affected, nil
}

// FindPurgeable returns ids of posts soft-deleted before the cutoff.
func (repo *PostRepositoryDatabase) FindPurgeable(ctx context.Context, deletedBefore time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := repo.db.WithContext(ctx).Model(&post.Post{}).
		Where("is_deleted = ? AND updated_at < ?", true, deletedBefore).
		Order("updated_at ASC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return ids, nil
}
