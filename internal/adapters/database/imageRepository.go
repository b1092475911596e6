package database

import (
	"context"
	"errors"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type ImageRepositoryDatabase struct {
	db *gorm.DB
}

func NewImageRepositoryDatabase(db *gorm.DB) *ImageRepositoryDatabase {
	return &ImageRepositoryDatabase{db: db}
}

func (repo *ImageRepositoryDatabase) Create(ctx context.Context, img *post.Image) (*post.Image, error) {
	if err := repo.db.WithContext(ctx).Create(img).Error; err != nil {
		return nil, translate(err, nil)
	}
	return img, nil
}

// visible restricts image reads to images of active posts.
func (repo *ImageRepositoryDatabase) visible(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Model(&post.Image{}).
		Joins("JOIN posts ON posts.id = images.post_id AND posts.is_deleted = ?", false)
}

func (repo *ImageRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Image, error) {
	var img post.Image
	if err := repo.visible(ctx).Where("images.id = ?", id).First(&img).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Image", id)
		}
		return nil, apperr.Internal(err)
	}
	return &img, nil
}

func (repo *ImageRepositoryDatabase) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*post.Image, error) {
	images := []*post.Image{}
	if err := repo.visible(ctx).
		Where("images.post_id = ?", postID).
		Order("images.upload_date ASC, images.id ASC").
		Find(&images).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return images, nil
}

func (repo *ImageRepositoryDatabase) CountByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	if err := repo.visible(ctx).Where("images.post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

func (repo *ImageRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&post.Image{})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByIDs ignores unknown ids and reports only rows removed.
func (repo *ImageRepositoryDatabase) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := repo.db.WithContext(ctx).Where("id IN ?", ids).Delete(&post.Image{})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}
	return res.RowsAffected, nil
}
