package database

import (
	"context"
	"errors"
	"strings"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/page"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// UserRepositoryDatabase is the gorm implementation of the identity store.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

var userSort = sortColumns{
	"createdAt": "users.created_at",
	"username":  "users.username",
	"email":     "users.email",
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, translate(err, func() error {
			return apperr.DuplicatePair("User", u.Username, u.Email)
		})
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User", id)
		}
		return nil, apperr.Internal(err)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := firstOrNil[user.User](repo.db.WithContext(ctx).Where("username = ?", username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User", username)
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := firstOrNil[user.User](repo.db.WithContext(ctx).Where("email = ?", email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User", email)
	}
	return u, nil
}

// FindByUsernameOrEmail returns nil, nil when neither is taken.
func (repo *UserRepositoryDatabase) FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error) {
	return firstOrNil[user.User](repo.db.WithContext(ctx).Where("username = ? OR email = ?", username, email))
}

func (repo *UserRepositoryDatabase) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

// likeEscaper makes search keywords match literally, with '!' as the ESCAPE character.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (repo *UserRepositoryDatabase) Search(ctx context.Context, keyword string, req page.Request) (page.Page[*user.User], error) {
	order, err := userSort.orderBy(req, "users.username ASC", "users.id ASC")
	if err != nil {
		return page.Page[*user.User]{}, err
	}
	like := "%" + likeEscaper.Replace(strings.TrimSpace(keyword)) + "%"
	query := repo.db.WithContext(ctx).Model(&user.User{}).
		Where("username LIKE ? ESCAPE '!' OR email LIKE ? ESCAPE '!'", like, like)
	return paginate[*user.User](query, req, order)
}

func (repo *UserRepositoryDatabase) Deactivate(ctx context.Context, id uuid.UUID) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}
	return res.RowsAffected, nil
}
