package database

import (
	"context"
	"errors"
	"time"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/friendship"
	"socialgraph/internal/core/page"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// FriendshipRepositoryDatabase stores friend requests in the friendships table.
type FriendshipRepositoryDatabase struct {
	db *gorm.DB
}

func NewFriendshipRepositoryDatabase(db *gorm.DB) *FriendshipRepositoryDatabase {
	return &FriendshipRepositoryDatabase{db: db}
}

var friendshipSort = sortColumns{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (repo *FriendshipRepositoryDatabase) Create(ctx context.Context, f *friendship.Friendship) (*friendship.Friendship, error) {
	if err := repo.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, translate(err, func() error {
			return apperr.DuplicatePair("Friendship", f.RequesterID, f.AddresseeID)
		})
	}
	return f, nil
}

func (repo *FriendshipRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*friendship.Friendship, error) {
	var f friendship.Friendship
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Friendship", id)
		}
		return nil, apperr.Internal(err)
	}
	return &f, nil
}

func (repo *FriendshipRepositoryDatabase) FindByPair(ctx context.Context, requesterID, addresseeID uuid.UUID) (*friendship.Friendship, error) {
	return firstOrNil[friendship.Friendship](repo.db.WithContext(ctx).
		Where("requester_id = ? AND addressee_id = ?", requesterID, addresseeID))
}

func (repo *FriendshipRepositoryDatabase) UpdateStatus(ctx context.Context, id uuid.UUID, status friendship.Status, at time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&friendship.Friendship{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": at})
	if res.Error != nil {
		return 0, translate(res.Error, nil)
	}
	return res.RowsAffected, nil
}

func (repo *FriendshipRepositoryDatabase) ListByRequesterAndStatus(ctx context.Context, requesterID uuid.UUID, status friendship.Status) ([]*friendship.Friendship, error) {
	return repo.list(ctx, "requester_id = ? AND status = ?", requesterID, status)
}

func (repo *FriendshipRepositoryDatabase) ListByAddresseeAndStatus(ctx context.Context, addresseeID uuid.UUID, status friendship.Status) ([]*friendship.Friendship, error) {
	return repo.list(ctx, "addressee_id = ? AND status = ?", addresseeID, status)
}

func (repo *FriendshipRepositoryDatabase) list(ctx context.Context, cond string, userID uuid.UUID, status friendship.Status) ([]*friendship.Friendship, error) {
	out := []*friendship.Friendship{}
	if err := repo.db.WithContext(ctx).
		Where(cond, userID, status).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (repo *FriendshipRepositoryDatabase) PageByRequesterAndStatus(ctx context.Context, requesterID uuid.UUID, status friendship.Status, req page.Request) (page.Page[*friendship.Friendship], error) {
	return repo.page(ctx, "requester_id = ? AND status = ?", requesterID, status, req)
}

func (repo *FriendshipRepositoryDatabase) PageByAddresseeAndStatus(ctx context.Context, addresseeID uuid.UUID, status friendship.Status, req page.Request) (page.Page[*friendship.Friendship], error) {
	return repo.page(ctx, "addressee_id = ? AND status = ?", addresseeID, status, req)
}

func (repo *FriendshipRepositoryDatabase) page(ctx context.Context, cond string, userID uuid.UUID, status friendship.Status, req page.Request) (page.Page[*friendship.Friendship], error) {
	order, err := friendshipSort.orderBy(req, "created_at ASC", "id ASC")
	if err != nil {
		return page.Page[*friendship.Friendship]{}, err
	}
	query := repo.db.WithContext(ctx).Model(&friendship.Friendship{}).Where(cond, userID, status)
	return paginate[*friendship.Friendship](query, req, order)
}

// AreFriends is symmetric: an ACCEPTED row in either direction counts.
func (repo *FriendshipRepositoryDatabase) AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&friendship.Friendship{}).
		Where("((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)) AND status = ?",
			userA, userB, userB, userA, friendship.StatusAccepted).
		Count(&count).Error; err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

func (repo *FriendshipRepositoryDatabase) PendingRequesters(ctx context.Context, addresseeID uuid.UUID) ([]user.Ref, error) {
	var users []*user.User
	if err := repo.db.WithContext(ctx).Model(&user.User{}).
		Joins("JOIN friendships f ON f.requester_id = users.id").
		Where("f.addressee_id = ? AND f.status = ?", addresseeID, friendship.StatusPending).
		Order("f.created_at ASC, users.id ASC").
		Find(&users).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return refs(users), nil
}

// Friends returns the other side of every ACCEPTED row touching userID.
func (repo *FriendshipRepositoryDatabase) Friends(ctx context.Context, userID uuid.UUID) ([]user.Ref, error) {
	var users []*user.User
	if err := repo.db.WithContext(ctx).Model(&user.User{}).
		Where("users.id <> ?", userID).
		Where("users.id IN (?) OR users.id IN (?)",
			repo.db.Model(&friendship.Friendship{}).Select("addressee_id").
				Where("requester_id = ? AND status = ?", userID, friendship.StatusAccepted),
			repo.db.Model(&friendship.Friendship{}).Select("requester_id").
				Where("addressee_id = ? AND status = ?", userID, friendship.StatusAccepted),
		).
		Order("users.username ASC").
		Find(&users).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return refs(users), nil
}

// DeleteBetween removes rows in both directions; zero rows is not an error.
func (repo *FriendshipRepositoryDatabase) DeleteBetween(ctx context.Context, userA, userB uuid.UUID) (int64, error) {
	res := repo.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userA, userB, userB, userA).
		Delete(&friendship.Friendship{})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}
	return res.RowsAffected, nil
}

func refs(users []*user.User) []user.Ref {
	out := make([]user.Ref, 0, len(users))
	for _, u := range users {
		out = append(out, u.Ref())
	}
	return out
}
