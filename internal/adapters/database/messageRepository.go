package database

import (
	"context"
	"errors"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/message"
	"socialgraph/internal/core/page"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryDatabase struct {
	db *gorm.DB
}

func NewMessageRepositoryDatabase(db *gorm.DB) *MessageRepositoryDatabase {
	return &MessageRepositoryDatabase{db: db}
}

const messageNewestFirst = "created_at DESC, id DESC"

func (repo *MessageRepositoryDatabase) Create(ctx context.Context, m *message.Message) (*message.Message, error) {
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translate(err, nil)
	}
	return m, nil
}

func (repo *MessageRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	var m message.Message
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Message", id)
		}
		return nil, apperr.Internal(err)
	}
	return &m, nil
}

func (repo *MessageRepositoryDatabase) ListBySender(ctx context.Context, senderID uuid.UUID, req page.Request) (page.Page[*message.Message], error) {
	query := repo.db.WithContext(ctx).Model(&message.Message{}).Where("sender_id = ?", senderID)
	return paginate[*message.Message](query, req, messageNewestFirst)
}

func (repo *MessageRepositoryDatabase) ListByReceiver(ctx context.Context, receiverID uuid.UUID, req page.Request) (page.Page[*message.Message], error) {
	query := repo.db.WithContext(ctx).Model(&message.Message{}).Where("receiver_id = ?", receiverID)
	return paginate[*message.Message](query, req, messageNewestFirst)
}

// Conversation is symmetric in its arguments.
func (repo *MessageRepositoryDatabase) Conversation(ctx context.Context, userA, userB uuid.UUID, req page.Request) (page.Page[*message.Message], error) {
	query := repo.db.WithContext(ctx).Model(&message.Message{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userA, userB, userB, userA)
	return paginate[*message.Message](query, req, messageNewestFirst)
}

func (repo *MessageRepositoryDatabase) CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&message.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

// MarkReadBySenderReceiver only touches messages from senderID to receiverID
// that are still unread, so RowsAffected is the number that changed.
func (repo *MessageRepositoryDatabase) MarkReadBySenderReceiver(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&message.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}
	return res.RowsAffected, nil
}

func (repo *MessageRepositoryDatabase) MarkReadByIDs(ctx context.Context, ids []uuid.UUID) (int64, []uuid.UUID, error) {
	if len(ids) == 0 {
		return 0, nil, nil
	}

	var (
		affected  int64
		receivers []uuid.UUID
	)
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&message.Message{}).
			Where("id IN ? AND is_read = ?", ids, false).
			Distinct().
			Pluck("receiver_id", &receivers).Error; err != nil {
			return err
		}
		res := tx.Model(&message.Message{}).
			Where("id IN ? AND is_read = ?", ids, false).
			Update("is_read", true)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, nil, apperr.Internal(err)
	}
	return affected, receivers, nil
}

func (repo *MessageRepositoryDatabase) ListAllUnread(ctx context.Context, receiverID uuid.UUID) ([]*message.Message, error) {
	messages := []*message.Message{}
	if err := repo.db.WithContext(ctx).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Order(messageNewestFirst).
		Find(&messages).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return messages, nil
}
