package message

import (
	"context"

	"socialgraph/internal/core/message"
	"socialgraph/internal/core/page"

	"github.com/gofrs/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) (*message.Message, error)
	FindByID(ctx context.Context, id uuid.UUID) (*message.Message, error)
	ListBySender(ctx context.Context, senderID uuid.UUID, req page.Request) (page.Page[*message.Message], error)
	ListByReceiver(ctx context.Context, receiverID uuid.UUID, req page.Request) (page.Page[*message.Message], error)
	Conversation(ctx context.Context, userA, userB uuid.UUID, req page.Request) (page.Page[*message.Message], error)
	CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error)
	MarkReadBySenderReceiver(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error)
	// MarkReadByIDs returns the rows changed and the receivers whose unread count moved.
	MarkReadByIDs(ctx context.Context, ids []uuid.UUID) (int64, []uuid.UUID, error)
	ListAllUnread(ctx context.Context, receiverID uuid.UUID) ([]*message.Message, error)
}

type UnreadCountDTO struct {
	UserID string `json:"user_id"`
	Unread int64  `json:"unread"`
}
