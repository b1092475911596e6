package messageapp

import (
	"context"
	"strings"
	"time"

	"socialgraph/internal/core/apperr"
	messageEntity "socialgraph/internal/core/message"
	"socialgraph/internal/core/page"
	"socialgraph/internal/core/user"
	"socialgraph/internal/ports/cache"
	messagePort "socialgraph/internal/ports/message"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type MessageService struct {
	MessageRepository messagePort.MessageRepository
	Identity          userPort.IdentityLookup
	Counters          cache.Counter
	Logger            *zap.Logger
	Now               func() time.Time
}

func NewMessageService(
	repo messagePort.MessageRepository,
	identity userPort.IdentityLookup,
	counters cache.Counter,
	logger *zap.Logger,
) *MessageService {
	if counters == nil {
		counters = cache.Noop{}
	}
	return &MessageService{
		MessageRepository: repo,
		Identity:          identity,
		Counters:          counters,
		Logger:            logger,
		Now:               func() time.Time { return time.Now().UTC() },
	}
}

// Send stores an unread message. Messages to oneself are allowed.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*messageEntity.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("message content is required")
	}
	if err := userPort.EnsureExists(ctx, s.Identity, senderID, receiverID); err != nil {
		return nil, err
	}

	m, err := s.MessageRepository.Create(ctx, messageEntity.New(senderID, receiverID, content, s.Now()))
	if err != nil {
		s.Logger.Error("failed to store message", zap.String("senderID", senderID.String()), zap.Error(err))
		return nil, err
	}
	cache.Drop(ctx, s.Counters, s.Logger, cache.UnreadCountKey(receiverID))
	s.Logger.Info("message sent",
		zap.String("messageID", m.ID.String()),
		zap.String("senderID", senderID.String()),
		zap.String("receiverID", receiverID.String()))
	return m, nil
}

func (s *MessageService) Get(ctx context.Context, messageID uuid.UUID) (*messageEntity.Message, error) {
	return s.MessageRepository.FindByID(ctx, messageID)
}

func (s *MessageService) ListBySender(ctx context.Context, senderID uuid.UUID, req page.Request) (page.Page[*messageEntity.Message], error) {
	return s.MessageRepository.ListBySender(ctx, senderID, req)
}

func (s *MessageService) ListByReceiver(ctx context.Context, receiverID uuid.UUID, req page.Request) (page.Page[*messageEntity.Message], error) {
	return s.MessageRepository.ListByReceiver(ctx, receiverID, req)
}

// GetConversation returns messages exchanged in either direction, newest first.
// Swapping the arguments gives the same page.
func (s *MessageService) GetConversation(ctx context.Context, userA, userB uuid.UUID, req page.Request) (page.Page[*messageEntity.Message], error) {
	return s.MessageRepository.Conversation(ctx, userA, userB, req)
}

func (s *MessageService) GetConversationBetween(ctx context.Context, a, b user.Ref, req page.Request) (page.Page[*messageEntity.Message], error) {
	return s.GetConversation(ctx, a.ID, b.ID, req)
}

func (s *MessageService) CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error) {
	return cache.ReadThrough(ctx, s.Counters, s.Logger, cache.UnreadCountKey(receiverID), func() (int64, error) {
		return s.MessageRepository.CountUnread(ctx, receiverID)
	})
}

// MarkReadBySenderReceiver marks everything senderID sent to receiverID as read
// and returns how many messages changed. The reverse direction is untouched.
func (s *MessageService) MarkReadBySenderReceiver(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error) {
	n, err := s.MessageRepository.MarkReadBySenderReceiver(ctx, receiverID, senderID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		cache.Drop(ctx, s.Counters, s.Logger, cache.UnreadCountKey(receiverID))
	}
	return n, nil
}

// MarkReadByIDs ignores unknown ids. An empty list is a no-op.
func (s *MessageService) MarkReadByIDs(ctx context.Context, messageIDs []uuid.UUID) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}
	n, receivers, err := s.MessageRepository.MarkReadByIDs(ctx, messageIDs)
	if err != nil {
		return 0, err
	}
	keys := make([]string, 0, len(receivers))
	for _, r := range receivers {
		keys = append(keys, cache.UnreadCountKey(r))
	}
	cache.Drop(ctx, s.Counters, s.Logger, keys...)
	return n, nil
}

func (s *MessageService) ListAllUnread(ctx context.Context, receiverID uuid.UUID) ([]*messageEntity.Message, error) {
	return s.MessageRepository.ListAllUnread(ctx, receiverID)
}
