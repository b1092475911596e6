package message

import (
	"time"

	"github.com/gofrs/uuid"
)

// Message is immutable except for IsRead.
type Message struct {
	ID         uuid.UUID `gorm:"primary_key;type:char(36)" json:"id"`
	SenderID   uuid.UUID `gorm:"type:char(36);not null;index" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:char(36);not null;index" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
}

func New(senderID, receiverID uuid.UUID, content string, now time.Time) *Message {
	return &Message{
		ID:         uuid.Must(uuid.NewV4()),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		IsRead:     false,
		CreatedAt:  now,
	}
}
