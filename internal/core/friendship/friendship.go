package friendship

import (
	"time"

	"github.com/gofrs/uuid"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Friendship is a directed request edge. Unique per (requester, addressee); the
// reverse direction is a separate row.
type Friendship struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)" json:"id"`
	RequesterID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uk_friendships_pair,priority:1" json:"requester_id"`
	AddresseeID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uk_friendships_pair,priority:2;index" json:"addressee_id"`
	Status      Status    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func New(requesterID, addresseeID uuid.UUID, now time.Time) *Friendship {
	return &Friendship{
		ID:          uuid.Must(uuid.NewV4()),
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
