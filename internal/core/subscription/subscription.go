package subscription

import (
	"time"

	"github.com/gofrs/uuid"
)

// Subscription is a directed follow edge from FollowerID to FollowingID.
type Subscription struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)" json:"id"`
	FollowerID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uk_subscriptions_pair,priority:1" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uk_subscriptions_pair,priority:2;index" json:"following_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func New(followerID, followingID uuid.UUID, now time.Time) *Subscription {
	return &Subscription{
		ID:          uuid.Must(uuid.NewV4()),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   now,
	}
}
