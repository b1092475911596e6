package database

import (
	"socialgraph/internal/core/friendship"
	"socialgraph/internal/core/message"
	"socialgraph/internal/core/post"
	"socialgraph/internal/core/subscription"
	"socialgraph/internal/core/user"

	"gorm.io/gorm"
)

// Migrate creates or updates users plus the five core relations.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&friendship.Friendship{},
		&subscription.Subscription{},
		&post.Post{},
		&post.Image{},
		&message.Message{},
	)
}
