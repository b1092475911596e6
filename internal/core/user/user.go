package user

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"primary_key;type:char(36)"`
	Username     string    `gorm:"type:varchar(50);not null;uniqueIndex:uk_users_username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uk_users_email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// New returns an active user with a fresh id.
func New(username, email, passwordHash string) *User {
	return &User{
		ID:           uuid.Must(uuid.NewV4()),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
}

// Ref is the read-only view of an identity that other components consume.
type Ref struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Active   bool      `json:"active"`
}

func (u *User) Ref() Ref {
	return Ref{ID: u.ID, Username: u.Username, Email: u.Email, Active: u.IsActive}
}
