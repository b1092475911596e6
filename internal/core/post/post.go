package post

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	MaxTitleLength    = 255
	MaxURLLength      = 500
	MaxFileNameLength = 255
)

// Post rows are never removed by SoftDelete; IsDeleted hides them from every read.
type Post struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)" json:"id"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `gorm:"not null;default:false" json:"-"`
	Images    []Image   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"images"`
}

func New(authorID uuid.UUID, title, content string, now time.Time) *Post {
	return &Post{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    authorID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
		IsDeleted: false,
		Images:    []Image{},
	}
}

// Image is owned by exactly one post.
type Image struct {
	ID         uuid.UUID `gorm:"primary_key;type:char(36)" json:"id"`
	PostID     uuid.UUID `gorm:"type:char(36);not null;index" json:"post_id"`
	URL        string    `gorm:"type:varchar(500);not null" json:"url"`
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileSize   *int64    `json:"file_size,omitempty"`
	UploadDate time.Time `gorm:"not null" json:"upload_date"`
}

func NewImage(postID uuid.UUID, url, fileName string, fileSize *int64, now time.Time) *Image {
	return &Image{
		ID:         uuid.Must(uuid.NewV4()),
		PostID:     postID,
		URL:        url,
		FileName:   fileName,
		FileSize:   fileSize,
		UploadDate: now,
	}
}
