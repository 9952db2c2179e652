package models

import (
	"time"
)

type File struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"` // original filename
	Mime      string    `gorm:"size:100" json:"mime"`
	Size      int64     `json:"size"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Join tables tying an uploaded file to its owner entity.

type UserFile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	FileID uint `gorm:"not null;index" json:"file_id"`
}

type PostFile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;index" json:"post_id"`
	FileID uint `gorm:"not null;index" json:"file_id"`
}

type CommentFile struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CommentID uint `gorm:"not null;index" json:"comment_id"`
	FileID    uint `gorm:"not null;index" json:"file_id"`
}
