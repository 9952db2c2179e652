package models

import (
	"time"
)

// Like references exactly one of a post or a comment, never both.
// The two partial unique pairs enforce one like per user per target;
// Postgres treats NULLs as distinct, so a post like and a comment like
// by the same user never collide across pairs.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_like_user_post;uniqueIndex:idx_like_user_comment" json:"user_id"`
	PostID    *uint     `gorm:"uniqueIndex:idx_like_user_post" json:"post_id"`
	CommentID *uint     `gorm:"uniqueIndex:idx_like_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}
