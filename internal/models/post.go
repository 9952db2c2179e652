package models

import (
	"time"
)

type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BoardID    uint      `gorm:"not null;index" json:"board_id"`
	Board      Board     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	CategoryID *uint     `gorm:"index" json:"category_id"` // some boards have no categories
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Season     string    `gorm:"size:20" json:"season,omitempty"` // sports posts only

	// Denormalized counters, maintained by the counter service.
	LikesCount    int `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int `gorm:"not null;default:0" json:"comments_count"`

	IsCarousel  bool `gorm:"not null;default:false" json:"is_carousel"`
	IsAnonymous bool `gorm:"not null;default:false" json:"is_anonymous"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
