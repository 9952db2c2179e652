package models

import (
	"time"
)

// Point is one scoreboard entry: a team's score for an event on a date.
type Point struct {
	ID    uint      `gorm:"primaryKey" json:"id"`
	Team  string    `gorm:"not null" json:"team"`
	Event string    `gorm:"not null" json:"event"`
	Score int       `gorm:"not null" json:"score"`
	Date  time.Time `gorm:"not null;index" json:"date"`
}
