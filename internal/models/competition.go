package models

import (
	"time"
)

type CompetitionType string

const (
	CompetitionIndividual CompetitionType = "individual"
	CompetitionTeam       CompetitionType = "team"
)

type Competition struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	BoardID    uint            `gorm:"not null" json:"board_id"`
	CategoryID uint            `gorm:"not null;index" json:"category_id"`
	Name       string          `gorm:"not null" json:"name"`
	Date       time.Time       `gorm:"not null;index" json:"date"`
	Type       CompetitionType `gorm:"size:20;not null" json:"type"`
	Award      string          `json:"award,omitempty"`
	Result     string          `json:"result,omitempty"`
	Competitors []Competitor   `gorm:"foreignKey:CompetitionID" json:"competitors"`
}

type Competitor struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CompetitionID uint        `gorm:"not null;index" json:"competition_id"`
	Competition   Competition `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name          string      `json:"name"`
	Score         int         `json:"score"`
}
