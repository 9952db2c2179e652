package models

type Category struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	BoardID uint   `gorm:"not null;index" json:"board_id"`
	Board   Board  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name    string `gorm:"not null" json:"name"`
}
