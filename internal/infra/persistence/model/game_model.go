package model

import (
	"time"

	"github.com/google/uuid"
)

// GameModel mirrors the 'games' table. Price is in integer minor units.
type GameModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title            string    `gorm:"type:varchar(200);not null"`
	Description      string    `gorm:"type:text"`
	ShortDescription string    `gorm:"type:varchar(500)"`
	Genre            string    `gorm:"type:varchar(50);not null;index"`
	Price            int64     `gorm:"not null;check:price > 0"`
	AgeRating        int       `gorm:"not null;default:0;check:age_rating >= 0"`
	ImageURL         string    `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (GameModel) TableName() string {
	return "games"
}
