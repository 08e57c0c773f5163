// Package model contains the GORM persistence models. They are exported so
// the GORM Gen tool in cmd/gen can consume them.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	Username  string    `gorm:"type:varchar(100);not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Role      string    `gorm:"type:varchar(20);not null;default:'customer'"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`

	Profile       *ProfileModel       `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshTokenModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ProfileModel mirrors the 'profiles' table. UserID references users.id (UUID).
// Level and progress are derived from total_spend but stored for cheap reads.
type ProfileModel struct {
	UserID     uuid.UUID         `gorm:"primaryKey"`
	TotalSpend int64             `gorm:"not null;default:0;check:total_spend >= 0"`
	Level      int               `gorm:"not null;default:1"`
	Progress   float64           `gorm:"not null;default:0"`
	OwnedGames []*OwnedGameModel `gorm:"foreignKey:UserID;references:UserID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// OwnedGameModel mirrors the 'owned_games' join table. Rows are only ever
// inserted; a completed purchase never leaves the library.
type OwnedGameModel struct {
	UserID    uuid.UUID `gorm:"primaryKey;type:uuid"`
	GameID    uuid.UUID `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OwnedGameModel) TableName() string {
	return "owned_games"
}

// RefreshTokenModel mirrors the 'refresh_tokens' table.
type RefreshTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:varchar(128);unique;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
