package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Total     int64     `gorm:"not null;check:total > 0"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	Items     []*OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Title and unit price are
// snapshotted at purchase time and never updated afterwards.
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	GameID    uuid.UUID `gorm:"type:uuid;not null"`
	Title     string    `gorm:"type:varchar(200);not null"`
	UnitPrice int64     `gorm:"not null"`
	Quantity  int       `gorm:"not null;check:quantity > 0"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
