package entity

import (
	"time"

	"github.com/google/uuid"
)

// Game is a purchasable catalog item. Listings are immutable from the
// storefront's point of view; only administrators create or update them.
// Price is in whole units of the configured currency.
type Game struct {
	ID               uuid.UUID
	Title            string
	Description      string
	ShortDescription string
	Genre            string
	Price            int64
	AgeRating        int
	ImageURL         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
