package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// GameInput defines the data for creating or updating a catalog listing.
type GameInput struct {
	Title            string
	Description      string
	ShortDescription string
	Genre            string
	Price            int64
	AgeRating        int
	ImageURL         string
}

// CatalogUsecase defines catalog browsing and administration operations.
// Browsing is public; mutation is restricted to administrators at the
// delivery layer.
type CatalogUsecase interface {
	// ListGames returns the whole catalog, newest listings first.
	ListGames(ctx context.Context) ([]*entity.Game, error)

	// GetGame returns a single listing.
	GetGame(ctx context.Context, id uuid.UUID) (*entity.Game, error)

	// CreateGame lists a new item.
	CreateGame(ctx context.Context, input GameInput) (*entity.Game, error)

	// UpdateGame modifies an existing listing.
	UpdateGame(ctx context.Context, id uuid.UUID, input GameInput) (*entity.Game, error)

	// DeleteGame delists an item. Past order snapshots are unaffected.
	DeleteGame(ctx context.Context, id uuid.UUID) error
}
