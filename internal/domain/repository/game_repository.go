package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrGameNotFound is returned when a catalog item does not exist.
var ErrGameNotFound = errors.New("game not found")

// GameRepository defines persistence operations for the catalog.
type GameRepository interface {
	// List returns all catalog items, newest listings first.
	List(ctx context.Context) ([]*entity.Game, error)

	// FindByID retrieves a single catalog item.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error)

	// FindByIDs retrieves the catalog items for the given ids, preserving
	// only those that exist.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Game, error)

	// Create lists a new catalog item. Admin only.
	Create(ctx context.Context, game *entity.Game) error

	// Update modifies an existing listing. Admin only.
	Update(ctx context.Context, game *entity.Game) error

	// Delete removes a listing. Admin only.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count reports the number of listed items; used by the startup seed.
	Count(ctx context.Context) (int64, error)
}
