package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileOutput is the loyalty state plus account basics for presentation.
type ProfileOutput struct {
	User        *entity.User
	Progression entity.Progression
}

// UpdateProfileInput carries the editable account fields. Loyalty state is
// never edited directly; it only moves through completed orders.
type UpdateProfileInput struct {
	Username string
}

// ProfileUsecase exposes the signed-in user's profile and game library.
type ProfileUsecase interface {
	// GetProfile returns the account with its loyalty progression. The
	// progression is recomputed from total spend on every read.
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileOutput, error)

	// UpdateProfile changes the editable account fields and returns the
	// refreshed profile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileOutput, error)

	// GetLibrary returns the catalog entries the user owns.
	GetLibrary(ctx context.Context, userID uuid.UUID) ([]*entity.Game, error)
}
