package impl

import (
	"context"
	"log/slog"
	"strings"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo    repository.UserRepository
	gameRepo    repository.GameRepository
	bracketSize int64
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	GameRepo repository.GameRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo:    params.UserRepo,
		gameRepo:    params.GameRepo,
		bracketSize: params.Config.Loyalty.BracketSize,
		logger:      params.Logger,
	}
}

// GetProfile returns the account with its loyalty progression. Level and
// progress are derived from total spend on every read, so a stored drifted
// value can never be served.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.ProfileOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	totalSpend := int64(0)
	if user.Profile != nil {
		totalSpend = user.Profile.TotalSpend
	}

	return &usecase.ProfileOutput{
		User:        user,
		Progression: entity.ProgressionForSpend(totalSpend, srv.bracketSize),
	}, nil
}

// UpdateProfile changes the editable account fields. Loyalty state stays
// untouched; only completed orders move it.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input usecase.UpdateProfileInput) (*usecase.ProfileOutput, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < 2 || len(username) > 64 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username must be between 2 and 64 characters")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	user.Username = username
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update account")
	}

	totalSpend := int64(0)
	if user.Profile != nil {
		totalSpend = user.Profile.TotalSpend
	}

	return &usecase.ProfileOutput{
		User:        user,
		Progression: entity.ProgressionForSpend(totalSpend, srv.bracketSize),
	}, nil
}

// GetLibrary returns the catalog entries the user owns. Delisted games
// drop out of the library view but stay granted.
func (srv *profileService) GetLibrary(ctx context.Context, userID uuid.UUID) ([]*entity.Game, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	if user.Profile == nil || len(user.Profile.OwnedGameIDs) == 0 {
		return []*entity.Game{}, nil
	}

	games, err := srv.gameRepo.FindByIDs(ctx, user.Profile.OwnedGameIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load library")
	}

	return games, nil
}
