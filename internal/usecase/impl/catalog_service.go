package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	gameRepo repository.GameRepository
	logger   *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	GameRepo repository.GameRepository
	Logger   *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		gameRepo: params.GameRepo,
		logger:   params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListGames returns the whole catalog, newest listings first.
func (srv *catalogService) ListGames(ctx context.Context) ([]*entity.Game, error) {
	games, err := srv.gameRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list catalog")
	}

	return games, nil
}

// GetGame returns a single listing.
func (srv *catalogService) GetGame(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	game, err := srv.gameRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, domainerrors.ErrGameNotFound
		}

		return nil, errors.Wrap(err, "failed to load game")
	}

	return game, nil
}

// CreateGame lists a new item.
func (srv *catalogService) CreateGame(ctx context.Context, input usecase.GameInput) (*entity.Game, error) {
	if err := validateGameInput(input); err != nil {
		return nil, err
	}

	game := gameFromInput(input)
	if err := srv.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Game listed",
		slog.Any("gameID", game.ID),
		slog.String("title", game.Title))

	return game, nil
}

// UpdateGame modifies an existing listing.
func (srv *catalogService) UpdateGame(ctx context.Context, id uuid.UUID, input usecase.GameInput) (*entity.Game, error) {
	if err := validateGameInput(input); err != nil {
		return nil, err
	}

	game := gameFromInput(input)
	game.ID = id

	if err := srv.gameRepo.Update(ctx, game); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, domainerrors.ErrGameNotFound
		}

		return nil, err
	}

	return srv.GetGame(ctx, id)
}

// DeleteGame delists an item. Past order snapshots are unaffected because
// they carry their own copies of title and price.
func (srv *catalogService) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if err := srv.gameRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return domainerrors.ErrGameNotFound
		}

		return err
	}

	srv.log(ctx).Info("Game delisted", slog.Any("gameID", id))

	return nil
}

func validateGameInput(input usecase.GameInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("title is required")
	}
	if input.Price <= 0 {
		return domainerrors.ErrValidationFailed.WithDetails("price must be positive")
	}
	if input.AgeRating < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("age rating cannot be negative")
	}

	return nil
}

func gameFromInput(input usecase.GameInput) *entity.Game {
	return &entity.Game{
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Genre:            input.Genre,
		Price:            input.Price,
		AgeRating:        input.AgeRating,
		ImageURL:         input.ImageURL,
	}
}
