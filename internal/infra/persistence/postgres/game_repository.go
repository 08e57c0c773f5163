package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// gameRepository implements the domain.GameRepository interface using GORM.
type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository is the constructor for gameRepository.
func NewGameRepository(db *gorm.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

// List returns every listed item, newest listings first.
func (repo *gameRepository) List(ctx context.Context) ([]*entity.Game, error) {
	var gameMs []*model.GameModel
	err := repo.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Find(&gameMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list games")
	}

	games := make([]*entity.Game, 0, len(gameMs))
	for _, gameM := range gameMs {
		games = append(games, toGameDomain(gameM))
	}

	return games, nil
}

// FindByID retrieves a single catalog item.
func (repo *gameRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	var gameM model.GameModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&gameM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGameNotFound
		}

		return nil, errors.Wrap(err, "failed to find game by id")
	}

	return toGameDomain(&gameM), nil
}

// FindByIDs retrieves catalog items for the given ids. Missing ids are
// silently dropped; callers compare lengths when they need strictness.
func (repo *gameRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var gameMs []*model.GameModel
	err := repo.db.WithContext(ctx).
		Where("id IN ? AND deleted_at IS NULL", ids).
		Find(&gameMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find games by ids")
	}

	games := make([]*entity.Game, 0, len(gameMs))
	for _, gameM := range gameMs {
		games = append(games, toGameDomain(gameM))
	}

	return games, nil
}

// Create lists a new catalog item.
func (repo *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	gameM := fromGameDomain(game)

	if err := repo.db.WithContext(ctx).Create(gameM).Error; err != nil {
		if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid game listing")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create game")
	}

	game.ID = gameM.ID
	game.CreatedAt = gameM.CreatedAt
	game.UpdatedAt = gameM.UpdatedAt

	return nil
}

// Update modifies an existing listing.
func (repo *gameRepository) Update(ctx context.Context, game *entity.Game) error {
	result := repo.db.WithContext(ctx).
		Model(&model.GameModel{}).
		Where("id = ? AND deleted_at IS NULL", game.ID).
		Updates(map[string]any{
			"title":             game.Title,
			"description":       game.Description,
			"short_description": game.ShortDescription,
			"genre":             game.Genre,
			"price":             game.Price,
			"age_rating":        game.AgeRating,
			"image_url":         game.ImageURL,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid game listing")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update game")
	}
	if result.RowsAffected == 0 {
		return repository.ErrGameNotFound
	}

	return nil
}

// Delete soft-deletes a listing. Order line snapshots keep the title and
// price, so history survives delisting.
func (repo *gameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.GameModel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", gorm.Expr("NOW()"))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete game")
	}
	if result.RowsAffected == 0 {
		return repository.ErrGameNotFound
	}

	return nil
}

// Count reports the number of listed items.
func (repo *gameRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.GameModel{}).
		Where("deleted_at IS NULL").
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count games")
	}

	return count, nil
}

// toGameDomain converts a GORM GameModel to a domain Game entity.
func toGameDomain(data *model.GameModel) *entity.Game {
	if data == nil {
		return nil
	}

	return &entity.Game{
		ID:               data.ID,
		Title:            data.Title,
		Description:      data.Description,
		ShortDescription: data.ShortDescription,
		Genre:            data.Genre,
		Price:            data.Price,
		AgeRating:        data.AgeRating,
		ImageURL:         data.ImageURL,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromGameDomain converts a domain Game entity to a GORM GameModel.
func fromGameDomain(data *entity.Game) *model.GameModel {
	if data == nil {
		return nil
	}

	return &model.GameModel{
		ID:               data.ID,
		Title:            data.Title,
		Description:      data.Description,
		ShortDescription: data.ShortDescription,
		Genre:            data.Genre,
		Price:            data.Price,
		AgeRating:        data.AgeRating,
		ImageURL:         data.ImageURL,
	}
}
