package impl

import (
	"context"
	"log/slog"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) (usecase.CatalogUsecase, *mockRepo.MockGameRepository) {
	games := mockRepo.NewMockGameRepository(t)
	svc := NewCatalogService(CatalogServiceParams{
		GameRepo: games,
		Logger:   slog.Default(),
	})

	return svc, games
}

func TestCatalogService_CreateGame(t *testing.T) {
	svc, games := newCatalogService(t)
	ctx := context.Background()

	games.On("Create", ctx, mock.AnythingOfType("*entity.Game")).Return(nil)

	game, err := svc.CreateGame(ctx, usecase.GameInput{
		Title:     "  Mystic Odyssey ",
		Genre:     "RPG",
		Price:     499,
		AgeRating: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mystic Odyssey", game.Title)
}

func TestCatalogService_CreateGame_Validation(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	testCases := []struct {
		name  string
		input usecase.GameInput
	}{
		{"missing title", usecase.GameInput{Price: 499}},
		{"zero price", usecase.GameInput{Title: "Free Game", Price: 0}},
		{"negative price", usecase.GameInput{Title: "Refund Sim", Price: -1}},
		{"negative age rating", usecase.GameInput{Title: "Game", Price: 10, AgeRating: -3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateGame(ctx, tc.input)
			require.Error(t, err)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
		})
	}
}

func TestCatalogService_GetGame_NotFound(t *testing.T) {
	svc, games := newCatalogService(t)
	ctx := context.Background()
	id := uuid.New()

	games.On("FindByID", ctx, id).Return(nil, repository.ErrGameNotFound)

	_, err := svc.GetGame(ctx, id)
	assert.ErrorIs(t, err, domainerrors.ErrGameNotFound)
}

func TestCatalogService_DeleteGame_NotFound(t *testing.T) {
	svc, games := newCatalogService(t)
	ctx := context.Background()
	id := uuid.New()

	games.On("Delete", ctx, id).Return(repository.ErrGameNotFound)

	assert.ErrorIs(t, svc.DeleteGame(ctx, id), domainerrors.ErrGameNotFound)
}
