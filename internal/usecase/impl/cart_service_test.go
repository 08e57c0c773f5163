package impl

import (
	"context"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartService(t *testing.T) (usecase.CartUsecase, *mockRepo.MockGameRepository, *mockRepo.InMemoryCartStore) {
	games := mockRepo.NewMockGameRepository(t)
	carts := mockRepo.NewInMemoryCartStore()

	cfg := &config.Config{}
	cfg.Loyalty = config.LoyaltyConfig{BracketSize: 1000, DiscountPercent: 5, TaxPercent: 21}

	svc := NewCartService(CartServiceParams{
		Carts:    carts,
		GameRepo: games,
		Config:   cfg,
		Logger:   slog.Default(),
	})

	return svc, games, carts
}

func TestCartService_AddMergesLines(t *testing.T) {
	svc, games, _ := newCartService(t)
	ctx := context.Background()
	game := &entity.Game{ID: uuid.New(), Title: "Tactical Force", Price: 399}

	games.On("FindByID", ctx, game.ID).Return(game, nil)

	_, err := svc.Add(ctx, "session", game.ID, false)
	require.NoError(t, err)

	out, err := svc.Add(ctx, "session", game.ID, false)
	require.NoError(t, err)

	require.Len(t, out.Lines, 1)
	assert.Equal(t, 2, out.Lines[0].Quantity)
	assert.Equal(t, int64(798), out.Totals.Subtotal)
}

func TestCartService_AddUnknownGame(t *testing.T) {
	svc, games, _ := newCartService(t)
	ctx := context.Background()
	id := uuid.New()

	games.On("FindByID", ctx, id).Return(nil, repository.ErrGameNotFound)

	_, err := svc.Add(ctx, "session", id, false)
	assert.ErrorIs(t, err, domainerrors.ErrGameNotFound)
}

func TestCartService_TotalsDependOnAuthentication(t *testing.T) {
	svc, games, _ := newCartService(t)
	ctx := context.Background()
	game := &entity.Game{ID: uuid.New(), Title: "Tactical Force", Price: 399}

	games.On("FindByID", ctx, game.ID).Return(game, nil)

	_, err := svc.Add(ctx, "session", game.ID, false)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "session", game.ID, false)
	require.NoError(t, err)

	anonymous, err := svc.View(ctx, "session", false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), anonymous.Totals.Discount)
	assert.Equal(t, int64(168), anonymous.Totals.Tax)
	assert.Equal(t, int64(966), anonymous.Totals.Total)

	member, err := svc.View(ctx, "session", true)
	require.NoError(t, err)
	assert.Equal(t, int64(40), member.Totals.Discount)
	assert.Equal(t, int64(159), member.Totals.Tax)
	assert.Equal(t, int64(917), member.Totals.Total)
}

func TestCartService_UpdateQuantityZeroRemoves(t *testing.T) {
	svc, games, _ := newCartService(t)
	ctx := context.Background()
	game := &entity.Game{ID: uuid.New(), Title: "Farm Life", Price: 199}

	games.On("FindByID", ctx, game.ID).Return(game, nil)

	_, err := svc.Add(ctx, "session", game.ID, false)
	require.NoError(t, err)

	out, err := svc.UpdateQuantity(ctx, "session", game.ID, 0, false)
	require.NoError(t, err)
	assert.Empty(t, out.Lines)
	assert.Zero(t, out.Totals.Subtotal)
}

func TestCartService_RemoveAbsentGameIsNoOp(t *testing.T) {
	svc, _, _ := newCartService(t)
	ctx := context.Background()

	out, err := svc.Remove(ctx, "session", uuid.New(), false)
	require.NoError(t, err)
	assert.Empty(t, out.Lines)
}

func TestCartService_Clear(t *testing.T) {
	svc, games, carts := newCartService(t)
	ctx := context.Background()
	game := &entity.Game{ID: uuid.New(), Title: "Farm Life", Price: 199}

	games.On("FindByID", ctx, game.ID).Return(game, nil)

	_, err := svc.Add(ctx, "session", game.ID, false)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "session"))
	assert.True(t, carts.Get("session").IsEmpty())
}
