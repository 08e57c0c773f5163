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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) (usecase.ProfileUsecase, *mockRepo.MockUserRepository, *mockRepo.MockGameRepository) {
	users := mockRepo.NewMockUserRepository(t)
	games := mockRepo.NewMockGameRepository(t)

	cfg := &config.Config{}
	cfg.Loyalty = config.LoyaltyConfig{BracketSize: 1000, DiscountPercent: 5, TaxPercent: 21}

	svc := NewProfileService(ProfileServiceParams{
		UserRepo: users,
		GameRepo: games,
		Config:   cfg,
		Logger:   slog.Default(),
	})

	return svc, users, games
}

func TestProfileService_GetProfile_RecomputesProgression(t *testing.T) {
	svc, users, _ := newProfileService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "player@example.com"}
	user.Profile = entity.NewProfile(user.ID)
	user.Profile.TotalSpend = 2350
	// Stale stored values must not leak into the response.
	user.Profile.Level = 1
	user.Profile.Progress = 0

	users.On("FindByID", ctx, user.ID).Return(user, nil)

	out, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Progression.Level)
	assert.InDelta(t, 35.0, out.Progression.Progress, 0.001)
	assert.Equal(t, int64(2350), out.Progression.TotalSpend)
}

func TestProfileService_GetProfile_NilProfileDefaults(t *testing.T) {
	svc, users, _ := newProfileService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "player@example.com"}

	users.On("FindByID", ctx, user.ID).Return(user, nil)

	out, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Progression.Level)
	assert.Zero(t, out.Progression.Progress)
}

func TestProfileService_GetProfile_UnknownUser(t *testing.T) {
	svc, users, _ := newProfileService(t)
	ctx := context.Background()
	id := uuid.New()

	users.On("FindByID", ctx, id).Return(nil, repository.ErrUserNotFound)

	_, err := svc.GetProfile(ctx, id)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_UpdateProfile(t *testing.T) {
	svc, users, _ := newProfileService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "player@example.com", Username: "old-name"}
	user.Profile = entity.NewProfile(user.ID)
	user.Profile.TotalSpend = 2350

	users.On("FindByID", ctx, user.ID).Return(user, nil)
	users.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.ID == user.ID && u.Username == "new-name"
	})).Return(nil)

	out, err := svc.UpdateProfile(ctx, user.ID, usecase.UpdateProfileInput{Username: " new-name "})
	require.NoError(t, err)
	assert.Equal(t, "new-name", out.User.Username)
	assert.Equal(t, 3, out.Progression.Level)
}

func TestProfileService_UpdateProfile_RejectsShortUsername(t *testing.T) {
	svc, users, _ := newProfileService(t)

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), usecase.UpdateProfileInput{Username: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	users.AssertNotCalled(t, "Update")
}

func TestProfileService_GetLibrary(t *testing.T) {
	svc, users, games := newProfileService(t)
	ctx := context.Background()

	owned := []*entity.Game{
		{ID: uuid.New(), Title: "Mystic Odyssey"},
		{ID: uuid.New(), Title: "Farm Life"},
	}
	user := &entity.User{ID: uuid.New(), Email: "player@example.com"}
	user.Profile = entity.NewProfile(user.ID)
	user.Profile.GrantGames(owned[0].ID, owned[1].ID)

	users.On("FindByID", ctx, user.ID).Return(user, nil)
	games.On("FindByIDs", ctx, []uuid.UUID{owned[0].ID, owned[1].ID}).Return(owned, nil)

	library, err := svc.GetLibrary(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, library, 2)
}

func TestProfileService_GetLibrary_EmptyIsNotNil(t *testing.T) {
	svc, users, _ := newProfileService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "player@example.com"}

	users.On("FindByID", ctx, user.ID).Return(user, nil)

	library, err := svc.GetLibrary(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, library)
	assert.Empty(t, library)
}
