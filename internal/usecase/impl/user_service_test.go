package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceMocks struct {
	users         *mockRepo.MockUserRepository
	refreshTokens *mockRepo.MockRefreshTokenRepository
	hasher        *mockSvc.MockPasswordHasher
	tokens        *mockSvc.MockTokenService
}

func newUserService(t *testing.T, adminEmails ...string) (usecase.UserUsecase, *userServiceMocks) {
	m := &userServiceMocks{
		users:         mockRepo.NewMockUserRepository(t),
		refreshTokens: mockRepo.NewMockRefreshTokenRepository(t),
		hasher:        mockSvc.NewMockPasswordHasher(t),
		tokens:        mockSvc.NewMockTokenService(t),
	}

	cfg := &config.Config{}
	cfg.Admin.Emails = adminEmails

	svc := NewUserService(UserServiceParams{
		TxManager:        &mockRepo.StubTransactionManager{Factory: &mockRepo.StubRepositoryFactory{Users: m.users}},
		UserRepo:         m.users,
		RefreshTokenRepo: m.refreshTokens,
		Hasher:           m.hasher,
		TokenService:     m.tokens,
		Config:           cfg,
		Logger:           slog.Default(),
	})

	return svc, m
}

func expectTokenIssue(m *userServiceMocks, roles []string) {
	m.tokens.On("GenerateTokens", mock.AnythingOfType("uuid.UUID"), roles).
		Return("access-token", "refresh-token", nil)
	m.tokens.On("RefreshTokenDuration").Return(time.Hour * 24 * 7)
	m.refreshTokens.On("Create", mock.Anything, mock.AnythingOfType("*repository.RefreshToken")).
		Return(nil)
}

func TestUserService_Register(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	m.hasher.On("Hash", "Sup3rSecret!").Return("hashed", nil)
	m.users.On("FindByEmail", ctx, "player@example.com").
		Return(nil, repository.ErrUserNotFound)
	m.users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	expectTokenIssue(m, []string{"customer"})

	out, err := svc.Register(ctx, usecase.RegisterInput{
		Username: "player",
		Email:    "Player@Example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	assert.Equal(t, "player@example.com", out.User.Email)
	assert.Equal(t, entity.RoleCustomer, out.User.Role)
	require.NotNil(t, out.User.Profile)
	assert.Equal(t, 1, out.User.Profile.Level)
	assert.Zero(t, out.User.Profile.TotalSpend)
}

func TestUserService_Register_AdminAllowList(t *testing.T) {
	svc, m := newUserService(t, "Boss@Example.com")
	ctx := context.Background()

	m.hasher.On("Hash", "Sup3rSecret!").Return("hashed", nil)
	m.users.On("FindByEmail", ctx, "boss@example.com").
		Return(nil, repository.ErrUserNotFound)
	m.users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	expectTokenIssue(m, []string{"customer", "admin"})

	out, err := svc.Register(ctx, usecase.RegisterInput{
		Username: "boss",
		Email:    "boss@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	m.hasher.On("Hash", "Sup3rSecret!").Return("hashed", nil)
	m.users.On("FindByEmail", ctx, "player@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "player@example.com"}, nil)

	out, err := svc.Register(ctx, usecase.RegisterInput{
		Username: "player",
		Email:    "player@example.com",
		Password: "Sup3rSecret!",
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	m.users.On("FindByEmail", ctx, "player@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "player@example.com", PasswordHash: "hashed"}, nil)
	m.hasher.On("Check", "wrong", "hashed").Return(false)

	out, err := svc.Login(ctx, usecase.LoginInput{Email: "player@example.com", Password: "wrong"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmailSameError(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	m.users.On("FindByEmail", ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := svc.Login(ctx, usecase.LoginInput{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Refresh_RotatesSession(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	m.tokens.On("ValidateRefreshToken", "old-refresh").
		Return(&service.Claims{UserID: userID, Type: "refresh"}, nil)
	m.refreshTokens.On("FindByHash", ctx, mock.AnythingOfType("string")).
		Return(&repository.RefreshToken{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil)
	m.users.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "player@example.com"}, nil)
	m.refreshTokens.On("DeleteByHash", ctx, mock.AnythingOfType("string")).Return(nil)
	expectTokenIssue(m, []string{"customer"})

	out, err := svc.Refresh(ctx, "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
}

func TestUserService_Refresh_StolenTokenMismatch(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	m.tokens.On("ValidateRefreshToken", "stolen").
		Return(&service.Claims{UserID: uuid.New(), Type: "refresh"}, nil)
	m.refreshTokens.On("FindByHash", ctx, mock.AnythingOfType("string")).
		Return(&repository.RefreshToken{UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}, nil)

	_, err := svc.Refresh(ctx, "stolen")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Logout(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	m.refreshTokens.On("DeleteByHash", ctx, mock.AnythingOfType("string")).Return(nil)

	assert.NoError(t, svc.Logout(ctx, "some-refresh-token"))

	// An empty token is a no-op logout.
	assert.NoError(t, svc.Logout(ctx, ""))
}
