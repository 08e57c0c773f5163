package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for refresh-token lookups.
var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
)

// RefreshToken is a persisted session credential. Only the SHA-256 hash of
// the issued token is stored.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// RefreshTokenRepository defines persistence operations for session tokens.
type RefreshTokenRepository interface {
	// Create persists a new refresh token, representing a session.
	Create(ctx context.Context, token *RefreshToken) error

	// FindByHash retrieves a token record by its stored hash. Expired
	// tokens yield ErrRefreshTokenExpired.
	FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)

	// DeleteByHash revokes a single session.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteByUser revokes every session for a user.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
