// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor identifies the caller of an operation together with its roles.
type Actor struct {
	UserID uuid.UUID
	Roles  []string
}

// IsAdmin reports whether the actor carries the administrator role.
func (a Actor) IsAdmin() bool {
	for _, role := range a.Roles {
		if role == entity.RoleAdmin.String() {
			return true
		}
	}

	return false
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the token pair and the account after a successful
// registration, login or refresh.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new account with a fresh profile and signs it in.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// Refresh rotates a valid refresh token into a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout revokes the session behind the given refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
