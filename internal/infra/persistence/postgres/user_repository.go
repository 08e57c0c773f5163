// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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
	"gorm.io/gorm/clause"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading the profile
// and its owned-games set.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Profile.OwnedGames").
		Where("id = ?", id).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Profile.OwnedGames").
		Where("email = ?", email).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity together with its profile.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Carry generated values back onto the entity.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt
	if user.Profile != nil {
		user.Profile.UserID = userM.ID
	}

	return nil
}

// Update modifies an existing user entity in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":    userM.Email,
			"username": userM.Username,
			"role":     userM.Role,
		}).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	return nil
}

// UpdateProfile persists loyalty state and appends newly owned games.
// Owned-games rows are insert-only; regrants are ignored on conflict so the
// set stays monotonic even when a completion is retried.
func (repo *userRepository) UpdateProfile(ctx context.Context, profile *entity.Profile) error {
	err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", profile.UserID).
		Updates(map[string]any{
			"total_spend": profile.TotalSpend,
			"level":       profile.Level,
			"progress":    profile.Progress,
		}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update profile")
	}

	if len(profile.OwnedGameIDs) == 0 {
		return nil
	}

	owned := make([]*model.OwnedGameModel, 0, len(profile.OwnedGameIDs))
	for _, gameID := range profile.OwnedGameIDs {
		owned = append(owned, &model.OwnedGameModel{UserID: profile.UserID, GameID: gameID})
	}

	err = repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(owned).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to grant owned games")
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		Username:     data.Username,
		PasswordHash: data.Password,
		Role:         entity.Role(data.Role),
		Profile:      toProfileDomain(data.Profile),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:       data.ID,
		Email:    data.Email,
		Username: data.Username,
		Password: data.PasswordHash,
		Role:     data.Role.String(),
		Profile:  fromProfileDomain(data.Profile),
	}
}

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	owned := make([]uuid.UUID, 0, len(data.OwnedGames))
	for _, g := range data.OwnedGames {
		owned = append(owned, g.GameID)
	}

	return &entity.Profile{
		UserID:       data.UserID,
		TotalSpend:   data.TotalSpend,
		Level:        data.Level,
		Progress:     data.Progress,
		OwnedGameIDs: owned,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromProfileDomain converts a domain Profile entity to a GORM ProfileModel.
// Owned games are written separately by UpdateProfile, never through the
// association, so a profile save cannot delete library rows.
func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProfileModel{
		UserID:     data.UserID,
		TotalSpend: data.TotalSpend,
		Level:      data.Level,
		Progress:   data.Progress,
	}
}
