package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGameRepository is a mock implementation of repository.GameRepository.
type MockGameRepository struct {
	mock.Mock
}

// NewMockGameRepository creates a mock wired to the test lifecycle.
func NewMockGameRepository(t *testing.T) *MockGameRepository {
	m := &MockGameRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockGameRepository) List(ctx context.Context) ([]*entity.Game, error) {
	args := m.Called(ctx)
	if games, ok := args.Get(0).([]*entity.Game); ok {
		return games, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockGameRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	args := m.Called(ctx, id)
	if game, ok := args.Get(0).(*entity.Game); ok {
		return game, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockGameRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Game, error) {
	args := m.Called(ctx, ids)
	if games, ok := args.Get(0).([]*entity.Game); ok {
		return games, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockGameRepository) Create(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *MockGameRepository) Update(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *MockGameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGameRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}
