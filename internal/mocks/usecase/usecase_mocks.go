// Package usecase contains hand-maintained testify mocks for the usecase
// contracts consumed by other usecases and the delivery layer.
package usecase

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	appusecase "storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderUsecase is a mock implementation of usecase.OrderUsecase.
type MockOrderUsecase struct {
	mock.Mock
}

// NewMockOrderUsecase creates a mock wired to the test lifecycle.
func NewMockOrderUsecase(t *testing.T) *MockOrderUsecase {
	m := &MockOrderUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderUsecase) Get(ctx context.Context, actor appusecase.Actor, orderID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, actor, orderID)
	if order, ok := args.Get(0).(*entity.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderUsecase) ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]*entity.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderUsecase) ListAll(ctx context.Context) ([]*entity.Order, error) {
	args := m.Called(ctx)
	if orders, ok := args.Get(0).([]*entity.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderUsecase) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	args := m.Called(ctx, orderID, status)
	if order, ok := args.Get(0).(*entity.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderUsecase) Cancel(ctx context.Context, actor appusecase.Actor, orderID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, actor, orderID)
	if order, ok := args.Get(0).(*entity.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderUsecase) Complete(ctx context.Context, orderID uuid.UUID, requestID string) error {
	return m.Called(ctx, orderID, requestID).Error(0)
}

func (m *MockOrderUsecase) ReceiptQR(ctx context.Context, actor appusecase.Actor, orderID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, actor, orderID)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}
