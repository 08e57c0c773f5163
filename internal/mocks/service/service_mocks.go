// Package service contains hand-maintained testify mocks for the domain
// service interfaces.
package service

import (
	"context"
	"testing"
	"time"

	domainsvc "storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock wired to the test lifecycle.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock wired to the test lifecycle.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokens(userID uuid.UUID, roles []string) (string, string, error) {
	args := m.Called(userID, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*domainsvc.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*domainsvc.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*domainsvc.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*domainsvc.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) RefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

// MockPaymentService is a mock implementation of service.PaymentService.
type MockPaymentService struct {
	mock.Mock
}

// NewMockPaymentService creates a mock wired to the test lifecycle.
func NewMockPaymentService(t *testing.T) *MockPaymentService {
	m := &MockPaymentService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPaymentService) CreateCheckoutSession(ctx context.Context, input domainsvc.CheckoutSessionInput) (*domainsvc.CheckoutSession, error) {
	args := m.Called(ctx, input)
	if session, ok := args.Get(0).(*domainsvc.CheckoutSession); ok {
		return session, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentService) ConfirmSession(ctx context.Context, sessionID string) (*domainsvc.PaymentConfirmation, error) {
	args := m.Called(ctx, sessionID)
	if confirmation, ok := args.Get(0).(*domainsvc.PaymentConfirmation); ok {
		return confirmation, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockInvoiceMailer is a mock implementation of service.InvoiceMailer.
type MockInvoiceMailer struct {
	mock.Mock
}

// NewMockInvoiceMailer creates a mock wired to the test lifecycle.
func NewMockInvoiceMailer(t *testing.T) *MockInvoiceMailer {
	m := &MockInvoiceMailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockInvoiceMailer) SendInvoice(ctx context.Context, invoice *domainsvc.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

// MockEventPublisher is a mock implementation of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock wired to the test lifecycle.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishStoreEvent(ctx context.Context, event *domainsvc.StoreEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockQRCodeService is a mock implementation of service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

// NewMockQRCodeService creates a mock wired to the test lifecycle.
func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateReceiptQR(orderID uuid.UUID) ([]byte, error) {
	args := m.Called(orderID)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockQRCodeService) ParseReceiptQR(qrData string) (uuid.UUID, error) {
	args := m.Called(qrData)

	return args.Get(0).(uuid.UUID), args.Error(1)
}
