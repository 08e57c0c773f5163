package impl

import (
	"context"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceMocks struct {
	orders    *mockRepo.MockOrderRepository
	users     *mockRepo.MockUserRepository
	qr        *mockSvc.MockQRCodeService
	mailer    *mockSvc.MockInvoiceMailer
	publisher *mockSvc.MockEventPublisher
}

func newOrderService(t *testing.T) (usecase.OrderUsecase, *orderServiceMocks) {
	m := &orderServiceMocks{
		orders:    mockRepo.NewMockOrderRepository(t),
		users:     mockRepo.NewMockUserRepository(t),
		qr:        mockSvc.NewMockQRCodeService(t),
		mailer:    mockSvc.NewMockInvoiceMailer(t),
		publisher: mockSvc.NewMockEventPublisher(t),
	}

	cfg := &config.Config{}
	cfg.Loyalty = config.LoyaltyConfig{BracketSize: 1000, DiscountPercent: 5, TaxPercent: 21}

	svc := NewOrderService(OrderServiceParams{
		TxManager: &mockRepo.StubTransactionManager{Factory: &mockRepo.StubRepositoryFactory{
			Orders: m.orders,
			Users:  m.users,
		}},
		OrderRepo: m.orders,
		UserRepo:  m.users,
		QRService: m.qr,
		Mailer:    m.mailer,
		Publisher: m.publisher,
		Config:    cfg,
		Logger:    slog.Default(),
	})

	return svc, m
}

func TestOrderService_Get_OwnerOnly(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: ownerID, Status: entity.OrderStatusPending}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)

	got, err := svc.Get(ctx, usecase.Actor{UserID: ownerID}, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.Get(ctx, usecase.Actor{UserID: uuid.New()}, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_Get_AdminSeesAny(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	order := &entity.Order{ID: uuid.New(), UserID: uuid.New(), Status: entity.OrderStatusPending}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)

	admin := usecase.Actor{UserID: uuid.New(), Roles: []string{"customer", "admin"}}
	got, err := svc.Get(ctx, admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestOrderService_UpdateStatus_RejectsIllegalTransition(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	order := &entity.Order{ID: uuid.New(), UserID: uuid.New(), Status: entity.OrderStatusCancelled}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)

	_, err := svc.UpdateStatus(ctx, order.ID, entity.OrderStatusProcessing)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestOrderService_UpdateStatus_UnknownStatus(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), entity.OrderStatus("shipped"))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_UpdateStatus_SameStatusIsNoOp(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	order := &entity.Order{ID: uuid.New(), UserID: uuid.New(), Status: entity.OrderStatusProcessing}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)

	got, err := svc.UpdateStatus(ctx, order.ID, entity.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, got.Status)
}

func TestOrderService_Cancel(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: ownerID, Status: entity.OrderStatusPending}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)
	m.orders.On("UpdateStatus", ctx, order.ID, entity.OrderStatusCancelled).Return(nil)

	_, err := svc.Cancel(ctx, usecase.Actor{UserID: ownerID}, order.ID)
	require.NoError(t, err)
}

func TestOrderService_Cancel_ForbiddenForStranger(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	order := &entity.Order{ID: uuid.New(), UserID: uuid.New(), Status: entity.OrderStatusPending}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)

	_, err := svc.Cancel(ctx, usecase.Actor{UserID: uuid.New()}, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_Cancel_CompletedOrder(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: ownerID, Status: entity.OrderStatusCompleted}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)

	_, err := svc.Cancel(ctx, usecase.Actor{UserID: ownerID}, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestOrderService_Complete_GrantsLoyaltyAndPublishes(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	gameID := uuid.New()
	user := &entity.User{ID: uuid.New(), Email: "player@example.com"}
	user.Profile = entity.NewProfile(user.ID)
	user.Profile.TotalSpend = 900

	order := &entity.Order{
		ID:     uuid.New(),
		UserID: user.ID,
		Lines:  []entity.OrderLine{{GameID: gameID, Title: "Tactical Force", UnitPrice: 399, Quantity: 2}},
		Total:  917,
		Status: entity.OrderStatusProcessing,
	}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)
	m.orders.On("UpdateStatus", ctx, order.ID, entity.OrderStatusCompleted).Return(nil)
	m.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	m.users.On("UpdateProfile", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.TotalSpend == 1817 && p.Level == 2 && p.OwnsGame(gameID)
	})).Return(nil)
	m.mailer.On("SendInvoice", mock.Anything, mock.MatchedBy(func(inv *service.Invoice) bool {
		return inv.UserEmail == "player@example.com" && inv.TotalAmount == 917
	})).Return(nil)
	m.publisher.On("PublishStoreEvent", mock.Anything, mock.MatchedBy(func(e *service.StoreEvent) bool {
		return e.Type == service.EventTypeOrderCompleted && e.OrderID == order.ID.String() && e.Amount == 917
	})).Return(nil)
	m.publisher.On("PublishStoreEvent", mock.Anything, mock.MatchedBy(func(e *service.StoreEvent) bool {
		return e.Type == service.EventTypeLevelUp && e.Level == 2
	})).Return(nil)

	require.NoError(t, svc.Complete(ctx, order.ID, "req-1"))
}

func TestOrderService_Complete_AlreadyCompletedIsNoOp(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	order := &entity.Order{ID: uuid.New(), UserID: uuid.New(), Status: entity.OrderStatusCompleted}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)

	// No loyalty update, no mail, no events on the repeat call.
	require.NoError(t, svc.Complete(ctx, order.ID, "req-1"))
}

func TestOrderService_Complete_CancelledOrderRejected(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	order := &entity.Order{ID: uuid.New(), UserID: uuid.New(), Status: entity.OrderStatusCancelled}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)

	assert.ErrorIs(t, svc.Complete(ctx, order.ID, "req-1"), domainerrors.ErrInvalidTransition)
}

func TestOrderService_Complete_LoyaltyFailureKeepsOrderCompleted(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "player@example.com", Profile: entity.NewProfile(uuid.New())}

	order := &entity.Order{
		ID:     uuid.New(),
		UserID: user.ID,
		Lines:  []entity.OrderLine{{GameID: uuid.New(), Title: "Farm Life", UnitPrice: 199, Quantity: 1}},
		Total:  199,
		Status: entity.OrderStatusPending,
	}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)
	m.orders.On("UpdateStatus", ctx, order.ID, entity.OrderStatusCompleted).Return(nil)
	m.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	m.users.On("UpdateProfile", ctx, mock.Anything).Return(assert.AnError)
	m.mailer.On("SendInvoice", mock.Anything, mock.Anything).Return(nil)
	m.publisher.On("PublishStoreEvent", mock.Anything, mock.MatchedBy(func(e *service.StoreEvent) bool {
		return e.Type == service.EventTypeOrderCompleted
	})).Return(nil)

	// Loyalty failure is swallowed; the completion itself stands.
	require.NoError(t, svc.Complete(ctx, order.ID, "req-1"))
}

func TestOrderService_ReceiptQR(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: ownerID, Status: entity.OrderStatusCompleted}

	m.orders.On("FindByID", ctx, order.ID).Return(order, nil)
	m.qr.On("GenerateReceiptQR", order.ID).Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := svc.ReceiptQR(ctx, usecase.Actor{UserID: ownerID}, order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
