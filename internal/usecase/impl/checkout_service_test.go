package impl

import (
	"context"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	mockUC "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutServiceMocks struct {
	users   *mockRepo.MockUserRepository
	games   *mockRepo.MockGameRepository
	orders  *mockRepo.MockOrderRepository
	orderUC *mockUC.MockOrderUsecase
	carts   *mockRepo.InMemoryCartStore
	payment *mockSvc.MockPaymentService
}

func newCheckoutService(t *testing.T) (usecase.CheckoutUsecase, *checkoutServiceMocks) {
	m := &checkoutServiceMocks{
		users:   mockRepo.NewMockUserRepository(t),
		games:   mockRepo.NewMockGameRepository(t),
		orders:  mockRepo.NewMockOrderRepository(t),
		orderUC: mockUC.NewMockOrderUsecase(t),
		carts:   mockRepo.NewInMemoryCartStore(),
		payment: mockSvc.NewMockPaymentService(t),
	}

	cfg := &config.Config{}
	cfg.Loyalty = config.LoyaltyConfig{BracketSize: 1000, DiscountPercent: 5, TaxPercent: 21}

	svc := NewCheckoutService(CheckoutServiceParams{
		TxManager: &mockRepo.StubTransactionManager{Factory: &mockRepo.StubRepositoryFactory{
			Orders: m.orders,
		}},
		UserRepo: m.users,
		GameRepo: m.games,
		OrderUC:  m.orderUC,
		Carts:    m.carts,
		Payment:  m.payment,
		Config:   cfg,
		Logger:   slog.Default(),
	})

	return svc, m
}

func checkoutBuyer() *entity.User {
	user := &entity.User{ID: uuid.New(), Email: "player@example.com"}
	user.Profile = entity.NewProfile(user.ID)

	return user
}

func fillCart(m *checkoutServiceMocks, sessionKey string, game *entity.Game, quantity int) {
	cart := m.carts.Get(sessionKey)
	for i := 0; i < quantity; i++ {
		cart.AddItem(game)
	}
}

func TestCheckoutService_Checkout(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()

	user := checkoutBuyer()
	game := &entity.Game{ID: uuid.New(), Title: "Tactical Force", Price: 399}
	fillCart(m, "sess-key", game, 2)

	orderID := uuid.New()
	m.users.On("FindByID", ctx, user.ID).Return(user, nil)
	m.orders.On("Create", ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Order).ID = orderID
		}).Return(nil)
	m.games.On("FindByIDs", ctx, mock.Anything).Return([]*entity.Game{game}, nil)
	m.payment.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(in service.CheckoutSessionInput) bool {
		return in.OrderID == orderID && in.Total == 917
	})).Return(&service.CheckoutSession{ID: "sess_1"}, nil)
	m.payment.On("ConfirmSession", ctx, "sess_1").
		Return(&service.PaymentConfirmation{SessionID: "sess_1", OrderID: orderID, Paid: true}, nil)
	m.orderUC.On("Complete", ctx, orderID, "req-1").Return(nil)
	m.orderUC.On("Get", ctx, usecase.Actor{UserID: user.ID}, orderID).
		Return(&entity.Order{ID: orderID, UserID: user.ID, Status: entity.OrderStatusCompleted}, nil)

	out, err := svc.Checkout(ctx, usecase.CheckoutInput{
		UserID:     user.ID,
		SessionKey: "sess-key",
		RequestID:  "req-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, out.Order.Status)
	assert.Equal(t, int64(798), out.Totals.Subtotal)
	assert.Equal(t, int64(40), out.Totals.Discount)
	assert.Equal(t, int64(917), out.Totals.Total)

	// A successful checkout consumes the session cart.
	_, remains := m.carts.Carts["sess-key"]
	assert.False(t, remains)
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()
	user := checkoutBuyer()

	m.users.On("FindByID", ctx, user.ID).Return(user, nil)

	_, err := svc.Checkout(ctx, usecase.CheckoutInput{UserID: user.ID, SessionKey: "sess-key"})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestCheckoutService_Checkout_UnknownBuyer(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()

	m.users.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := svc.Checkout(ctx, usecase.CheckoutInput{UserID: userID, SessionKey: "sess-key"})
	assert.ErrorIs(t, err, domainerrors.ErrAuthRequired)
}

func TestCheckoutService_Checkout_InvalidEmail(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "not-an-email"}

	m.users.On("FindByID", ctx, user.ID).Return(user, nil)

	_, err := svc.Checkout(ctx, usecase.CheckoutInput{UserID: user.ID, SessionKey: "sess-key"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProfile)
}

func TestCheckoutService_Checkout_PaymentDeclinedKeepsCart(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()

	user := checkoutBuyer()
	game := &entity.Game{ID: uuid.New(), Title: "Farm Life", Price: 199}
	fillCart(m, "sess-key", game, 1)

	m.users.On("FindByID", ctx, user.ID).Return(user, nil)
	m.orders.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	m.games.On("FindByIDs", ctx, mock.Anything).Return([]*entity.Game{game}, nil)
	m.payment.On("CreateCheckoutSession", ctx, mock.Anything).
		Return(&service.CheckoutSession{ID: "sess_1"}, nil)
	m.payment.On("ConfirmSession", ctx, "sess_1").
		Return(&service.PaymentConfirmation{SessionID: "sess_1", Paid: false}, nil)

	_, err := svc.Checkout(ctx, usecase.CheckoutInput{UserID: user.ID, SessionKey: "sess-key"})
	assert.ErrorIs(t, err, domainerrors.ErrPaymentFailed)
	assert.False(t, m.carts.Get("sess-key").IsEmpty())
}

func TestCheckoutService_Checkout_SingleFlightPerUser(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()

	user := checkoutBuyer()
	game := &entity.Game{ID: uuid.New(), Title: "Farm Life", Price: 199}
	fillCart(m, "sess-key", game, 1)

	input := usecase.CheckoutInput{UserID: user.ID, SessionKey: "sess-key"}

	m.users.On("FindByID", ctx, user.ID).Return(user, nil)
	m.orders.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	m.games.On("FindByIDs", ctx, mock.Anything).Return([]*entity.Game{game}, nil)

	// While the first checkout sits at the processor, a second attempt by
	// the same user must be turned away.
	m.payment.On("CreateCheckoutSession", ctx, mock.Anything).
		Run(func(mock.Arguments) {
			_, err := svc.Checkout(ctx, input)
			assert.ErrorIs(t, err, domainerrors.ErrCheckoutInProgress)
		}).
		Return(nil, assert.AnError).Once()

	_, err := svc.Checkout(ctx, input)
	require.ErrorIs(t, err, assert.AnError)

	// The slot is released once the first attempt finishes.
	m.payment.On("CreateCheckoutSession", ctx, mock.Anything).
		Return(nil, assert.AnError).Once()
	_, err = svc.Checkout(ctx, input)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCheckoutService_CreateSession(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()

	user := checkoutBuyer()
	game := &entity.Game{ID: uuid.New(), Title: "Mystic Odyssey", Price: 499}
	fillCart(m, "sess-key", game, 1)

	orderID := uuid.New()
	m.users.On("FindByID", ctx, user.ID).Return(user, nil)
	m.orders.On("Create", ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Order).ID = orderID
		}).Return(nil)
	m.games.On("FindByIDs", ctx, mock.Anything).Return([]*entity.Game{game}, nil)
	m.payment.On("CreateCheckoutSession", ctx, mock.Anything).
		Return(&service.CheckoutSession{ID: "cs_test_1"}, nil)
	m.orders.On("UpdateStatus", ctx, orderID, entity.OrderStatusProcessing).Return(nil)

	out, err := svc.CreateSession(ctx, usecase.CheckoutInput{UserID: user.ID, SessionKey: "sess-key"})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", out.SessionID)
	assert.Equal(t, orderID, out.OrderID)

	// The hosted flow keeps the cart until the payment is confirmed.
	assert.False(t, m.carts.Get("sess-key").IsEmpty())
}

func TestCheckoutService_ConfirmSession(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()

	user := checkoutBuyer()
	fillCart(m, "sess-key", &entity.Game{ID: uuid.New(), Title: "Mystic Odyssey", Price: 499}, 1)

	orderID := uuid.New()
	order := &entity.Order{
		ID:     orderID,
		UserID: user.ID,
		Lines:  []entity.OrderLine{{GameID: uuid.New(), Title: "Mystic Odyssey", UnitPrice: 499, Quantity: 1}},
		Total:  574,
		Status: entity.OrderStatusProcessing,
	}

	m.payment.On("ConfirmSession", ctx, "cs_test_1").
		Return(&service.PaymentConfirmation{SessionID: "cs_test_1", OrderID: orderID, Paid: true}, nil)
	m.orderUC.On("Get", ctx, usecase.Actor{UserID: user.ID}, orderID).Return(order, nil)
	m.users.On("FindByID", ctx, user.ID).Return(user, nil)
	m.orderUC.On("Complete", ctx, orderID, "req-9").Return(nil)

	out, err := svc.ConfirmSession(ctx, usecase.CheckoutInput{
		UserID:     user.ID,
		SessionKey: "sess-key",
		RequestID:  "req-9",
	}, "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, int64(499), out.Totals.Subtotal)
	assert.Equal(t, int64(574), out.Totals.Total)

	_, remains := m.carts.Carts["sess-key"]
	assert.False(t, remains)
}

func TestCheckoutService_ConfirmSession_Unpaid(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	m.payment.On("ConfirmSession", ctx, "cs_test_1").
		Return(&service.PaymentConfirmation{SessionID: "cs_test_1", OrderID: orderID, Paid: false}, nil)
	m.orderUC.On("Get", ctx, usecase.Actor{UserID: userID}, orderID).
		Return(&entity.Order{ID: orderID, UserID: userID, Status: entity.OrderStatusProcessing}, nil)

	_, err := svc.ConfirmSession(ctx, usecase.CheckoutInput{UserID: userID, SessionKey: "sess-key"}, "cs_test_1")
	assert.ErrorIs(t, err, domainerrors.ErrPaymentFailed)
}
