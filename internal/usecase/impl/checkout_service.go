package impl

import (
	"context"
	"log/slog"
	"sync"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface. A per-user
// guard serializes checkouts so double-clicking the pay button cannot
// create two orders from one cart.
type checkoutService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	gameRepo  repository.GameRepository
	orderUC   usecase.OrderUsecase
	carts     repository.CartStore
	payment   service.PaymentService
	validate  *validator.Validate

	discountPercent int64
	taxPercent      int64

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}

	logger *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	GameRepo  repository.GameRepository
	OrderUC   usecase.OrderUsecase
	Carts     repository.CartStore
	Payment   service.PaymentService
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager:       params.TxManager,
		userRepo:        params.UserRepo,
		gameRepo:        params.GameRepo,
		orderUC:         params.OrderUC,
		carts:           params.Carts,
		payment:         params.Payment,
		validate:        validator.New(),
		discountPercent: params.Config.Loyalty.DiscountPercent,
		taxPercent:      params.Config.Loyalty.TaxPercent,
		inFlight:        make(map[uuid.UUID]struct{}),
		logger:          params.Logger,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout runs the embedded flow: preconditions, pricing, order creation,
// inline payment confirmation and completion. The cart is cleared only
// after everything succeeded.
func (srv *checkoutService) Checkout(ctx context.Context, input usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	release, err := srv.acquire(input.UserID)
	if err != nil {
		return nil, err
	}
	defer release()

	user, totals, order, err := srv.prepareOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	levelBefore := profileLevel(user)

	session, err := srv.payment.CreateCheckoutSession(ctx, srv.sessionInput(ctx, order, input.UserID))
	if err != nil {
		return nil, err
	}

	confirmation, err := srv.payment.ConfirmSession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if !confirmation.Paid {
		return nil, domainerrors.ErrPaymentFailed
	}

	if err := srv.orderUC.Complete(ctx, order.ID, input.RequestID); err != nil {
		return nil, err
	}

	srv.carts.Delete(input.SessionKey)

	return srv.checkoutOutput(ctx, order.ID, totals, input.UserID, levelBefore)
}

// CreateSession runs the hosted flow up to the processor redirect: the
// order is created pending, the session is opened, and the order moves to
// processing. The cart survives until the payment is confirmed.
func (srv *checkoutService) CreateSession(ctx context.Context, input usecase.CheckoutInput) (*usecase.CheckoutSessionOutput, error) {
	release, err := srv.acquire(input.UserID)
	if err != nil {
		return nil, err
	}
	defer release()

	_, _, order, err := srv.prepareOrder(ctx, input)
	if err != nil {
		return nil, err
	}

	session, err := srv.payment.CreateCheckoutSession(ctx, srv.sessionInput(ctx, order, input.UserID))
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.OrderRepo().UpdateStatus(ctx, order.ID, entity.OrderStatusProcessing)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to mark order processing")
	}

	srv.log(ctx).Info("Checkout session opened",
		slog.Any("orderID", order.ID),
		slog.String("sessionID", session.ID))

	return &usecase.CheckoutSessionOutput{SessionID: session.ID, OrderID: order.ID}, nil
}

// ConfirmSession completes the hosted flow after the processor redirect.
// Confirming twice is safe; completion is idempotent.
func (srv *checkoutService) ConfirmSession(ctx context.Context, input usecase.CheckoutInput, sessionID string) (*usecase.CheckoutOutput, error) {
	confirmation, err := srv.payment.ConfirmSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	order, err := srv.orderUC.Get(ctx, usecase.Actor{UserID: input.UserID}, confirmation.OrderID)
	if err != nil {
		return nil, err
	}
	if !confirmation.Paid {
		return nil, domainerrors.ErrPaymentFailed.WithDetails("session is not paid")
	}

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load buyer")
	}
	levelBefore := profileLevel(user)

	if err := srv.orderUC.Complete(ctx, order.ID, input.RequestID); err != nil {
		return nil, err
	}

	srv.carts.Delete(input.SessionKey)

	totals := entity.ComputeTotals(subtotalOf(order.Lines), srv.discountPercent, srv.taxPercent, true)

	return srv.checkoutOutput(ctx, order.ID, totals, input.UserID, levelBefore)
}

// acquire takes the per-user checkout slot, failing fast when one is held.
func (srv *checkoutService) acquire(userID uuid.UUID) (func(), error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if _, busy := srv.inFlight[userID]; busy {
		return nil, domainerrors.ErrCheckoutInProgress
	}
	srv.inFlight[userID] = struct{}{}

	return func() {
		srv.mu.Lock()
		defer srv.mu.Unlock()
		delete(srv.inFlight, userID)
	}, nil
}

// prepareOrder checks the buyer and cart preconditions, prices the cart and
// persists the pending order with snapshotted lines.
func (srv *checkoutService) prepareOrder(ctx context.Context, input usecase.CheckoutInput) (*entity.User, entity.CheckoutTotals, *entity.Order, error) {
	var totals entity.CheckoutTotals

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, totals, nil, domainerrors.ErrAuthRequired
		}

		return nil, totals, nil, errors.Wrap(err, "failed to load buyer")
	}
	if srv.validate.Var(user.Email, "required,email") != nil {
		return nil, totals, nil, domainerrors.ErrInvalidProfile
	}

	cart := srv.carts.Get(input.SessionKey)
	if cart.IsEmpty() {
		return nil, totals, nil, domainerrors.ErrEmptyCart
	}

	totals = entity.ComputeTotals(cart.Subtotal(), srv.discountPercent, srv.taxPercent, true)

	order := &entity.Order{
		UserID: input.UserID,
		Lines:  cart.Snapshot(),
		Total:  totals.Total,
		Status: entity.OrderStatusPending,
	}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.OrderRepo().Create(ctx, order)
	})
	if err != nil {
		return nil, totals, nil, err
	}

	srv.log(ctx).Info("Order created",
		slog.Any("orderID", order.ID),
		slog.Any("userID", input.UserID),
		slog.Int64("total", order.Total))

	return user, totals, order, nil
}

// sessionInput assembles the processor payload, resolving catalog images
// for the hosted checkout page. Missing images are tolerated.
func (srv *checkoutService) sessionInput(ctx context.Context, order *entity.Order, userID uuid.UUID) service.CheckoutSessionInput {
	imageURLs := make([]string, len(order.Lines))

	ids := make([]uuid.UUID, 0, len(order.Lines))
	for _, line := range order.Lines {
		ids = append(ids, line.GameID)
	}
	if games, err := srv.gameRepo.FindByIDs(ctx, ids); err == nil {
		byID := make(map[uuid.UUID]string, len(games))
		for _, game := range games {
			byID[game.ID] = game.ImageURL
		}
		for i, line := range order.Lines {
			imageURLs[i] = byID[line.GameID]
		}
	}

	return service.CheckoutSessionInput{
		OrderID:   order.ID,
		UserID:    userID,
		Lines:     order.Lines,
		ImageURLs: imageURLs,
		Total:     order.Total,
	}
}

func (srv *checkoutService) checkoutOutput(ctx context.Context, orderID uuid.UUID, totals entity.CheckoutTotals, userID uuid.UUID, levelBefore int) (*usecase.CheckoutOutput, error) {
	order, err := srv.orderUC.Get(ctx, usecase.Actor{UserID: userID}, orderID)
	if err != nil {
		return nil, err
	}

	leveledUp := false
	if user, err := srv.userRepo.FindByID(ctx, userID); err == nil {
		leveledUp = profileLevel(user) > levelBefore
	}

	return &usecase.CheckoutOutput{
		Order:     order,
		Totals:    totals,
		LeveledUp: leveledUp,
	}, nil
}

func profileLevel(user *entity.User) int {
	if user.Profile == nil {
		return 1
	}

	return user.Profile.Level
}

func subtotalOf(lines []entity.OrderLine) int64 {
	var sum int64
	for _, line := range lines {
		sum += line.Amount()
	}

	return sum
}
