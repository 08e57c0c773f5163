package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager   repository.TransactionManager
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	qrService   service.QRCodeService
	mailer      service.InvoiceMailer
	publisher   service.EventPublisher
	bracketSize int64
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	UserRepo  repository.UserRepository
	QRService service.QRCodeService
	Mailer    service.InvoiceMailer
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:   params.TxManager,
		orderRepo:   params.OrderRepo,
		userRepo:    params.UserRepo,
		qrService:   params.QRService,
		mailer:      params.Mailer,
		publisher:   params.Publisher,
		bracketSize: params.Config.Loyalty.BracketSize,
		logger:      params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Get returns one order. Non-admin actors may only read their own.
func (srv *orderService) Get(ctx context.Context, actor usecase.Actor, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if order.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}

	return order, nil
}

// ListMine returns the actor's orders, newest first.
func (srv *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListAll returns every order, newest first. Admin only.
func (srv *orderService) ListAll(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// UpdateStatus applies an admin status change, enforcing transition
// legality. Moving an order to completed runs the full completion path so
// loyalty and the library are granted exactly as in checkout.
func (srv *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status")
	}

	if status == entity.OrderStatusCompleted {
		if err := srv.Complete(ctx, orderID, deliverycontext.GetRequestIDFromContext(ctx)); err != nil {
			return nil, err
		}

		return srv.orderRepo.FindByID(ctx, orderID)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to load order")
		}

		if order.Status == status {
			return nil
		}
		if !order.Status.CanTransitionTo(status) {
			return domainerrors.ErrInvalidTransition.WithDetails(
				"cannot move from " + order.Status.String() + " to " + status.String())
		}

		return orderRepo.UpdateStatus(ctx, orderID, status)
	})
	if err != nil {
		return nil, err
	}

	return srv.orderRepo.FindByID(ctx, orderID)
}

// Cancel voids a not-yet-terminal order owned by the actor.
func (srv *orderService) Cancel(ctx context.Context, actor usecase.Actor, orderID uuid.UUID) (*entity.Order, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to load order")
		}

		if order.UserID != actor.UserID && !actor.IsAdmin() {
			return domainerrors.ErrForbidden
		}
		if !order.Status.CanTransitionTo(entity.OrderStatusCancelled) {
			return domainerrors.ErrInvalidTransition.WithDetails("order is already " + order.Status.String())
		}

		return orderRepo.UpdateStatus(ctx, orderID, entity.OrderStatusCancelled)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order cancelled", slog.Any("orderID", orderID))

	return srv.orderRepo.FindByID(ctx, orderID)
}

// Complete finishes a paid order. The status change commits first; loyalty
// accrual and the library grant run in a second transaction whose failure is
// logged but never undoes the completion. Calling Complete on an already
// completed order is a no-op, which makes payment confirmations safe to retry.
func (srv *orderService) Complete(ctx context.Context, orderID uuid.UUID, requestID string) error {
	var order *entity.Order
	alreadyCompleted := false

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		var err error
		order, err = orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to load order")
		}

		if order.Status == entity.OrderStatusCompleted {
			alreadyCompleted = true

			return nil
		}
		if !order.Status.CanTransitionTo(entity.OrderStatusCompleted) {
			return domainerrors.ErrInvalidTransition.WithDetails("order is " + order.Status.String())
		}

		return orderRepo.UpdateStatus(ctx, orderID, entity.OrderStatusCompleted)
	})
	if err != nil {
		return err
	}
	if alreadyCompleted {
		srv.log(ctx).Debug("Order already completed, skipping", slog.Any("orderID", orderID))

		return nil
	}

	leveledUp, level := srv.applyLoyalty(ctx, order)
	srv.dispatchSideEffects(ctx, order, requestID, leveledUp, level)

	return nil
}

// ReceiptQR renders the scannable receipt for an order the actor may read.
func (srv *orderService) ReceiptQR(ctx context.Context, actor usecase.Actor, orderID uuid.UUID) ([]byte, error) {
	if _, err := srv.Get(ctx, actor, orderID); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateReceiptQR(orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render receipt")
	}

	return png, nil
}

// applyLoyalty adds the order amount to the buyer's cumulative spend and
// grants the purchased games. A failure here is logged and swallowed: the
// order stays completed and a later completion retry can reconcile.
func (srv *orderService) applyLoyalty(ctx context.Context, order *entity.Order) (leveledUp bool, level int) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, order.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to load buyer")
		}
		if user.Profile == nil {
			user.Profile = entity.NewProfile(user.ID)
		}

		leveledUp = user.Profile.ApplyOrderAmount(order.Total, srv.bracketSize)
		level = user.Profile.Level

		gameIDs := make([]uuid.UUID, 0, len(order.Lines))
		for _, line := range order.Lines {
			gameIDs = append(gameIDs, line.GameID)
		}
		user.Profile.GrantGames(gameIDs...)

		return userRepo.UpdateProfile(ctx, user.Profile)
	})
	if err != nil {
		srv.log(ctx).Error("Loyalty update failed after completion",
			slog.Any("orderID", order.ID),
			slog.Any("userID", order.UserID),
			slog.Any("error", err))

		return false, 0
	}

	return leveledUp, level
}

// dispatchSideEffects sends the receipt email and publishes events. All of
// it is fire-and-forget from the buyer's point of view: failures are logged
// and the purchase outcome stands.
func (srv *orderService) dispatchSideEffects(ctx context.Context, order *entity.Order, requestID string, leveledUp bool, level int) {
	logger := srv.log(ctx)

	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
	defer cancel()

	user, err := srv.userRepo.FindByID(sideCtx, order.UserID)
	if err != nil {
		logger.Error("Failed to load buyer for receipt",
			slog.Any("orderID", order.ID),
			slog.Any("error", err))

		return
	}

	invoice := &service.Invoice{
		UserEmail:   user.Email,
		OrderID:     order.ID.String(),
		TotalAmount: order.Total,
		Items:       order.Lines,
	}
	if err := srv.mailer.SendInvoice(sideCtx, invoice); err != nil {
		logger.Error("Invoice dispatch failed",
			slog.Any("orderID", order.ID),
			slog.Any("error", err))
	}

	completedEvent := &service.StoreEvent{
		RequestID: requestID,
		Type:      service.EventTypeOrderCompleted,
		UserID:    order.UserID.String(),
		OrderID:   order.ID.String(),
		Amount:    order.Total,
	}
	if err := srv.publisher.PublishStoreEvent(sideCtx, completedEvent); err != nil {
		logger.Error("Failed to publish completion event",
			slog.Any("orderID", order.ID),
			slog.Any("error", err))
	}

	if !leveledUp {
		return
	}

	levelUpEvent := &service.StoreEvent{
		RequestID: requestID,
		Type:      service.EventTypeLevelUp,
		UserID:    order.UserID.String(),
		Level:     level,
	}
	if err := srv.publisher.PublishStoreEvent(sideCtx, levelUpEvent); err != nil {
		logger.Error("Failed to publish level-up event",
			slog.Any("userID", order.UserID),
			slog.Any("error", err))
	}
}
