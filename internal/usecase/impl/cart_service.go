package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface on top of the in-memory
// cart store. Every mutation returns the fresh view so clients never hold a
// stale subtotal.
type cartService struct {
	carts           repository.CartStore
	gameRepo        repository.GameRepository
	discountPercent int64
	taxPercent      int64
	logger          *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Carts    repository.CartStore
	GameRepo repository.GameRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		carts:           params.Carts,
		gameRepo:        params.GameRepo,
		discountPercent: params.Config.Loyalty.DiscountPercent,
		taxPercent:      params.Config.Loyalty.TaxPercent,
		logger:          params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// View returns the cart contents and totals for the session.
func (srv *cartService) View(_ context.Context, sessionKey string, authenticated bool) (*usecase.CartOutput, error) {
	return srv.render(srv.carts.Get(sessionKey), authenticated), nil
}

// Add puts one more copy of the game into the cart, merging lines.
func (srv *cartService) Add(ctx context.Context, sessionKey string, gameID uuid.UUID, authenticated bool) (*usecase.CartOutput, error) {
	game, err := srv.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, domainerrors.ErrGameNotFound
		}

		return nil, errors.Wrap(err, "failed to load game")
	}

	cart := srv.carts.Get(sessionKey)
	cart.AddItem(game)

	srv.log(ctx).Debug("Cart item added",
		slog.String("session", sessionKey),
		slog.Any("gameID", gameID))

	return srv.render(cart, authenticated), nil
}

// Remove drops the game's line entirely. Removing an absent game succeeds.
func (srv *cartService) Remove(_ context.Context, sessionKey string, gameID uuid.UUID, authenticated bool) (*usecase.CartOutput, error) {
	cart := srv.carts.Get(sessionKey)
	cart.RemoveItem(gameID)

	return srv.render(cart, authenticated), nil
}

// UpdateQuantity sets the line quantity exactly; zero or less removes the line.
func (srv *cartService) UpdateQuantity(_ context.Context, sessionKey string, gameID uuid.UUID, quantity int, authenticated bool) (*usecase.CartOutput, error) {
	cart := srv.carts.Get(sessionKey)
	cart.UpdateQuantity(gameID, quantity)

	return srv.render(cart, authenticated), nil
}

// Clear empties the cart.
func (srv *cartService) Clear(_ context.Context, sessionKey string) error {
	srv.carts.Delete(sessionKey)

	return nil
}

// render flattens the cart and recomputes totals. The discount line only
// appears for authenticated sessions.
func (srv *cartService) render(cart *entity.Cart, authenticated bool) *usecase.CartOutput {
	lines := cart.Lines()
	views := make([]usecase.CartLineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, usecase.CartLineView{
			Game:     line.Game,
			Quantity: line.Quantity,
			Amount:   line.Amount(),
		})
	}

	return &usecase.CartOutput{
		Lines:  views,
		Totals: entity.ComputeTotals(cart.Subtotal(), srv.discountPercent, srv.taxPercent, authenticated),
	}
}
