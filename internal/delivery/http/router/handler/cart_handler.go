package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler serves the session cart. The routes work for both guests
// (keyed by the X-Cart-Session header) and signed-in shoppers (keyed by
// their user ID); only the latter see the member discount in totals.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{uc: uc, logger: logger}
}

type addCartItemRequest struct {
	GameID string `json:"gameId" validate:"required,uuid"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// View returns the cart contents and totals.
func (h *CartHandler) View(c echo.Context) error {
	key, authenticated, err := cartSession(c)
	if err != nil {
		return err
	}

	cart, err := h.uc.View(c.Request().Context(), key, authenticated)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderCart(cart), "Cart retrieved successfully")
}

// AddItem puts one more copy of a game into the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	key, authenticated, err := cartSession(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	gameID, err := parseUUIDField(req.GameID, "gameId")
	if err != nil {
		return err
	}

	cart, err := h.uc.Add(c.Request().Context(), key, gameID, authenticated)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderCart(cart), "Item added to cart")
}

// UpdateItem sets a line's quantity exactly; zero removes the line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	key, authenticated, err := cartSession(c)
	if err != nil {
		return err
	}

	gameID, err := pathUUID(c, "gameId")
	if err != nil {
		return err
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	cart, err := h.uc.UpdateQuantity(c.Request().Context(), key, gameID, req.Quantity, authenticated)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderCart(cart), "Cart updated")
}

// RemoveItem drops a game's line entirely.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	key, authenticated, err := cartSession(c)
	if err != nil {
		return err
	}

	gameID, err := pathUUID(c, "gameId")
	if err != nil {
		return err
	}

	cart, err := h.uc.Remove(c.Request().Context(), key, gameID, authenticated)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderCart(cart), "Item removed from cart")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	key, _, err := cartSession(c)
	if err != nil {
		return err
	}

	if err := h.uc.Clear(c.Request().Context(), key); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Cart cleared"}, "Cart cleared")
}
