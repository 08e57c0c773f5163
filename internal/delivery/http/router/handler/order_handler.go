package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler serves order history, cancellation and receipts, plus the
// admin order management routes.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListMine returns the caller's orders, newest first.
func (h *OrderHandler) ListMine(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	orders, err := h.uc.ListMine(c.Request().Context(), actor.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderOrders(orders), "Orders retrieved successfully")
}

// Get returns one order the caller may read.
func (h *OrderHandler) Get(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.Get(c.Request().Context(), actor, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderOrder(order), "Order retrieved successfully")
}

// Cancel voids a not-yet-terminal order owned by the caller.
func (h *OrderHandler) Cancel(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.Cancel(c.Request().Context(), actor, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderOrder(order), "Order cancelled")
}

// ReceiptQR streams the scannable PNG receipt for an order.
func (h *OrderHandler) ReceiptQR(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.uc.ReceiptQR(c.Request().Context(), actor, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ListAll returns every order in the store. Admin only.
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderOrders(orders), "Orders retrieved successfully")
}

// UpdateStatus applies an admin lifecycle change to an order.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderOrder(order), "Order status updated")
}
