package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CheckoutHandler serves both purchase flows: the embedded checkout that
// confirms payment inline and the hosted flow that redirects through the
// payment processor.
type CheckoutHandler struct {
	uc     usecase.CheckoutUsecase
	logger *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(uc usecase.CheckoutUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, logger: logger}
}

// Checkout runs the embedded flow end to end and returns the completed order.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Checkout(c.Request().Context(), usecase.CheckoutInput{
		UserID:     actor.UserID,
		SessionKey: actor.UserID.String(),
		RequestID:  requestID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, checkoutView{
		Order:     renderOrder(output.Order),
		Totals:    renderTotals(output.Totals),
		LeveledUp: output.LeveledUp,
	}, "Purchase completed successfully")
}

// CreateSession opens a hosted checkout session. The response body is the
// minimal shape the storefront's redirect script expects.
func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	output, err := h.uc.CreateSession(c.Request().Context(), usecase.CheckoutInput{
		UserID:     actor.UserID,
		SessionKey: actor.UserID.String(),
		RequestID:  requestID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"id": output.SessionID})
}

// ConfirmSession completes a hosted checkout after the processor redirect.
// Hitting it twice for the same session is safe.
func (h *CheckoutHandler) ConfirmSession(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return domainerrors.ErrValidationFailed.WithDetails("session_id query parameter is required")
	}

	output, err := h.uc.ConfirmSession(c.Request().Context(), usecase.CheckoutInput{
		UserID:     actor.UserID,
		SessionKey: actor.UserID.String(),
		RequestID:  requestID(c),
	}, sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, checkoutView{
		Order:     renderOrder(output.Order),
		Totals:    renderTotals(output.Totals),
		LeveledUp: output.LeveledUp,
	}, "Purchase completed successfully")
}
