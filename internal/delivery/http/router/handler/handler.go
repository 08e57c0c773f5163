// Package handler contains the HTTP handlers for the storefront API.
package handler

import (
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXCartSession carries the anonymous cart session key. Signed-in
// shoppers do not need it; their user ID keys the cart.
const HeaderXCartSession = "X-Cart-Session"

// currentActor reads the identity stored by the auth middleware. The zero
// actor means the request is anonymous.
func currentActor(c echo.Context) usecase.Actor {
	actor := usecase.Actor{}
	if userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID); ok {
		actor.UserID = userID
	}
	if roles, ok := c.Get(middleware.ContextKeyRoles).([]string); ok {
		actor.Roles = roles
	}

	return actor
}

// requireActor returns the authenticated identity or fails the request.
func requireActor(c echo.Context) (usecase.Actor, error) {
	actor := currentActor(c)
	if actor.UserID == uuid.Nil {
		return usecase.Actor{}, domainerrors.ErrAuthRequired
	}

	return actor, nil
}

// cartSession resolves the cart key for the request: the user ID for
// signed-in shoppers, the X-Cart-Session header for guests.
func cartSession(c echo.Context) (key string, authenticated bool, err error) {
	if userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID); ok && userID != uuid.Nil {
		return userID.String(), true, nil
	}

	key = c.Request().Header.Get(HeaderXCartSession)
	if key == "" {
		return "", false, domainerrors.ErrValidationFailed.WithDetails(
			"anonymous cart requests must carry the " + HeaderXCartSession + " header")
	}

	return key, false, nil
}

// parseUUIDField parses a UUID carried in a request body field.
func parseUUIDField(value, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name + " field")
	}

	return id, nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name + " path parameter")
	}

	return id, nil
}

func requestID(c echo.Context) string {
	return deliverycontext.GetRequestID(c)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
