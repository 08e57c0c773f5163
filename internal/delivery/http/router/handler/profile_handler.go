package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler serves the signed-in user's profile and game library.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, logger: logger}
}

type progressionView struct {
	TotalSpend int64   `json:"totalSpend"`
	Level      int     `json:"level"`
	Progress   float64 `json:"progress"`
}

type profileResponse struct {
	User        userView        `json:"user"`
	Progression progressionView `json:"progression"`
}

// GetProfile returns the account with its loyalty progression.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	output, err := h.uc.GetProfile(c.Request().Context(), actor.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profileResponse{
		User: renderUser(output.User),
		Progression: progressionView{
			TotalSpend: output.Progression.TotalSpend,
			Level:      output.Progression.Level,
			Progress:   output.Progression.Progress,
		},
	}, "Profile retrieved successfully")
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
}

// UpdateProfile changes the caller's editable account fields.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateProfile(c.Request().Context(), actor.UserID, usecase.UpdateProfileInput{
		Username: req.Username,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profileResponse{
		User: renderUser(output.User),
		Progression: progressionView{
			TotalSpend: output.Progression.TotalSpend,
			Level:      output.Progression.Level,
			Progress:   output.Progression.Progress,
		},
	}, "Profile updated successfully")
}

// GetLibrary returns the catalog entries the caller owns.
func (h *ProfileHandler) GetLibrary(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	games, err := h.uc.GetLibrary(c.Request().Context(), actor.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderGames(games), "Library retrieved successfully")
}
