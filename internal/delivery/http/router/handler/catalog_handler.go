package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler serves the public catalog and its admin management routes.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: logger}
}

type gameRequest struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description"`
	ShortDescription string `json:"shortDescription"`
	Genre            string `json:"genre"`
	Price            int64  `json:"price" validate:"gt=0"`
	AgeRating        int    `json:"ageRating" validate:"gte=0"`
	ImageURL         string `json:"imageUrl"`
}

func (r gameRequest) toInput() usecase.GameInput {
	return usecase.GameInput{
		Title:            r.Title,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Genre:            r.Genre,
		Price:            r.Price,
		AgeRating:        r.AgeRating,
		ImageURL:         r.ImageURL,
	}
}

// ListGames returns the whole catalog, newest listings first.
func (h *CatalogHandler) ListGames(c echo.Context) error {
	games, err := h.uc.ListGames(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderGames(games), "Catalog retrieved successfully")
}

// GetGame returns a single listing.
func (h *CatalogHandler) GetGame(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	game, err := h.uc.GetGame(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderGame(game), "Game retrieved successfully")
}

// CreateGame lists a new catalog item. Admin only.
func (h *CatalogHandler) CreateGame(c echo.Context) error {
	var req gameRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid game input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	game, err := h.uc.CreateGame(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, renderGame(game), "Game created successfully")
}

// UpdateGame modifies an existing listing. Admin only.
func (h *CatalogHandler) UpdateGame(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req gameRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid game input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	game, err := h.uc.UpdateGame(c.Request().Context(), id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, renderGame(game), "Game updated successfully")
}

// DeleteGame delists an item. Past order snapshots are unaffected. Admin only.
func (h *CatalogHandler) DeleteGame(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteGame(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Game deleted"}, "Game deleted successfully")
}
