package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"edusign/internal/badge"
)

type BadgeService interface {
	List(ctx context.Context) ([]badge.Badge, error)
	Mint(ctx context.Context, f badge.Fields) (badge.Badge, error)
	Update(ctx context.Context, id string, p badge.Patch) (badge.Badge, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) error
	Preference(ctx context.Context) (bool, error)
	SetPreference(ctx context.Context, dark bool) error
}

type BadgeHandler struct {
	badges    BadgeService
	validator *validator.Validate
	log       *zap.Logger
	timeout   time.Duration
	mintDelay time.Duration
}

// NewBadgeHandler builds the handler; mintDelay is the store's simulated
// minting delay and extends the mint deadline.
func NewBadgeHandler(badges BadgeService, log *zap.Logger, mintDelay time.Duration) *BadgeHandler {
	return &BadgeHandler{
		badges:    badges,
		validator: validator.New(),
		log:       log,
		timeout:   10 * time.Second,
		mintDelay: mintDelay,
	}
}

type DarkModeRequest struct {
	DarkMode *bool `json:"dark_mode" validate:"required"`
}

func (h *BadgeHandler) GetAllBadges(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	badges, err := h.badges.List(ctx)
	resp := map[string]interface{}{
		"message": "successfully get all badges",
		"badges":  badges,
	}
	if err != nil {
		h.log.Warn("Serving empty badge list", zap.Error(err))
		resp["warning"] = "badge storage is unreadable"
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BadgeHandler) GetSuggestedImages(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"images": badge.SuggestedImages,
	})
}

// MintBadge waits for the simulated minting delay, so its deadline covers it.
func (h *BadgeHandler) MintBadge(c echo.Context) error {
	var req badge.Fields
	if err := c.Bind(&req); err != nil {
		h.log.Debug("Failed to bind request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.mintDelay+h.timeout)
	defer cancel()

	b, err := h.badges.Mint(ctx, req)
	if err != nil {
		return h.fail(c, "Failed to mint badge", err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "badge successfully minted",
		"badge":   b,
	})
}

func (h *BadgeHandler) UpdateBadge(c echo.Context) error {
	id := c.Param("id")

	var req badge.Patch
	if err := c.Bind(&req); err != nil {
		h.log.Debug("Failed to bind request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, found, err := h.badges.Update(ctx, id, req)
	if err != nil {
		return h.fail(c, "Failed to update badge", err)
	}
	if !found {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "badge not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update badge",
		"badge":   updated,
	})
}

func (h *BadgeHandler) DeleteBadge(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	removed, err := h.badges.Delete(ctx, id)
	if err != nil {
		return h.fail(c, "Failed to delete badge", err)
	}
	if !removed {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "badge not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "badge successfully deleted",
		"badge_id": id,
	})
}

func (h *BadgeHandler) ClearBadges(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.badges.Clear(ctx); err != nil {
		return h.fail(c, "Failed to clear badges", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "wallet cleared",
	})
}

func (h *BadgeHandler) GetDarkMode(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dark, err := h.badges.Preference(ctx)
	resp := map[string]interface{}{"dark_mode": dark}
	if err != nil {
		h.log.Warn("Serving default dark mode preference", zap.Error(err))
		resp["warning"] = "preference storage is unreadable"
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BadgeHandler) SetDarkMode(c echo.Context) error {
	var req DarkModeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "dark_mode is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.badges.SetPreference(ctx, *req.DarkMode); err != nil {
		return h.fail(c, "Failed to save dark mode preference", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"dark_mode": *req.DarkMode})
}

func (h *BadgeHandler) fail(c echo.Context, msg string, err error) error {
	var verr *badge.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid badge", Fields: verr.Fields})
	case errors.Is(err, badge.ErrValidation):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		h.log.Warn(msg, zap.Error(err))
		return c.JSON(http.StatusGatewayTimeout, ResponseError{Message: err.Error()})
	default:
		h.log.Error(msg, zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}
