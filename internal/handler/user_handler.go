package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mangahub/internal/service"
)

// UserHandler handles the signed-in user's own endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// PreferencesRequest represents a reader preferences update. Empty fields
// are left unchanged.
type PreferencesRequest struct {
	ReadingDirection string `json:"reading_direction" validate:"omitempty,oneof=rtl ltr vertical"`
	Theme            string `json:"theme" validate:"omitempty,oneof=dark light sepia"`
	PageFit          string `json:"page_fit" validate:"omitempty,oneof=width height original"`
}

// GetMe godoc
// @Summary Current user with profile and preferences
// @Tags me
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.User
// @Router /me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	user, err := h.svc.GetMe(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdatePreferences godoc
// @Summary Update reader preferences
// @Tags me
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} model.Preferences
// @Router /me/preferences [put]
func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prefs, err := h.svc.UpdatePreferences(c.Request().Context(), userID, req.ReadingDirection, req.Theme, req.PageFit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, prefs)
}
