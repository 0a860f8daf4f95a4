package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mangahub/internal/service"
)

// ProgressHandler handles reading progress endpoints.
type ProgressHandler struct {
	svc service.ProgressService
}

// NewProgressHandler creates a new progress handler.
func NewProgressHandler(svc service.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

// ProgressRequest represents a progress update.
type ProgressRequest struct {
	PageNumber int `json:"page_number" validate:"min=0"`
}

// SaveProgress godoc
// @Summary Record reading position in a chapter
// @Tags progress
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Chapter ID"
// @Success 200 {object} model.Progress
// @Router /chapters/{id}/progress [put]
func (h *ProgressHandler) SaveProgress(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chapter id")
	}

	var req ProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	progress, err := h.svc.SaveProgress(c.Request().Context(), userID, chapterID, req.PageNumber)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, progress)
}

// GetProgress returns the caller's position in one chapter.
func (h *ProgressHandler) GetProgress(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chapter id")
	}

	progress, err := h.svc.GetProgress(c.Request().Context(), userID, chapterID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, progress)
}

// ListProgress returns the caller's recently read chapters.
func (h *ProgressHandler) ListProgress(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	rows, err := h.svc.ListProgress(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
