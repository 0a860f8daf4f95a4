package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mangahub/internal/service"
)

// CatalogHandler handles public catalog reads.
type CatalogHandler struct {
	svc service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListResponse is a generic paged collection envelope.
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
}

// ListSeries godoc
// @Summary Browse the catalog
// @Tags catalog
// @Produce json
// @Param q query string false "Title search"
// @Param status query string false "ongoing, completed, or hiatus"
// @Param page query int false "Page number"
// @Success 200 {object} ListResponse
// @Router /series [get]
func (h *CatalogHandler) ListSeries(c echo.Context) error {
	offset, limit := pageParams(c)
	items, total, err := h.svc.ListSeries(c.Request().Context(), c.QueryParam("q"), c.QueryParam("status"), offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ListResponse{Items: items, Total: total})
}

// GetSeries godoc
// @Summary Series detail with volumes and rating
// @Tags catalog
// @Produce json
// @Param slug path string true "Series slug"
// @Success 200 {object} service.SeriesDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /series/{slug} [get]
func (h *CatalogHandler) GetSeries(c echo.Context) error {
	detail, err := h.svc.GetSeries(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// ListChapters godoc
// @Summary Chapters of a series in reading order
// @Tags catalog
// @Produce json
// @Param slug path string true "Series slug"
// @Success 200 {array} model.Chapter
// @Router /series/{slug}/chapters [get]
func (h *CatalogHandler) ListChapters(c echo.Context) error {
	chapters, err := h.svc.ListChapters(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, chapters)
}

// GetChapter godoc
// @Summary Chapter with pages
// @Tags catalog
// @Produce json
// @Param id path string true "Chapter ID"
// @Success 200 {object} model.Chapter
// @Failure 404 {object} errors.ErrorResponse
// @Router /chapters/{id} [get]
func (h *CatalogHandler) GetChapter(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chapter id")
	}
	chapter, err := h.svc.GetChapter(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, chapter)
}
