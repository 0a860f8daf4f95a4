package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mangahub/internal/model"
	"mangahub/internal/service"
)

// AdminHandler handles moderation and catalog management endpoints.
type AdminHandler struct {
	admin   service.AdminService
	catalog service.CatalogService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admin service.AdminService, catalog service.CatalogService) *AdminHandler {
	return &AdminHandler{admin: admin, catalog: catalog}
}

// SeriesRequest represents a series create or update.
type SeriesRequest struct {
	Slug        string `json:"slug" validate:"required,min=2,max=128"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Author      string `json:"author" validate:"max=128"`
	Artist      string `json:"artist" validate:"max=128"`
	Status      string `json:"status" validate:"omitempty,oneof=ongoing completed hiatus"`
	CoverURL    string `json:"cover_url" validate:"omitempty,url"`
}

// VolumeRequest represents a volume create.
type VolumeRequest struct {
	SeriesID string `json:"series_id" validate:"required,uuid4"`
	Number   int    `json:"number" validate:"required,min=1"`
	Title    string `json:"title" validate:"max=255"`
	CoverURL string `json:"cover_url" validate:"omitempty,url"`
}

// ChapterRequest represents a chapter create or update.
type ChapterRequest struct {
	SeriesID    string     `json:"series_id" validate:"required,uuid4"`
	VolumeID    *string    `json:"volume_id" validate:"omitempty,uuid4"`
	Number      float64    `json:"number" validate:"required,min=0"`
	Title       string     `json:"title" validate:"max=255"`
	PublishedAt *time.Time `json:"published_at"`
}

// PagesRequest replaces the page list of a chapter.
type PagesRequest struct {
	Pages []PageInput `json:"pages" validate:"required,min=1,dive"`
}

// PageInput is one page of a chapter upload.
type PageInput struct {
	ImageURL string `json:"image_url" validate:"required,url"`
	Width    int    `json:"width" validate:"min=0"`
	Height   int    `json:"height" validate:"min=0"`
}

// BanRequest represents a user ban.
type BanRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// RoleRequest represents a role change.
type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

// ListUsers godoc
// @Summary List users with online status
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ListResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	offset, limit := pageParams(c)
	users, total, err := h.admin.ListUsers(c.Request().Context(), offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ListResponse{Items: users, Total: total})
}

func (h *AdminHandler) BanUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	var req BanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.admin.BanUser(c.Request().Context(), id, req.Reason); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) UnbanUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if err := h.admin.UnbanUser(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) SetRole(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.admin.SetRole(c.Request().Context(), id, req.Role); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateSeries godoc
// @Summary Add a series to the catalog
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} model.Series
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/series [post]
func (h *AdminHandler) CreateSeries(c echo.Context) error {
	var req SeriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	series := seriesFromRequest(&req)
	if err := h.catalog.CreateSeries(c.Request().Context(), series); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, series)
}

func (h *AdminHandler) UpdateSeries(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid series id")
	}
	var req SeriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	series := seriesFromRequest(&req)
	series.ID = id
	if err := h.catalog.UpdateSeries(c.Request().Context(), series); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, series)
}

func (h *AdminHandler) DeleteSeries(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid series id")
	}
	if err := h.catalog.DeleteSeries(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) CreateVolume(c echo.Context) error {
	var req VolumeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	seriesID, err := uuid.Parse(req.SeriesID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid series id")
	}
	volume := &model.Volume{
		SeriesID: seriesID,
		Number:   req.Number,
		Title:    req.Title,
		CoverURL: req.CoverURL,
	}
	if err := h.catalog.CreateVolume(c.Request().Context(), volume); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, volume)
}

func (h *AdminHandler) DeleteVolume(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid volume id")
	}
	if err := h.catalog.DeleteVolume(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) CreateChapter(c echo.Context) error {
	var req ChapterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chapter, err := chapterFromRequest(&req)
	if err != nil {
		return err
	}
	if err := h.catalog.CreateChapter(c.Request().Context(), chapter); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, chapter)
}

func (h *AdminHandler) UpdateChapter(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chapter id")
	}
	var req ChapterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chapter, err := chapterFromRequest(&req)
	if err != nil {
		return err
	}
	chapter.ID = id
	if err := h.catalog.UpdateChapter(c.Request().Context(), chapter); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, chapter)
}

func (h *AdminHandler) DeleteChapter(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chapter id")
	}
	if err := h.catalog.DeleteChapter(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetChapterPages replaces the full page list of a chapter. Page numbers
// are assigned from the request order.
func (h *AdminHandler) SetChapterPages(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chapter id")
	}
	var req PagesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pages := make([]model.Page, 0, len(req.Pages))
	for i, p := range req.Pages {
		pages = append(pages, model.Page{
			ChapterID: id,
			Number:    i + 1,
			ImageURL:  p.ImageURL,
			Width:     p.Width,
			Height:    p.Height,
		})
	}
	if err := h.catalog.SetChapterPages(c.Request().Context(), id, pages); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func seriesFromRequest(req *SeriesRequest) *model.Series {
	status := req.Status
	if status == "" {
		status = model.StatusOngoing
	}
	return &model.Series{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		Artist:      req.Artist,
		Status:      status,
		CoverURL:    req.CoverURL,
	}
}

func chapterFromRequest(req *ChapterRequest) (*model.Chapter, error) {
	seriesID, err := uuid.Parse(req.SeriesID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid series id")
	}
	chapter := &model.Chapter{
		SeriesID: seriesID,
		Number:   req.Number,
		Title:    req.Title,
	}
	if req.VolumeID != nil {
		volumeID, err := uuid.Parse(*req.VolumeID)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid volume id")
		}
		chapter.VolumeID = &volumeID
	}
	if req.PublishedAt != nil {
		chapter.PublishedAt = *req.PublishedAt
	}
	return chapter, nil
}
