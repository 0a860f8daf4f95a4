package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mangahub/internal/service"
)

// SocialHandler handles favorites, ratings, and comments.
type SocialHandler struct {
	svc service.SocialService
}

// NewSocialHandler creates a new social handler.
func NewSocialHandler(svc service.SocialService) *SocialHandler {
	return &SocialHandler{svc: svc}
}

// RatingRequest represents a series rating.
type RatingRequest struct {
	Score int `json:"score" validate:"required,min=1,max=10"`
}

// CommentRequest represents a new chapter comment.
type CommentRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

func (h *SocialHandler) ListFavorites(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	favorites, err := h.svc.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, favorites)
}

func (h *SocialHandler) AddFavorite(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	seriesID, err := uuid.Parse(c.Param("seriesID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid series id")
	}
	if err := h.svc.AddFavorite(c.Request().Context(), userID, seriesID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SocialHandler) RemoveFavorite(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	seriesID, err := uuid.Parse(c.Param("seriesID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid series id")
	}
	if err := h.svc.RemoveFavorite(c.Request().Context(), userID, seriesID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SocialHandler) RateSeries(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	seriesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid series id")
	}

	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.RateSeries(c.Request().Context(), userID, seriesID, req.Score); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SocialHandler) ListComments(c echo.Context) error {
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chapter id")
	}
	offset, limit := pageParams(c)
	comments, total, err := h.svc.ListComments(c.Request().Context(), chapterID, offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ListResponse{Items: comments, Total: total})
}

func (h *SocialHandler) AddComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chapter id")
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.svc.AddComment(c.Request().Context(), userID, chapterID, req.Body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *SocialHandler) DeleteComment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid comment id")
	}

	if err := h.svc.DeleteComment(c.Request().Context(), userID, claims.Role, commentID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// currentUserID is a shortcut for handlers that only need the caller's ID.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	claims, err := currentClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return userID, nil
}
