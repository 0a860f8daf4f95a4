package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "mangahub/internal/errors"
	"mangahub/internal/model"
	"mangahub/internal/repository"
)

// SocialService exposes favorites, ratings, and chapter comments.
type SocialService interface {
	AddFavorite(ctx context.Context, userID, seriesID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, seriesID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)

	RateSeries(ctx context.Context, userID, seriesID uuid.UUID, score int) error

	AddComment(ctx context.Context, userID, chapterID uuid.UUID, body string) (*model.Comment, error)
	ListComments(ctx context.Context, chapterID uuid.UUID, offset, limit int) ([]model.Comment, int64, error)
	DeleteComment(ctx context.Context, actorID uuid.UUID, actorRole string, commentID uuid.UUID) error
}

type socialService struct {
	favorites repository.FavoriteRepository
	ratings   repository.RatingRepository
	comments  repository.CommentRepository
	series    repository.SeriesRepository
	chapters  repository.ChapterRepository
}

// NewSocialService creates a new social service.
func NewSocialService(
	favorites repository.FavoriteRepository,
	ratings repository.RatingRepository,
	comments repository.CommentRepository,
	series repository.SeriesRepository,
	chapters repository.ChapterRepository,
) SocialService {
	return &socialService{
		favorites: favorites,
		ratings:   ratings,
		comments:  comments,
		series:    series,
		chapters:  chapters,
	}
}

// AddFavorite puts a series in the user's library. Idempotent.
func (s *socialService) AddFavorite(ctx context.Context, userID, seriesID uuid.UUID) error {
	if _, err := s.series.FindByID(ctx, seriesID); err != nil {
		return apperrors.ErrNotFound
	}
	return s.favorites.Add(ctx, &model.Favorite{UserID: userID, SeriesID: seriesID})
}

// RemoveFavorite takes a series out of the user's library.
func (s *socialService) RemoveFavorite(ctx context.Context, userID, seriesID uuid.UUID) error {
	return s.favorites.Remove(ctx, userID, seriesID)
}

// ListFavorites returns the user's library, newest first.
func (s *socialService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}

// RateSeries records or overwrites the user's 1-10 score for a series.
func (s *socialService) RateSeries(ctx context.Context, userID, seriesID uuid.UUID, score int) error {
	if score < 1 || score > 10 {
		return fmt.Errorf("score out of range: %d", score)
	}
	if _, err := s.series.FindByID(ctx, seriesID); err != nil {
		return apperrors.ErrNotFound
	}
	return s.ratings.Upsert(ctx, &model.Rating{
		UserID:   userID,
		SeriesID: seriesID,
		Score:    score,
	})
}

// AddComment posts a comment on a chapter.
func (s *socialService) AddComment(ctx context.Context, userID, chapterID uuid.UUID, body string) (*model.Comment, error) {
	if _, err := s.chapters.FindByID(ctx, chapterID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	comment := &model.Comment{
		UserID:    userID,
		ChapterID: chapterID,
		Body:      body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns a page of chapter comments.
func (s *socialService) ListComments(ctx context.Context, chapterID uuid.UUID, offset, limit int) ([]model.Comment, int64, error) {
	return s.comments.ListByChapter(ctx, chapterID, offset, limit)
}

// DeleteComment removes a comment. Only the author or an admin may delete.
func (s *socialService) DeleteComment(ctx context.Context, actorID uuid.UUID, actorRole string, commentID uuid.UUID) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if comment.UserID != actorID && actorRole != model.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return s.comments.Delete(ctx, commentID)
}
