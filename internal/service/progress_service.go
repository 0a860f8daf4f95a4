package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangahub/internal/cache"
	apperrors "mangahub/internal/errors"
	"mangahub/internal/model"
	"mangahub/internal/repository"
)

const (
	progressCacheTTL  = 2 * time.Minute
	progressListLimit = 50
)

// ProgressService tracks how far a user has read each chapter.
type ProgressService interface {
	SaveProgress(ctx context.Context, userID, chapterID uuid.UUID, pageNumber int) (*model.Progress, error)
	GetProgress(ctx context.Context, userID, chapterID uuid.UUID) (*model.Progress, error)
	ListProgress(ctx context.Context, userID uuid.UUID) ([]model.Progress, error)
}

type progressService struct {
	progress repository.ProgressRepository
	chapters repository.ChapterRepository
	cache    *cache.Client
}

// NewProgressService creates a new progress service.
func NewProgressService(
	progress repository.ProgressRepository,
	chapters repository.ChapterRepository,
	cache *cache.Client,
) ProgressService {
	return &progressService{
		progress: progress,
		chapters: chapters,
		cache:    cache,
	}
}

func progressCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("progress:user:%s", userID)
}

// SaveProgress upserts the user's position in a chapter. The page number is
// clamped to the chapter's page count; reaching the last page marks the
// chapter completed. The user's cached progress list is invalidated by
// pattern.
func (s *progressService) SaveProgress(ctx context.Context, userID, chapterID uuid.UUID, pageNumber int) (*model.Progress, error) {
	chapter, err := s.chapters.FindByID(ctx, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if pageNumber < 0 {
		pageNumber = 0
	}
	if chapter.PageCount > 0 && pageNumber > chapter.PageCount {
		pageNumber = chapter.PageCount
	}

	progress := &model.Progress{
		UserID:     userID,
		ChapterID:  chapterID,
		SeriesID:   chapter.SeriesID,
		PageNumber: pageNumber,
	}
	if chapter.PageCount > 0 && pageNumber >= chapter.PageCount {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := s.progress.Upsert(ctx, progress); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	_ = s.cache.DeletePattern(ctx, progressCacheKey(userID)+"*")
	return progress, nil
}

// GetProgress returns the user's position in a chapter.
func (s *progressService) GetProgress(ctx context.Context, userID, chapterID uuid.UUID) (*model.Progress, error) {
	progress, err := s.progress.FindByUserChapter(ctx, userID, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return progress, nil
}

// ListProgress returns the user's recently read chapters, cached briefly.
func (s *progressService) ListProgress(ctx context.Context, userID uuid.UUID) ([]model.Progress, error) {
	if data, _ := s.cache.Get(ctx, progressCacheKey(userID)); data != nil {
		var cached []model.Progress
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := s.progress.ListByUser(ctx, userID, progressListLimit)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rows); err == nil {
		_ = s.cache.Set(ctx, progressCacheKey(userID), payload, progressCacheTTL)
	}
	return rows, nil
}
