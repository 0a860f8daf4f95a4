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

const catalogCacheTTL = 5 * time.Minute

// SeriesDetail bundles a series with its aggregate rating.
type SeriesDetail struct {
	Series       *model.Series `json:"series"`
	RatingAvg    float64       `json:"rating_avg"`
	RatingVotes  int64         `json:"rating_votes"`
}

// CatalogService exposes the content catalog: series, volumes, chapters,
// and pages. Reads are cached; every mutation invalidates by key pattern.
type CatalogService interface {
	ListSeries(ctx context.Context, query, status string, offset, limit int) ([]model.Series, int64, error)
	GetSeries(ctx context.Context, slug string) (*SeriesDetail, error)
	ListChapters(ctx context.Context, slug string) ([]model.Chapter, error)
	GetChapter(ctx context.Context, id uuid.UUID) (*model.Chapter, error)

	CreateSeries(ctx context.Context, series *model.Series) error
	UpdateSeries(ctx context.Context, series *model.Series) error
	DeleteSeries(ctx context.Context, id uuid.UUID) error
	CreateVolume(ctx context.Context, volume *model.Volume) error
	DeleteVolume(ctx context.Context, id uuid.UUID) error
	CreateChapter(ctx context.Context, chapter *model.Chapter) error
	UpdateChapter(ctx context.Context, chapter *model.Chapter) error
	DeleteChapter(ctx context.Context, id uuid.UUID) error
	SetChapterPages(ctx context.Context, chapterID uuid.UUID, pages []model.Page) error
}

type catalogService struct {
	series   repository.SeriesRepository
	chapters repository.ChapterRepository
	ratings  repository.RatingRepository
	cache    *cache.Client
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	series repository.SeriesRepository,
	chapters repository.ChapterRepository,
	ratings repository.RatingRepository,
	cache *cache.Client,
) CatalogService {
	return &catalogService{
		series:   series,
		chapters: chapters,
		ratings:  ratings,
		cache:    cache,
	}
}

func seriesCacheKey(slug string) string {
	return fmt.Sprintf("series:slug:%s", slug)
}

func chapterCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("chapter:%s", id)
}

// ListSeries returns a filtered catalog page.
func (s *catalogService) ListSeries(ctx context.Context, query, status string, offset, limit int) ([]model.Series, int64, error) {
	return s.series.List(ctx, query, status, offset, limit)
}

// GetSeries returns a series with volumes and aggregate rating, cached by
// slug.
func (s *catalogService) GetSeries(ctx context.Context, slug string) (*SeriesDetail, error) {
	if data, _ := s.cache.Get(ctx, seriesCacheKey(slug)); data != nil {
		var cached SeriesDetail
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	series, err := s.series.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	avg, votes, err := s.ratings.AverageForSeries(ctx, series.ID)
	if err != nil {
		return nil, err
	}

	detail := &SeriesDetail{Series: series, RatingAvg: avg, RatingVotes: votes}
	if payload, err := json.Marshal(detail); err == nil {
		_ = s.cache.Set(ctx, seriesCacheKey(slug), payload, catalogCacheTTL)
	}
	return detail, nil
}

// ListChapters returns the chapter list of a series in reading order.
func (s *catalogService) ListChapters(ctx context.Context, slug string) ([]model.Chapter, error) {
	series, err := s.series.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return s.chapters.ListBySeries(ctx, series.ID)
}

// GetChapter returns a chapter with its pages, cached by ID.
func (s *catalogService) GetChapter(ctx context.Context, id uuid.UUID) (*model.Chapter, error) {
	if data, _ := s.cache.Get(ctx, chapterCacheKey(id)); data != nil {
		var cached model.Chapter
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	chapter, err := s.chapters.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(chapter); err == nil {
		_ = s.cache.Set(ctx, chapterCacheKey(id), payload, catalogCacheTTL)
	}
	return chapter, nil
}

// CreateSeries inserts a series. A colliding slug maps to Conflict.
func (s *catalogService) CreateSeries(ctx context.Context, series *model.Series) error {
	if err := s.series.Create(ctx, series); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicate
		}
		return err
	}
	return nil
}

// UpdateSeries saves a series and invalidates cached catalog entries.
func (s *catalogService) UpdateSeries(ctx context.Context, series *model.Series) error {
	if err := s.series.Update(ctx, series); err != nil {
		return err
	}
	_ = s.cache.DeletePattern(ctx, "series:*")
	return nil
}

// DeleteSeries removes a series tree and invalidates cached entries.
func (s *catalogService) DeleteSeries(ctx context.Context, id uuid.UUID) error {
	if err := s.series.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.DeletePattern(ctx, "series:*")
	_ = s.cache.DeletePattern(ctx, "chapter:*")
	return nil
}

// CreateVolume inserts a volume.
func (s *catalogService) CreateVolume(ctx context.Context, volume *model.Volume) error {
	if err := s.series.CreateVolume(ctx, volume); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicate
		}
		return err
	}
	_ = s.cache.DeletePattern(ctx, "series:*")
	return nil
}

// DeleteVolume removes a volume.
func (s *catalogService) DeleteVolume(ctx context.Context, id uuid.UUID) error {
	if err := s.series.DeleteVolume(ctx, id); err != nil {
		return err
	}
	_ = s.cache.DeletePattern(ctx, "series:*")
	return nil
}

// CreateChapter inserts a chapter.
func (s *catalogService) CreateChapter(ctx context.Context, chapter *model.Chapter) error {
	if err := s.chapters.Create(ctx, chapter); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicate
		}
		return err
	}
	_ = s.cache.DeletePattern(ctx, "series:*")
	return nil
}

// UpdateChapter saves a chapter and invalidates its cached copy.
func (s *catalogService) UpdateChapter(ctx context.Context, chapter *model.Chapter) error {
	if err := s.chapters.Update(ctx, chapter); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, chapterCacheKey(chapter.ID))
	_ = s.cache.DeletePattern(ctx, "series:*")
	return nil
}

// DeleteChapter removes a chapter and its pages.
func (s *catalogService) DeleteChapter(ctx context.Context, id uuid.UUID) error {
	if err := s.chapters.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, chapterCacheKey(id))
	_ = s.cache.DeletePattern(ctx, "series:*")
	return nil
}

// SetChapterPages replaces a chapter's page set.
func (s *catalogService) SetChapterPages(ctx context.Context, chapterID uuid.UUID, pages []model.Page) error {
	if _, err := s.chapters.FindByID(ctx, chapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if err := s.chapters.ReplacePages(ctx, chapterID, pages); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, chapterCacheKey(chapterID))
	return nil
}
