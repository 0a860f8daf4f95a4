package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangahub/internal/model"
)

// ChapterRepository defines chapter and page persistence.
type ChapterRepository interface {
	Create(ctx context.Context, chapter *model.Chapter) error
	Update(ctx context.Context, chapter *model.Chapter) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Chapter, error)
	ListBySeries(ctx context.Context, seriesID uuid.UUID) ([]model.Chapter, error)
	// ReplacePages swaps the chapter's page set and page count atomically.
	ReplacePages(ctx context.Context, chapterID uuid.UUID, pages []model.Page) error
}

type chapterRepository struct {
	db *gorm.DB
}

// NewChapterRepository creates a new chapter repository.
func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

// Create inserts a chapter.
func (r *chapterRepository) Create(ctx context.Context, chapter *model.Chapter) error {
	return r.db.WithContext(ctx).Create(chapter).Error
}

// Update saves a chapter.
func (r *chapterRepository) Update(ctx context.Context, chapter *model.Chapter) error {
	return r.db.WithContext(ctx).Save(chapter).Error
}

// Delete removes a chapter and its pages.
func (r *chapterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chapter_id = ?", id).Delete(&model.Page{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Chapter{}).Error
	})
}

// FindByID finds a chapter with its pages in reading order.
func (r *chapterRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.db.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		Where("id = ?", id).First(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

// ListBySeries returns the chapters of a series in reading order, without
// pages.
func (r *chapterRepository) ListBySeries(ctx context.Context, seriesID uuid.UUID) ([]model.Chapter, error) {
	var chapters []model.Chapter
	if err := r.db.WithContext(ctx).
		Where("series_id = ?", seriesID).
		Order("number").Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

// ReplacePages deletes existing pages, inserts the new set, and refreshes
// the chapter's page count in one transaction.
func (r *chapterRepository) ReplacePages(ctx context.Context, chapterID uuid.UUID, pages []model.Page) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chapter_id = ?", chapterID).Delete(&model.Page{}).Error; err != nil {
			return err
		}
		if len(pages) > 0 {
			for i := range pages {
				pages[i].ChapterID = chapterID
			}
			if err := tx.Create(&pages).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Chapter{}).
			Where("id = ?", chapterID).
			Update("page_count", len(pages)).Error
	})
}
