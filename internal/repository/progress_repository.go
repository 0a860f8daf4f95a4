package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mangahub/internal/model"
)

// ProgressRepository defines reading progress persistence.
type ProgressRepository interface {
	Upsert(ctx context.Context, progress *model.Progress) error
	FindByUserChapter(ctx context.Context, userID, chapterID uuid.UUID) (*model.Progress, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Progress, error)
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository creates a new progress repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// Upsert inserts or advances the user's progress for a chapter.
func (r *progressRepository) Upsert(ctx context.Context, progress *model.Progress) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "chapter_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"page_number":  progress.PageNumber,
			"completed_at": progress.CompletedAt,
			"updated_at":   time.Now(),
		}),
	}).Create(progress).Error
}

// FindByUserChapter returns the user's progress for a chapter.
func (r *progressRepository) FindByUserChapter(ctx context.Context, userID, chapterID uuid.UUID) (*model.Progress, error) {
	var progress model.Progress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND chapter_id = ?", userID, chapterID).
		First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListByUser returns the user's most recently touched chapters.
func (r *progressRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Progress, error) {
	var rows []model.Progress
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
