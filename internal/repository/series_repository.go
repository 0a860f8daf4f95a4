package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangahub/internal/model"
)

// SeriesRepository defines catalog series persistence.
type SeriesRepository interface {
	Create(ctx context.Context, series *model.Series) error
	Update(ctx context.Context, series *model.Series) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Series, error)
	FindBySlug(ctx context.Context, slug string) (*model.Series, error)
	List(ctx context.Context, query, status string, offset, limit int) ([]model.Series, int64, error)
	CreateVolume(ctx context.Context, volume *model.Volume) error
	DeleteVolume(ctx context.Context, id uuid.UUID) error
}

type seriesRepository struct {
	db *gorm.DB
}

// NewSeriesRepository creates a new series repository.
func NewSeriesRepository(db *gorm.DB) SeriesRepository {
	return &seriesRepository{db: db}
}

// Create inserts a series.
func (r *seriesRepository) Create(ctx context.Context, series *model.Series) error {
	return r.db.WithContext(ctx).Create(series).Error
}

// Update saves a series.
func (r *seriesRepository) Update(ctx context.Context, series *model.Series) error {
	return r.db.WithContext(ctx).Save(series).Error
}

// Delete removes a series and its volumes, chapters, and pages.
func (r *seriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chapter_id IN (?)",
			tx.Model(&model.Chapter{}).Select("id").Where("series_id = ?", id),
		).Delete(&model.Page{}).Error; err != nil {
			return err
		}
		if err := tx.Where("series_id = ?", id).Delete(&model.Chapter{}).Error; err != nil {
			return err
		}
		if err := tx.Where("series_id = ?", id).Delete(&model.Volume{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Series{}).Error
	})
}

// FindByID finds a series by ID.
func (r *seriesRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Series, error) {
	var series model.Series
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&series).Error; err != nil {
		return nil, err
	}
	return &series, nil
}

// FindBySlug finds a series by slug with its volumes loaded.
func (r *seriesRepository) FindBySlug(ctx context.Context, slug string) (*model.Series, error) {
	var series model.Series
	if err := r.db.WithContext(ctx).
		Preload("Volumes", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		Where("slug = ?", slug).First(&series).Error; err != nil {
		return nil, err
	}
	return &series, nil
}

// List returns a page of series matching the optional title query and
// status filter, plus the total count.
func (r *seriesRepository) List(ctx context.Context, query, status string, offset, limit int) ([]model.Series, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Series{})
	if query != "" {
		q = q.Where("title LIKE ?", "%"+query+"%")
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var series []model.Series
	if err := q.Order("title").Offset(offset).Limit(limit).Find(&series).Error; err != nil {
		return nil, 0, err
	}
	return series, total, nil
}

// CreateVolume inserts a volume.
func (r *seriesRepository) CreateVolume(ctx context.Context, volume *model.Volume) error {
	return r.db.WithContext(ctx).Create(volume).Error
}

// DeleteVolume removes a volume, detaching its chapters.
func (r *seriesRepository) DeleteVolume(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Chapter{}).
			Where("volume_id = ?", id).
			Update("volume_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Volume{}).Error
	})
}
