package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mangahub/internal/model"
)

// RatingRepository defines series rating persistence.
type RatingRepository interface {
	Upsert(ctx context.Context, rating *model.Rating) error
	FindByUserSeries(ctx context.Context, userID, seriesID uuid.UUID) (*model.Rating, error)
	AverageForSeries(ctx context.Context, seriesID uuid.UUID) (avg float64, count int64, err error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts the rating or overwrites the score of an existing one.
func (r *ratingRepository) Upsert(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "series_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":      rating.Score,
			"updated_at": time.Now(),
		}),
	}).Create(rating).Error
}

// FindByUserSeries returns the user's rating for a series.
func (r *ratingRepository) FindByUserSeries(ctx context.Context, userID, seriesID uuid.UUID) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND series_id = ?", userID, seriesID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// AverageForSeries returns the mean score and vote count for a series.
func (r *ratingRepository) AverageForSeries(ctx context.Context, seriesID uuid.UUID) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("COALESCE(AVG(score), 0) AS avg, COUNT(*) AS count").
		Where("series_id = ?", seriesID).
		Scan(&result).Error
	return result.Avg, result.Count, err
}
