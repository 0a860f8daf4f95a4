package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangahub/internal/model"
)

// FavoriteRepository defines library favorite persistence.
type FavoriteRepository interface {
	Add(ctx context.Context, favorite *model.Favorite) error
	Remove(ctx context.Context, userID, seriesID uuid.UUID) error
	Exists(ctx context.Context, userID, seriesID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts a favorite. Adding twice is a no-op thanks to the unique
// user+series index.
func (r *favoriteRepository) Add(ctx context.Context, favorite *model.Favorite) error {
	err := r.db.WithContext(ctx).Create(favorite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Remove deletes a favorite.
func (r *favoriteRepository) Remove(ctx context.Context, userID, seriesID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND series_id = ?", userID, seriesID).
		Delete(&model.Favorite{}).Error
}

// Exists reports whether the series is in the user's library.
func (r *favoriteRepository) Exists(ctx context.Context, userID, seriesID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND series_id = ?", userID, seriesID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser returns the user's favorites, newest first, with series loaded.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	var favorites []model.Favorite
	if err := r.db.WithContext(ctx).
		Preload("Series").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}
