package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangahub/internal/model"
)

// RefreshTokenRepository defines the refresh token ledger operations.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	// RevokeAndCreate revokes the redeemed token and persists its
	// replacement in one transaction so a crash cannot strand the client
	// with a revoked token and no successor.
	RevokeAndCreate(ctx context.Context, oldID uuid.UUID, next *model.RefreshToken) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository.
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create persists a newly issued refresh token.
func (r *refreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindByToken looks up a ledger row by the literal token string.
func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	var row model.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Revoke marks a token revoked. Idempotent for already-revoked rows.
func (r *refreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now()).Error
}

// RevokeAndCreate atomically rotates a token: revoke the old row, insert
// the new one. Returns gorm.ErrRecordNotFound when the old row is gone or
// already revoked, so two concurrent redemptions of the same token cannot
// both mint a replacement — the loser's UPDATE matches zero rows and the
// whole transaction rolls back.
func (r *refreshTokenRepository) RevokeAndCreate(ctx context.Context, oldID uuid.UUID, next *model.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", oldID).
			Update("revoked_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(next).Error
	})
}

// RevokeAllForUser revokes every live token of the user.
func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now()).Error
}

// DeleteExpired prunes rows whose expiry passed before the cutoff.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&model.RefreshToken{})
	return res.RowsAffected, res.Error
}
