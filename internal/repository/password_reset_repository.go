package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangahub/internal/model"
)

// PasswordResetRepository defines password reset token persistence.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *model.PasswordReset) error
	FindByToken(ctx context.Context, token string) (*model.PasswordReset, error)
	// ConsumeAndResetPassword performs the credential change as one
	// all-or-nothing transaction: update the password hash, mark the reset
	// token used, and revoke every refresh token the user holds.
	ConsumeAndResetPassword(ctx context.Context, resetID, userID uuid.UUID, newHash string) error
}

type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new password reset repository.
func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Create persists a newly issued reset token.
func (r *passwordResetRepository) Create(ctx context.Context, reset *model.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

// FindByToken looks up a reset row by token.
func (r *passwordResetRepository) FindByToken(ctx context.Context, token string) (*model.PasswordReset, error) {
	var row model.PasswordReset
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ConsumeAndResetPassword executes the three-part credential change in a
// single database transaction.
func (r *passwordResetRepository) ConsumeAndResetPassword(ctx context.Context, resetID, userID uuid.UUID, newHash string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("password_hash", newHash).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.PasswordReset{}).
			Where("id = ? AND used_at IS NULL", resetID).
			Update("used_at", now).Error; err != nil {
			return err
		}
		return tx.Model(&model.RefreshToken{}).
			Where("user_id = ? AND revoked_at IS NULL", userID).
			Update("revoked_at", now).Error
	})
}
