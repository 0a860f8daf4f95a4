package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangahub/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, offset, limit int) ([]model.User, int64, error)
	SetVerificationCode(ctx context.Context, id uuid.UUID, code string, sentAt time.Time) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	SetBanned(ctx context.Context, id uuid.UUID, reason string) error
	ClearBanned(ctx context.Context, id uuid.UUID) error
	SetRole(ctx context.Context, id uuid.UUID, role string) error
	FindPreferences(ctx context.Context, userID uuid.UUID) (*model.Preferences, error)
	SavePreferences(ctx context.Context, prefs *model.Preferences) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user together with its nested profile and preferences
// in a single transaction. Duplicate email or username surfaces as
// gorm.ErrDuplicatedKey via the unique constraints.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID with profile and preferences loaded.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").Preload("Preferences").
		Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email with profile loaded.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns a page of users ordered by creation time plus the total count.
func (r *userRepository) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Order("created_at").Offset(offset).Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SetVerificationCode stores a fresh verification code and its send time.
func (r *userRepository) SetVerificationCode(ctx context.Context, id uuid.UUID, code string, sentAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"verification_code":    code,
			"verification_sent_at": sentAt,
		}).Error
}

// MarkEmailVerified flips the verified flag and clears the stored code.
func (r *userRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email_verified":       true,
			"verification_code":    nil,
			"verification_sent_at": nil,
		}).Error
}

// SetBanned deactivates the account and records the ban.
func (r *userRepository) SetBanned(ctx context.Context, id uuid.UUID, reason string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"banned_at":  time.Now(),
			"ban_reason": reason,
		}).Error
}

// ClearBanned reactivates the account and clears the ban metadata.
func (r *userRepository) ClearBanned(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  true,
			"banned_at":  nil,
			"ban_reason": "",
		}).Error
}

// SetRole updates the user's role.
func (r *userRepository) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

// FindPreferences returns the user's reader preferences.
func (r *userRepository) FindPreferences(ctx context.Context, userID uuid.UUID) (*model.Preferences, error) {
	var prefs model.Preferences
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// SavePreferences persists updated reader preferences.
func (r *userRepository) SavePreferences(ctx context.Context, prefs *model.Preferences) error {
	return r.db.WithContext(ctx).Save(prefs).Error
}
