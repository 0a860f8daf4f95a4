package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordReset is a single-use password reset token. Once UsedAt is set the
// token is permanently inert.
type PasswordReset struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:char(36);index;not null"`
	Token     string     `json:"-" gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (r *PasswordReset) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Usable reports whether the token can still be redeemed.
func (r *PasswordReset) Usable(now time.Time) bool {
	return r.UsedAt == nil && now.Before(r.ExpiresAt)
}
