package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles assignable to a user.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account holder. Accounts are soft-banned by clearing
// IsActive; rows are never hard-deleted.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:20;default:'USER';index"`
	IsActive     bool      `json:"is_active" gorm:"default:true;index"`

	EmailVerified      bool       `json:"email_verified" gorm:"default:false"`
	VerificationCode   *string    `json:"-" gorm:"size:6"`
	VerificationSentAt *time.Time `json:"-"`

	BannedAt  *time.Time `json:"banned_at,omitempty"`
	BanReason string     `json:"ban_reason,omitempty" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Profile     *Profile     `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	Preferences *Preferences `json:"preferences,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
