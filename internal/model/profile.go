package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the public face of a user.
type Profile struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:32;not null"`
	DisplayName string    `json:"display_name" gorm:"size:64"`
	AvatarURL   string    `json:"avatar_url" gorm:"size:512"`
	Bio         string    `json:"bio" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Reading directions supported by the reader.
const (
	DirectionRTL      = "rtl"
	DirectionLTR      = "ltr"
	DirectionVertical = "vertical"
)

// Preferences holds per-user reader settings.
type Preferences struct {
	ID               uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID           uuid.UUID `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	ReadingDirection string    `json:"reading_direction" gorm:"size:10;default:'rtl'"`
	Theme            string    `json:"theme" gorm:"size:10;default:'dark'"`
	PageFit          string    `json:"page_fit" gorm:"size:10;default:'width'"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Preferences) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
