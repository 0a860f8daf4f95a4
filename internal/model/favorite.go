package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite marks a series as part of a user's library.
type Favorite struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);index:idx_favorite_user_series,unique;not null"`
	SeriesID  uuid.UUID `json:"series_id" gorm:"type:char(36);index:idx_favorite_user_series,unique;not null"`
	CreatedAt time.Time `json:"created_at"`

	Series *Series `json:"series,omitempty" gorm:"foreignKey:SeriesID"`
}

// BeforeCreate sets UUID before creating the record.
func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
