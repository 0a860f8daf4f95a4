package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Volume groups chapters of a series.
type Volume struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	SeriesID  uuid.UUID `json:"series_id" gorm:"type:char(36);index:idx_volume_series_number,unique;not null"`
	Number    int       `json:"number" gorm:"index:idx_volume_series_number,unique;not null"`
	Title     string    `json:"title" gorm:"size:255"`
	CoverURL  string    `json:"cover_url" gorm:"size:512"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (v *Volume) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
