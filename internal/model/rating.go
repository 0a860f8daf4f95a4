package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is a user's 1-10 score for a series. One rating per user per
// series; re-rating overwrites the score.
type Rating struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);index:idx_rating_user_series,unique;not null"`
	SeriesID  uuid.UUID `json:"series_id" gorm:"type:char(36);index:idx_rating_user_series,unique;not null"`
	Score     int       `json:"score" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
