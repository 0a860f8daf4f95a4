package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Progress tracks how far a user has read a chapter. One row per user per
// chapter, upserted as the reader advances. CompletedAt is set when the last
// page is reached.
type Progress struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:char(36);index:idx_progress_user_chapter,unique;not null"`
	ChapterID   uuid.UUID  `json:"chapter_id" gorm:"type:char(36);index:idx_progress_user_chapter,unique;not null"`
	SeriesID    uuid.UUID  `json:"series_id" gorm:"type:char(36);index;not null"`
	PageNumber  int        `json:"page_number" gorm:"default:0"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
