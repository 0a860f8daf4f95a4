package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Publication status of a series.
const (
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusHiatus    = "hiatus"
)

// Series is a manga or comic title in the catalog.
type Series struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:128;not null"`
	Title       string    `json:"title" gorm:"size:255;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	Author      string    `json:"author" gorm:"size:128;index"`
	Artist      string    `json:"artist" gorm:"size:128"`
	Status      string    `json:"status" gorm:"size:16;default:'ongoing';index"`
	CoverURL    string    `json:"cover_url" gorm:"size:512"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Volumes  []Volume  `json:"volumes,omitempty" gorm:"foreignKey:SeriesID"`
	Chapters []Chapter `json:"chapters,omitempty" gorm:"foreignKey:SeriesID"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Series) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
