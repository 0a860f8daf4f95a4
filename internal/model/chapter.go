package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chapter is a readable unit of a series. Number is fractional to allow
// extras and omakes (e.g. 10.5).
type Chapter struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	SeriesID    uuid.UUID  `json:"series_id" gorm:"type:char(36);index:idx_chapter_series_number,unique;not null"`
	VolumeID    *uuid.UUID `json:"volume_id,omitempty" gorm:"type:char(36);index"`
	Number      float64    `json:"number" gorm:"index:idx_chapter_series_number,unique;not null"`
	Title       string     `json:"title" gorm:"size:255"`
	PageCount   int        `json:"page_count" gorm:"default:0"`
	PublishedAt time.Time  `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Pages []Page `json:"pages,omitempty" gorm:"foreignKey:ChapterID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Chapter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
