package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page is a single image of a chapter.
type Page struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ChapterID uuid.UUID `json:"chapter_id" gorm:"type:char(36);index:idx_page_chapter_number,unique;not null"`
	Number    int       `json:"number" gorm:"index:idx_page_chapter_number,unique;not null"`
	ImageURL  string    `json:"image_url" gorm:"size:512;not null"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
