package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a user remark on a chapter. Deleted comments are soft-deleted
// so moderation history survives.
type Comment struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:char(36);index;not null"`
	ChapterID uuid.UUID      `json:"chapter_id" gorm:"type:char(36);index;not null"`
	Body      string         `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Author *Profile `json:"author,omitempty" gorm:"foreignKey:UserID;references:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
