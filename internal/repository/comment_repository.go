package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangahub/internal/model"
)

// CommentRepository defines chapter comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByChapter(ctx context.Context, chapterID uuid.UUID, offset, limit int) ([]model.Comment, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a comment.
func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByID finds a comment by ID.
func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByChapter returns a page of comments, newest first, with the author
// profile loaded.
func (r *commentRepository) ListByChapter(ctx context.Context, chapterID uuid.UUID, offset, limit int) ([]model.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("chapter_id = ?", chapterID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("chapter_id = ?", chapterID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// Delete soft-deletes a comment.
func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{}).Error
}
