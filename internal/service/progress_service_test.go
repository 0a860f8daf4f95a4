package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mangahub/internal/cache"
	apperrors "mangahub/internal/errors"
	"mangahub/internal/model"
)

// A nil cache client is valid: every cache call becomes a no-op.
var noCache *cache.Client

func TestSaveProgressMidChapter(t *testing.T) {
	progress := new(MockProgressRepository)
	chapters := new(MockChapterRepository)
	svc := NewProgressService(progress, chapters, noCache)

	chapter := &model.Chapter{ID: uuid.New(), SeriesID: uuid.New(), PageCount: 20}
	chapters.On("FindByID", mock.Anything, chapter.ID).Return(chapter, nil)
	progress.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Progress")).Return(nil)

	userID := uuid.New()
	row, err := svc.SaveProgress(context.Background(), userID, chapter.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, row.PageNumber)
	assert.Equal(t, chapter.SeriesID, row.SeriesID)
	assert.Nil(t, row.CompletedAt)
}

func TestSaveProgressClampsAndCompletes(t *testing.T) {
	progress := new(MockProgressRepository)
	chapters := new(MockChapterRepository)
	svc := NewProgressService(progress, chapters, noCache)

	chapter := &model.Chapter{ID: uuid.New(), SeriesID: uuid.New(), PageCount: 20}
	chapters.On("FindByID", mock.Anything, chapter.ID).Return(chapter, nil)
	progress.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	row, err := svc.SaveProgress(context.Background(), uuid.New(), chapter.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 20, row.PageNumber)
	assert.NotNil(t, row.CompletedAt)
}

func TestSaveProgressNegativePage(t *testing.T) {
	progress := new(MockProgressRepository)
	chapters := new(MockChapterRepository)
	svc := NewProgressService(progress, chapters, noCache)

	chapter := &model.Chapter{ID: uuid.New(), SeriesID: uuid.New(), PageCount: 20}
	chapters.On("FindByID", mock.Anything, chapter.ID).Return(chapter, nil)
	progress.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	row, err := svc.SaveProgress(context.Background(), uuid.New(), chapter.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, row.PageNumber)
	assert.Nil(t, row.CompletedAt)
}

func TestSaveProgressUnknownChapter(t *testing.T) {
	progress := new(MockProgressRepository)
	chapters := new(MockChapterRepository)
	svc := NewProgressService(progress, chapters, noCache)

	chapterID := uuid.New()
	chapters.On("FindByID", mock.Anything, chapterID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SaveProgress(context.Background(), uuid.New(), chapterID, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	progress.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestListProgress(t *testing.T) {
	progress := new(MockProgressRepository)
	chapters := new(MockChapterRepository)
	svc := NewProgressService(progress, chapters, noCache)

	userID := uuid.New()
	rows := []model.Progress{{ID: uuid.New(), UserID: userID, PageNumber: 3}}
	progress.On("ListByUser", mock.Anything, userID, progressListLimit).Return(rows, nil)

	got, err := svc.ListProgress(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
