package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "mangahub/internal/errors"
	"mangahub/internal/model"
)

func newSocialService() (SocialService, *MockFavoriteRepository, *MockRatingRepository, *MockCommentRepository, *MockSeriesRepository, *MockChapterRepository) {
	favorites := new(MockFavoriteRepository)
	ratings := new(MockRatingRepository)
	comments := new(MockCommentRepository)
	series := new(MockSeriesRepository)
	chapters := new(MockChapterRepository)
	svc := NewSocialService(favorites, ratings, comments, series, chapters)
	return svc, favorites, ratings, comments, series, chapters
}

func TestAddFavorite(t *testing.T) {
	svc, favorites, _, _, series, _ := newSocialService()

	userID := uuid.New()
	seriesID := uuid.New()
	series.On("FindByID", mock.Anything, seriesID).Return(&model.Series{ID: seriesID}, nil)
	favorites.On("Add", mock.Anything, mock.MatchedBy(func(f *model.Favorite) bool {
		return f.UserID == userID && f.SeriesID == seriesID
	})).Return(nil)

	err := svc.AddFavorite(context.Background(), userID, seriesID)

	assert.NoError(t, err)
	favorites.AssertExpectations(t)
}

func TestAddFavoriteUnknownSeries(t *testing.T) {
	svc, favorites, _, _, series, _ := newSocialService()

	series.On("FindByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	err := svc.AddFavorite(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	favorites.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRateSeries(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		wantErr bool
	}{
		{name: "lowest score", score: 1},
		{name: "highest score", score: 10},
		{name: "zero score", score: 0, wantErr: true},
		{name: "score above range", score: 11, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, ratings, _, series, _ := newSocialService()

			seriesID := uuid.New()
			series.On("FindByID", mock.Anything, seriesID).Return(&model.Series{ID: seriesID}, nil)
			ratings.On("Upsert", mock.Anything, mock.MatchedBy(func(r *model.Rating) bool {
				return r.Score == tt.score
			})).Return(nil)

			err := svc.RateSeries(context.Background(), uuid.New(), seriesID, tt.score)

			if tt.wantErr {
				assert.Error(t, err)
				ratings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				ratings.AssertExpectations(t)
			}
		})
	}
}

func TestAddComment(t *testing.T) {
	svc, _, _, comments, _, chapters := newSocialService()

	userID := uuid.New()
	chapterID := uuid.New()
	chapters.On("FindByID", mock.Anything, chapterID).Return(&model.Chapter{ID: chapterID}, nil)
	comments.On("Create", mock.Anything, mock.Anything).Return(nil)

	comment, err := svc.AddComment(context.Background(), userID, chapterID, "great chapter")

	assert.NoError(t, err)
	assert.Equal(t, userID, comment.UserID)
	assert.Equal(t, chapterID, comment.ChapterID)
	assert.Equal(t, "great chapter", comment.Body)
}

func TestDeleteComment(t *testing.T) {
	author := uuid.New()
	stranger := uuid.New()
	commentID := uuid.New()

	tests := []struct {
		name      string
		actorID   uuid.UUID
		actorRole string
		wantErr   error
	}{
		{name: "author deletes own comment", actorID: author, actorRole: model.RoleUser},
		{name: "admin deletes foreign comment", actorID: stranger, actorRole: model.RoleAdmin},
		{name: "stranger is refused", actorID: stranger, actorRole: model.RoleUser, wantErr: apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, comments, _, _ := newSocialService()

			comments.On("FindByID", mock.Anything, commentID).Return(&model.Comment{
				ID:     commentID,
				UserID: author,
			}, nil)
			comments.On("Delete", mock.Anything, commentID).Return(nil)

			err := svc.DeleteComment(context.Background(), tt.actorID, tt.actorRole, commentID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				comments.AssertExpectations(t)
			}
		})
	}
}

func TestDeleteCommentNotFound(t *testing.T) {
	svc, _, _, comments, _, _ := newSocialService()

	comments.On("FindByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeleteComment(context.Background(), uuid.New(), model.RoleUser, uuid.New())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
