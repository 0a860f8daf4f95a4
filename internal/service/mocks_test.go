package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mangahub/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) SetVerificationCode(ctx context.Context, id uuid.UUID, code string, sentAt time.Time) error {
	args := m.Called(ctx, id, code, sentAt)
	return args.Error(0)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) SetBanned(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockUserRepository) ClearBanned(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) FindPreferences(ctx context.Context, userID uuid.UUID) (*model.Preferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Preferences), args.Error(1)
}

func (m *MockUserRepository) SavePreferences(ctx context.Context, prefs *model.Preferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

// MockRefreshTokenRepository is a mock implementation of
// repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAndCreate(ctx context.Context, oldID uuid.UUID, next *model.RefreshToken) error {
	args := m.Called(ctx, oldID, next)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockPasswordResetRepository is a mock implementation of
// repository.PasswordResetRepository.
type MockPasswordResetRepository struct {
	mock.Mock
}

func (m *MockPasswordResetRepository) Create(ctx context.Context, reset *model.PasswordReset) error {
	args := m.Called(ctx, reset)
	return args.Error(0)
}

func (m *MockPasswordResetRepository) FindByToken(ctx context.Context, token string) (*model.PasswordReset, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PasswordReset), args.Error(1)
}

func (m *MockPasswordResetRepository) ConsumeAndResetPassword(ctx context.Context, resetID, userID uuid.UUID, newHash string) error {
	args := m.Called(ctx, resetID, userID, newHash)
	return args.Error(0)
}

// MockSessionCache is a mock implementation of auth.SessionCacheInterface.
type MockSessionCache struct {
	mock.Mock
}

func (m *MockSessionCache) Store(ctx context.Context, userID uuid.UUID, accessToken string, ttl time.Duration) error {
	args := m.Called(ctx, userID, accessToken, ttl)
	return args.Error(0)
}

func (m *MockSessionCache) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionCache) Drop(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationCode(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordReset(to, token string) error {
	args := m.Called(to, token)
	return args.Error(0)
}

// MockChapterRepository is a mock implementation of
// repository.ChapterRepository.
type MockChapterRepository struct {
	mock.Mock
}

func (m *MockChapterRepository) Create(ctx context.Context, chapter *model.Chapter) error {
	args := m.Called(ctx, chapter)
	return args.Error(0)
}

func (m *MockChapterRepository) Update(ctx context.Context, chapter *model.Chapter) error {
	args := m.Called(ctx, chapter)
	return args.Error(0)
}

func (m *MockChapterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChapterRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Chapter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Chapter), args.Error(1)
}

func (m *MockChapterRepository) ListBySeries(ctx context.Context, seriesID uuid.UUID) ([]model.Chapter, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Chapter), args.Error(1)
}

func (m *MockChapterRepository) ReplacePages(ctx context.Context, chapterID uuid.UUID, pages []model.Page) error {
	args := m.Called(ctx, chapterID, pages)
	return args.Error(0)
}

// MockProgressRepository is a mock implementation of
// repository.ProgressRepository.
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Upsert(ctx context.Context, progress *model.Progress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) FindByUserChapter(ctx context.Context, userID, chapterID uuid.UUID) (*model.Progress, error) {
	args := m.Called(ctx, userID, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Progress), args.Error(1)
}

func (m *MockProgressRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Progress, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Progress), args.Error(1)
}

// MockSeriesRepository is a mock of repository.SeriesRepository.
type MockSeriesRepository struct {
	mock.Mock
}

func (m *MockSeriesRepository) Create(ctx context.Context, series *model.Series) error {
	args := m.Called(ctx, series)
	return args.Error(0)
}

func (m *MockSeriesRepository) Update(ctx context.Context, series *model.Series) error {
	args := m.Called(ctx, series)
	return args.Error(0)
}

func (m *MockSeriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSeriesRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Series, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Series), args.Error(1)
}

func (m *MockSeriesRepository) FindBySlug(ctx context.Context, slug string) (*model.Series, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Series), args.Error(1)
}

func (m *MockSeriesRepository) List(ctx context.Context, query, status string, offset, limit int) ([]model.Series, int64, error) {
	args := m.Called(ctx, query, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Series), args.Get(1).(int64), args.Error(2)
}

func (m *MockSeriesRepository) CreateVolume(ctx context.Context, volume *model.Volume) error {
	args := m.Called(ctx, volume)
	return args.Error(0)
}

func (m *MockSeriesRepository) DeleteVolume(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFavoriteRepository is a mock of repository.FavoriteRepository.
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, favorite *model.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, seriesID uuid.UUID) error {
	args := m.Called(ctx, userID, seriesID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, seriesID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, seriesID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Favorite), args.Error(1)
}

// MockRatingRepository is a mock of repository.RatingRepository.
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *model.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) FindByUserSeries(ctx context.Context, userID, seriesID uuid.UUID) (*model.Rating, error) {
	args := m.Called(ctx, userID, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rating), args.Error(1)
}

func (m *MockRatingRepository) AverageForSeries(ctx context.Context, seriesID uuid.UUID) (float64, int64, error) {
	args := m.Called(ctx, seriesID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// MockCommentRepository is a mock of repository.CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByChapter(ctx context.Context, chapterID uuid.UUID, offset, limit int) ([]model.Comment, int64, error) {
	args := m.Called(ctx, chapterID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
