package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangahub/internal/cache"
	apperrors "mangahub/internal/errors"
	"mangahub/internal/model"
	"mangahub/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes the signed-in user's own account operations.
type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, direction, theme, pageFit string) (*model.Preferences, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// GetMe returns the user with profile and preferences, served from cache
// when warm.
func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, userCacheTTL)
	}
	return user, nil
}

// UpdatePreferences saves the user's reader settings and invalidates the
// cached user.
func (s *userService) UpdatePreferences(ctx context.Context, userID uuid.UUID, direction, theme, pageFit string) (*model.Preferences, error) {
	prefs, err := s.repo.FindPreferences(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	if direction != "" {
		prefs.ReadingDirection = direction
	}
	if theme != "" {
		prefs.Theme = theme
	}
	if pageFit != "" {
		prefs.PageFit = pageFit
	}

	if err := s.repo.SavePreferences(ctx, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return prefs, nil
}
