package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangahub/internal/auth"
	apperrors "mangahub/internal/errors"
	"mangahub/internal/model"
	"mangahub/internal/repository"
)

// AdminUser is a user row enriched with session liveness for the console.
type AdminUser struct {
	model.User
	Online bool `json:"online"`
}

// AdminService exposes the user-management side of the admin console.
// Content management goes through CatalogService.
type AdminService interface {
	ListUsers(ctx context.Context, offset, limit int) ([]AdminUser, int64, error)
	BanUser(ctx context.Context, id uuid.UUID, reason string) error
	UnbanUser(ctx context.Context, id uuid.UUID) error
	SetRole(ctx context.Context, id uuid.UUID, role string) error
}

type adminService struct {
	users    repository.UserRepository
	tokens   repository.RefreshTokenRepository
	sessions auth.SessionCacheInterface
}

// NewAdminService creates a new admin service.
func NewAdminService(
	users repository.UserRepository,
	tokens repository.RefreshTokenRepository,
	sessions auth.SessionCacheInterface,
) AdminService {
	return &adminService{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
	}
}

// ListUsers returns a page of users, each flagged online when a live access
// token sits in the session cache.
func (s *adminService) ListUsers(ctx context.Context, offset, limit int) ([]AdminUser, int64, error) {
	users, total, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]AdminUser, 0, len(users))
	for _, u := range users {
		token, _ := s.sessions.Get(ctx, u.ID)
		out = append(out, AdminUser{User: u, Online: token != ""})
	}
	return out, total, nil
}

// BanUser soft-bans the account and kills every live session: refresh
// tokens are revoked and the cached access token is dropped.
func (s *adminService) BanUser(ctx context.Context, id uuid.UUID, reason string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if err := s.users.SetBanned(ctx, id, reason); err != nil {
		return fmt.Errorf("ban user: %w", err)
	}
	if err := s.tokens.RevokeAllForUser(ctx, id); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return s.sessions.Drop(ctx, id)
}

// UnbanUser reactivates the account.
func (s *adminService) UnbanUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return s.users.ClearBanned(ctx, id)
}

// SetRole changes the user's role.
func (s *adminService) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	if role != model.RoleUser && role != model.RoleAdmin {
		return fmt.Errorf("unknown role: %s", role)
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return s.users.SetRole(ctx, id, role)
}
