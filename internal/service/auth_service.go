package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangahub/internal/auth"
	apperrors "mangahub/internal/errors"
	"mangahub/internal/model"
	"mangahub/internal/password"
	"mangahub/internal/repository"
)

// TokenPair is the access/refresh pair returned by every credential grant.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles signup, login, refresh rotation, and logout.
type AuthService interface {
	Signup(ctx context.Context, email, username, plaintext string) (*model.User, *TokenPair, error)
	Login(ctx context.Context, email, plaintext string) (*model.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users      repository.UserRepository
	tokens     repository.RefreshTokenRepository
	jwtService *auth.JWTService
	sessions   auth.SessionCacheInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	tokens repository.RefreshTokenRepository,
	jwtService *auth.JWTService,
	sessions auth.SessionCacheInterface,
) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Signup creates a user with profile and preferences in one nested write and
// issues a token pair. Uniqueness is enforced by the database constraints
// alone; a duplicate-key violation is diagnosed afterwards to report which
// field collided.
func (s *authService) Signup(ctx context.Context, email, username, plaintext string) (*model.User, *TokenPair, error) {
	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
		Profile: &model.Profile{
			Username:    username,
			DisplayName: username,
		},
		Preferences: &model.Preferences{
			ReadingDirection: model.DirectionRTL,
			Theme:            "dark",
			PageFit:          "width",
		},
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.users.FindByEmail(ctx, email); lookupErr == nil {
				return nil, nil, apperrors.ErrEmailTaken
			}
			return nil, nil, apperrors.ErrUsernameTaken
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates a user and issues a token pair. Missing users,
// deactivated accounts, and bad passwords all collapse to the same error.
func (s *authService) Login(ctx context.Context, email, plaintext string) (*model.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	ok, err := password.Verify(plaintext, user.PasswordHash)
	if err != nil || !ok {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh redeems a refresh token exactly once: the presented token is
// revoked and a new pair is issued in the same database transaction.
// Revoked, expired, unknown, or tampered tokens all fail closed.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if _, err := s.jwtService.ValidateRefreshToken(refreshToken); err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	row, err := s.tokens.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if !row.Live(time.Now()) {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, row.UserID)
	if err != nil || !user.IsActive {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	tokenID, nextRefresh, expiresAt, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	next := &model.RefreshToken{
		ID:        tokenID,
		UserID:    user.ID,
		Token:     nextRefresh,
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.RevokeAndCreate(ctx, row.ID, next); err != nil {
		// Lost the race against a concurrent redemption of the same token.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Role, profileID(user))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	_ = s.sessions.Store(ctx, user.ID, accessToken, s.jwtService.AccessTTL())

	return &TokenPair{AccessToken: accessToken, RefreshToken: nextRefresh}, nil
}

// Logout revokes the presented refresh token and drops the session cache
// entry. Unknown or malformed tokens are ignored; logout always succeeds.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	row, err := s.tokens.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil
	}
	if err := s.tokens.Revoke(ctx, row.ID); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return s.sessions.Drop(ctx, row.UserID)
}

// issuePair mints an access/refresh pair, persists the refresh token in the
// ledger, and caches the access token. Ledger persistence failure is fatal;
// the cache write is best-effort.
func (s *authService) issuePair(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Role, profileID(user))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, expiresAt, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	row := &model.RefreshToken{
		ID:        tokenID,
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	_ = s.sessions.Store(ctx, user.ID, accessToken, s.jwtService.AccessTTL())

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func profileID(user *model.User) uuid.UUID {
	if user.Profile != nil {
		return user.Profile.ID
	}
	return uuid.Nil
}
