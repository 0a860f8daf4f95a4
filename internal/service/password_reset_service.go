package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"mangahub/internal/auth"
	apperrors "mangahub/internal/errors"
	"mangahub/internal/mail"
	"mangahub/internal/model"
	"mangahub/internal/password"
	"mangahub/internal/repository"
)

// PasswordResetService handles single-use password reset tokens.
type PasswordResetService interface {
	Request(ctx context.Context, email string) error
	Confirm(ctx context.Context, token, newPassword string) error
}

type passwordResetService struct {
	users    repository.UserRepository
	resets   repository.PasswordResetRepository
	mailer   mail.Mailer
	sessions auth.SessionCacheInterface
	tokenTTL time.Duration
}

// NewPasswordResetService creates a new password reset service.
func NewPasswordResetService(
	users repository.UserRepository,
	resets repository.PasswordResetRepository,
	mailer mail.Mailer,
	sessions auth.SessionCacheInterface,
	tokenTTL time.Duration,
) PasswordResetService {
	return &passwordResetService{
		users:    users,
		resets:   resets,
		mailer:   mailer,
		sessions: sessions,
		tokenTTL: tokenTTL,
	}
}

// Request issues a reset token for the address. It reports success whether
// or not the address is registered, so callers cannot probe for accounts.
func (s *passwordResetService) Request(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Unknown address: same outcome as success.
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	reset := &model.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	// A relay failure must not change the response shape either.
	_ = s.mailer.SendPasswordReset(user.Email, token)
	return nil
}

// Confirm redeems a reset token: the password hash update, the token's
// used-at mark, and the revocation of every outstanding refresh token happen
// in one transaction. Used, expired, and unknown tokens fail closed.
func (s *passwordResetService) Confirm(ctx context.Context, token, newPassword string) error {
	row, err := s.resets.FindByToken(ctx, token)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}
	if !row.Usable(time.Now()) {
		return apperrors.ErrInvalidResetToken
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.resets.ConsumeAndResetPassword(ctx, row.ID, row.UserID, hash); err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}

	_ = s.sessions.Drop(ctx, row.UserID)
	return nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
