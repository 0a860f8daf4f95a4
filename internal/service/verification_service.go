package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	apperrors "mangahub/internal/errors"
	"mangahub/internal/mail"
	"mangahub/internal/repository"
)

const verifyCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// devBypassCode is only honored when the bypass flag is enabled in config.
const devBypassCode = "000000"

// VerificationService handles the email verification flow: a 6-character
// code with a resend cooldown and a 24-hour validity window.
type VerificationService interface {
	Request(ctx context.Context, userID uuid.UUID) error
	Confirm(ctx context.Context, userID uuid.UUID, code string) error
}

type verificationService struct {
	users        repository.UserRepository
	mailer       mail.Mailer
	resendWindow time.Duration
	codeTTL      time.Duration
	devBypass    bool
}

// NewVerificationService creates a new verification service.
func NewVerificationService(
	users repository.UserRepository,
	mailer mail.Mailer,
	resendWindow, codeTTL time.Duration,
	devBypass bool,
) VerificationService {
	return &verificationService{
		users:        users,
		mailer:       mailer,
		resendWindow: resendWindow,
		codeTTL:      codeTTL,
		devBypass:    devBypass,
	}
}

// Request generates and emails a fresh verification code. Requests inside
// the resend cooldown are rejected; verified users get Conflict.
func (s *verificationService) Request(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrNotFound
	}
	if user.EmailVerified {
		return apperrors.ErrAlreadyVerified
	}
	if user.VerificationSentAt != nil && time.Since(*user.VerificationSentAt) < s.resendWindow {
		return apperrors.ErrVerifyCooldown
	}

	code, err := generateVerifyCode()
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}
	// Send before storing: a failed send must not arm the resend cooldown,
	// or a transient SMTP error would lock the user out of retrying.
	if err := s.mailer.SendVerificationCode(user.Email, code); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	if err := s.users.SetVerificationCode(ctx, user.ID, code, time.Now()); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}
	return nil
}

// Confirm checks the submitted code against the stored one and its 24-hour
// window, then marks the email verified and clears the code.
func (s *verificationService) Confirm(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrNotFound
	}
	if user.EmailVerified {
		return apperrors.ErrAlreadyVerified
	}

	if !s.devBypass || code != devBypassCode {
		if user.VerificationCode == nil || *user.VerificationCode != code {
			return apperrors.ErrInvalidVerifyCode
		}
		if user.VerificationSentAt == nil || time.Since(*user.VerificationSentAt) > s.codeTTL {
			return apperrors.ErrInvalidVerifyCode
		}
	}

	if err := s.users.MarkEmailVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

func generateVerifyCode() (string, error) {
	// rand.Int keeps the draw uniform over the alphabet; a byte modulo 36
	// would overweight the first few characters.
	alphabet := big.NewInt(int64(len(verifyCodeChars)))
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabet)
		if err != nil {
			return "", err
		}
		code[i] = verifyCodeChars[n.Int64()]
	}
	return string(code), nil
}
