package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "mangahub/internal/errors"
	"mangahub/internal/model"
)

func unverifiedUser(code string, sentAt time.Time) *model.User {
	user := &model.User{
		ID:       uuid.New(),
		Email:    "a@x.com",
		IsActive: true,
	}
	if code != "" {
		user.VerificationCode = &code
		user.VerificationSentAt = &sentAt
	}
	return user
}

func TestVerificationRequest(t *testing.T) {
	users := new(MockUserRepository)
	mailer := new(MockMailer)
	svc := NewVerificationService(users, mailer, time.Minute, 24*time.Hour, false)

	user := unverifiedUser("", time.Time{})
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	var issued string
	users.On("SetVerificationCode", mock.Anything, user.ID, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) { issued = args.String(2) }).Return(nil)
	mailer.On("SendVerificationCode", "a@x.com", mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, svc.Request(context.Background(), user.ID))
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), issued)
	mailer.AssertCalled(t, "SendVerificationCode", "a@x.com", issued)
}

func TestVerificationRequestCooldown(t *testing.T) {
	users := new(MockUserRepository)
	mailer := new(MockMailer)
	svc := NewVerificationService(users, mailer, time.Minute, 24*time.Hour, false)

	user := unverifiedUser("ABC123", time.Now().Add(-30*time.Second))
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.Request(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrVerifyCooldown)
	users.AssertNotCalled(t, "SetVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerificationRequestAfterCooldown(t *testing.T) {
	users := new(MockUserRepository)
	mailer := new(MockMailer)
	svc := NewVerificationService(users, mailer, time.Minute, 24*time.Hour, false)

	user := unverifiedUser("ABC123", time.Now().Add(-2*time.Minute))
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("SetVerificationCode", mock.Anything, user.ID, mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendVerificationCode", "a@x.com", mock.Anything).Return(nil)

	assert.NoError(t, svc.Request(context.Background(), user.ID))
}

func TestVerificationRequestMailFailureDoesNotArmCooldown(t *testing.T) {
	users := new(MockUserRepository)
	mailer := new(MockMailer)
	svc := NewVerificationService(users, mailer, time.Minute, 24*time.Hour, false)

	user := unverifiedUser("", time.Time{})
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	mailer.On("SendVerificationCode", "a@x.com", mock.Anything).Return(errors.New("smtp: connection refused"))

	err := svc.Request(context.Background(), user.ID)

	// The code is only stored after a successful send; a transient relay
	// failure leaves the user free to retry immediately.
	assert.Error(t, err)
	users.AssertNotCalled(t, "SetVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyCodeUniform(t *testing.T) {
	const draws = 20000
	counts := make(map[byte]int, len(verifyCodeChars))
	for i := 0; i < draws; i++ {
		code, err := generateVerifyCode()
		require.NoError(t, err)
		require.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), code)
		for j := 0; j < len(code); j++ {
			counts[code[j]]++
		}
	}

	// Every character should land within 10% of the uniform expectation;
	// a byte-modulo draw overweights the first four characters by ~14%.
	expected := float64(draws*6) / float64(len(verifyCodeChars))
	for i := 0; i < len(verifyCodeChars); i++ {
		n := float64(counts[verifyCodeChars[i]])
		assert.InDelta(t, expected, n, expected*0.10, "character %c drawn %v times", verifyCodeChars[i], n)
	}
}

func TestVerificationRequestAlreadyVerified(t *testing.T) {
	users := new(MockUserRepository)
	mailer := new(MockMailer)
	svc := NewVerificationService(users, mailer, time.Minute, 24*time.Hour, false)

	user := unverifiedUser("", time.Time{})
	user.EmailVerified = true
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.Request(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVerified)
}

func TestVerificationConfirm(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		sentAgo time.Duration
		submit  string
		wantErr error
	}{
		{name: "match", stored: "ABC123", sentAgo: time.Hour, submit: "ABC123"},
		{name: "mismatch", stored: "ABC123", sentAgo: time.Hour, submit: "XYZ789", wantErr: apperrors.ErrInvalidVerifyCode},
		{name: "expired", stored: "ABC123", sentAgo: 25 * time.Hour, submit: "ABC123", wantErr: apperrors.ErrInvalidVerifyCode},
		{name: "no code stored", submit: "ABC123", wantErr: apperrors.ErrInvalidVerifyCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			mailer := new(MockMailer)
			svc := NewVerificationService(users, mailer, time.Minute, 24*time.Hour, false)

			user := unverifiedUser(tt.stored, time.Now().Add(-tt.sentAgo))
			users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
			users.On("MarkEmailVerified", mock.Anything, user.ID).Return(nil)

			err := svc.Confirm(context.Background(), user.ID, tt.submit)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				users.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			users.AssertCalled(t, "MarkEmailVerified", mock.Anything, user.ID)
		})
	}
}

func TestVerificationDevBypass(t *testing.T) {
	// Flag on: sentinel code verifies without a stored code.
	users := new(MockUserRepository)
	mailer := new(MockMailer)
	svc := NewVerificationService(users, mailer, time.Minute, 24*time.Hour, true)

	user := unverifiedUser("ABC123", time.Now())
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("MarkEmailVerified", mock.Anything, user.ID).Return(nil)
	require.NoError(t, svc.Confirm(context.Background(), user.ID, "000000"))

	// Flag off (default): the sentinel is just a wrong code.
	users = new(MockUserRepository)
	svc = NewVerificationService(users, mailer, time.Minute, 24*time.Hour, false)
	user = unverifiedUser("ABC123", time.Now())
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.Confirm(context.Background(), user.ID, "000000")
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerifyCode)
}
