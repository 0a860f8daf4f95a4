package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "mangahub/internal/errors"
	"mangahub/internal/model"
	"mangahub/internal/password"
)

func TestResetRequestUnknownEmailSilent(t *testing.T) {
	users := new(MockUserRepository)
	resets := new(MockPasswordResetRepository)
	mailer := new(MockMailer)
	sessions := new(MockSessionCache)
	svc := NewPasswordResetService(users, resets, mailer, sessions, time.Hour)

	users.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, gorm.ErrRecordNotFound)

	require.NoError(t, svc.Request(context.Background(), "ghost@x.com"))
	resets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything)
}

func TestResetRequestIssuesToken(t *testing.T) {
	users := new(MockUserRepository)
	resets := new(MockPasswordResetRepository)
	mailer := new(MockMailer)
	sessions := new(MockSessionCache)
	svc := NewPasswordResetService(users, resets, mailer, sessions, time.Hour)

	user := activeUser(t, "Passw0rd")
	users.On("FindByEmail", mock.Anything, "a@x.com").Return(user, nil)

	var created *model.PasswordReset
	resets.On("Create", mock.Anything, mock.AnythingOfType("*model.PasswordReset")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*model.PasswordReset) }).Return(nil)
	mailer.On("SendPasswordReset", "a@x.com", mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, svc.Request(context.Background(), "a@x.com"))
	require.NotNil(t, created)
	assert.Equal(t, user.ID, created.UserID)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), created.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), created.ExpiresAt, time.Minute)
}

func TestResetConfirm(t *testing.T) {
	now := time.Now()
	used := now.Add(-10 * time.Minute)

	tests := []struct {
		name    string
		row     *model.PasswordReset
		findErr error
		wantErr error
	}{
		{
			name: "valid",
			row:  &model.PasswordReset{ID: uuid.New(), UserID: uuid.New(), Token: "tok", ExpiresAt: now.Add(time.Hour)},
		},
		{
			name:    "unknown token",
			findErr: gorm.ErrRecordNotFound,
			wantErr: apperrors.ErrInvalidResetToken,
		},
		{
			name:    "already used",
			row:     &model.PasswordReset{ID: uuid.New(), UserID: uuid.New(), Token: "tok", ExpiresAt: now.Add(time.Hour), UsedAt: &used},
			wantErr: apperrors.ErrInvalidResetToken,
		},
		{
			name:    "expired",
			row:     &model.PasswordReset{ID: uuid.New(), UserID: uuid.New(), Token: "tok", ExpiresAt: now.Add(-time.Minute)},
			wantErr: apperrors.ErrInvalidResetToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			resets := new(MockPasswordResetRepository)
			mailer := new(MockMailer)
			sessions := new(MockSessionCache)
			svc := NewPasswordResetService(users, resets, mailer, sessions, time.Hour)

			if tt.findErr != nil {
				resets.On("FindByToken", mock.Anything, "tok").Return(nil, tt.findErr)
			} else {
				resets.On("FindByToken", mock.Anything, "tok").Return(tt.row, nil)
			}

			var newHash string
			resets.On("ConsumeAndResetPassword", mock.Anything, mock.Anything, mock.Anything, mock.AnythingOfType("string")).
				Run(func(args mock.Arguments) { newHash = args.String(3) }).Return(nil)
			sessions.On("Drop", mock.Anything, mock.Anything).Return(nil)

			err := svc.Confirm(context.Background(), "tok", "NewPass1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				resets.AssertNotCalled(t, "ConsumeAndResetPassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)

			resets.AssertCalled(t, "ConsumeAndResetPassword", mock.Anything, tt.row.ID, tt.row.UserID, newHash)
			ok, err := password.Verify("NewPass1", newHash)
			require.NoError(t, err)
			assert.True(t, ok)
			sessions.AssertCalled(t, "Drop", mock.Anything, tt.row.UserID)
		})
	}
}
