package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()
	profileID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "ADMIN", profileID)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, profileID.String(), claims.ProfileID)
}

func TestRefreshTokenCarriesLedgerID(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	tokenID, token, expiresAt, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID.String(), claims.ID)
	assert.Equal(t, userID.String(), claims.UserID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	other := NewJWTService("other-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "USER", uuid.New())
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute)

	token, err := svc.GenerateAccessToken(uuid.New(), "USER", uuid.New())
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)

	_, refresh, _, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(refresh)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	_, err := svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
	_, err = svc.ValidateRefreshToken("")
	assert.Error(t, err)
}
