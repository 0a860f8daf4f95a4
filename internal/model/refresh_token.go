package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the persisted ledger entry for an issued refresh token.
// A user may hold several live tokens at once (multi-device); each token is
// single-use and is revoked when redeemed, on logout, or on password reset.
type RefreshToken struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:char(36);index;not null"`
	Token     string     `json:"-" gorm:"size:512;uniqueIndex;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Live reports whether the token can still be redeemed.
func (t *RefreshToken) Live(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
