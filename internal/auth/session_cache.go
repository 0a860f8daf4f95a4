package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mangahub/internal/cache"
)

const sessionKeyPrefix = "session:access:"

// SessionCacheInterface defines the session cache operations.
type SessionCacheInterface interface {
	Store(ctx context.Context, userID uuid.UUID, accessToken string, ttl time.Duration) error
	Get(ctx context.Context, userID uuid.UUID) (string, error)
	Drop(ctx context.Context, userID uuid.UUID) error
}

// SessionCache keeps the latest access token per user in Redis. It is a
// best-effort accelerator: token verification never depends on it, so a cold
// or unreachable cache cannot affect authorization.
type SessionCache struct {
	cache *cache.Client
}

// Ensure SessionCache implements SessionCacheInterface
var _ SessionCacheInterface = (*SessionCache)(nil)

// NewSessionCache creates a new session cache.
func NewSessionCache(cache *cache.Client) *SessionCache {
	return &SessionCache{cache: cache}
}

// Store records the user's latest access token with a TTL matching the
// access token lifetime.
func (s *SessionCache) Store(ctx context.Context, userID uuid.UUID, accessToken string, ttl time.Duration) error {
	key := sessionKeyPrefix + userID.String()
	return s.cache.Set(ctx, key, []byte(accessToken), ttl)
}

// Get returns the user's cached access token, or empty if absent.
func (s *SessionCache) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	key := sessionKeyPrefix + userID.String()
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return "", nil
	}
	return string(data), nil
}

// Drop removes the user's cached access token.
func (s *SessionCache) Drop(ctx context.Context, userID uuid.UUID) error {
	key := sessionKeyPrefix + userID.String()
	return s.cache.Delete(ctx, key)
}
