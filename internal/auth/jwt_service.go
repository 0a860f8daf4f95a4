package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// AccessClaims are the stateless claims carried by an access token.
type AccessClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	ProfileID string `json:"profile_id,omitempty"`
	jwt.RegisteredClaims
}

// UserUUID parses the subject user ID.
func (c *AccessClaims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// RefreshClaims are the claims carried by a refresh token. The registered
// ID (jti) matches the primary key of the persisted ledger row.
type RefreshClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService creates a new JWT service with the given secret and lifetimes.
func NewJWTService(secret string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the access token lifetime.
func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

// GenerateAccessToken generates a short-lived access token for the user.
func (s *JWTService) GenerateAccessToken(userID uuid.UUID, role string, profileID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		UserID:    userID.String(),
		Role:      role,
		ProfileID: profileID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GenerateRefreshToken generates a long-lived refresh token. The token ID
// and expiry are returned for persistence in the refresh token ledger.
func (s *JWTService) GenerateRefreshToken(userID uuid.UUID) (tokenID uuid.UUID, token string, expiresAt time.Time, err error) {
	tokenID = uuid.New()
	now := time.Now()
	expiresAt = now.Add(s.refreshTTL)
	claims := &RefreshClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(s.secret)
	return tokenID, token, expiresAt, err
}

// ValidateAccessToken validates an access token and returns its claims.
// Any parse or signature failure is reported uniformly as an error; callers
// translate it to Unauthorized.
func (s *JWTService) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ValidateRefreshToken validates a refresh token and returns its claims.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("token ID not found")
	}
	return claims, nil
}

func (s *JWTService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
