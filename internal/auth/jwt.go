package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/copywriter/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid or expired session")
	ErrMissingToken = errors.New("session required")
)

// SessionManager issues and validates signed session tokens.
type SessionManager struct {
	secretKey []byte
	ttl       time.Duration
}

// Claims represents the custom JWT claims for a user session.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// NewSessionManager creates a session manager with the given signing secret.
// A zero ttl issues tokens without an expiry; they stay valid until logout
// clears the cookie.
func NewSessionManager(secretKey string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
	}
}

// TTL returns the configured session lifetime (zero means no expiry).
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Generate creates a new session token for the given user.
func (m *SessionManager) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses and validates a session token, returning the claims if valid.
func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
