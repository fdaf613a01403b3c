package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/copywriter/internal/models"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func TestSessionManager_GenerateAndValidate(t *testing.T) {
	manager := NewSessionManager(testSecret, 0)
	user := models.NewUser("alice", "hash")

	token, err := manager.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Name)
	assert.Nil(t, claims.ExpiresAt, "zero TTL must not set an expiry")
}

func TestSessionManager_WithTTL(t *testing.T) {
	manager := NewSessionManager(testSecret, time.Hour)

	token, err := manager.Generate(models.NewUser("alice", "hash"))
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestSessionManager_Expired(t *testing.T) {
	manager := NewSessionManager(testSecret, time.Hour)
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionManager_Rejects(t *testing.T) {
	manager := NewSessionManager(testSecret, 0)
	other := NewSessionManager("a-completely-different-secret-value!!", 0)

	foreign, err := other.Generate(models.NewUser("alice", "hash"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty token", "", ErrMissingToken},
		{"garbage", "not-a-jwt", ErrInvalidToken},
		{"wrong secret", foreign, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Validate(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
