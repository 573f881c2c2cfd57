package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_UsesConfiguredTTL(t *testing.T) {
	ttl := 2 * time.Hour
	tm := NewTokenManager("test-secret", ttl)

	userID := uuid.New()
	start := time.Now()

	token, err := tm.GenerateToken(userID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("agent"))
	assert.WithinDuration(t, start.Add(ttl), claims.ExpiresAt.Time, 2*time.Second)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	token, err := tm.GenerateToken(uuid.New(), "agent")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, 2*time.Second)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	claims := &Claims{
		UserID: uuid.New(),
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_RejectsNoneAlgorithm(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New(), Role: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.Error(t, err)
}
