package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"servigo-backend/internal/security"
)

func TestTokenManager_AccessTokenRoundTrip(t *testing.T) {
	tm := security.NewTokenManager("unit-test-secret", 15*time.Minute, 24*time.Hour)

	token, err := tm.GenerateAccessToken(7, "user@test.com", []string{"provider", "admin"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, security.TokenTypeAccess, claims.Type)
	assert.True(t, claims.IsAdmin())
}

func TestTokenManager_RefreshTokenType(t *testing.T) {
	tm := security.NewTokenManager("unit-test-secret", 15*time.Minute, 24*time.Hour)

	token, err := tm.GenerateRefreshToken(7, "user@test.com")
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, security.TokenTypeRefresh, claims.Type)
	assert.False(t, claims.IsAdmin())
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	issuer := security.NewTokenManager("secret-a", 15*time.Minute, 24*time.Hour)
	verifier := security.NewTokenManager("secret-b", 15*time.Minute, 24*time.Hour)

	token, err := issuer.GenerateAccessToken(7, "user@test.com", nil)
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm := security.NewTokenManager("unit-test-secret", -time.Minute, 24*time.Hour)

	token, err := tm.GenerateAccessToken(7, "user@test.com", nil)
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrExpiredToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := security.NewTokenManager("unit-test-secret", 15*time.Minute, 24*time.Hour)

	_, err := tm.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
