package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzastock/backend/internal/infrastructure/config"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: expiration,
		Issuer:                "pizzastock-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	token, err := svc.Generate("warehouse")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	claims, err := svc.Validate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "warehouse", claims.Username)
	assert.Equal(t, "pizzastock-test", claims.Issuer)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, err := svc.Generate("warehouse")
	require.NoError(t, err)

	_, err = svc.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := newTestJWTService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-signing-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "pizzastock-test",
	})

	token, err := issuer.Generate("warehouse")
	require.NoError(t, err)

	_, err = other.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}

func TestCredentialVerifier(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	verifier := NewCredentialVerifier(config.AuthConfig{
		Username:     "admin",
		PasswordHash: hash,
	})

	assert.NoError(t, verifier.Verify("admin", "correct horse"))
	assert.ErrorIs(t, verifier.Verify("admin", "wrong"), ErrBadCredentials)
	assert.ErrorIs(t, verifier.Verify("intruder", "correct horse"), ErrBadCredentials)
}
