package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := GenerateJWT("operator", "s3cret", time.Hour, "quarry", now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := ParseAndValidateJWT(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
	assert.Equal(t, "quarry", claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	token, _, err := GenerateJWT("operator", "s3cret", time.Hour, "quarry", time.Now())
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, _, err := GenerateJWT("operator", "s3cret", time.Minute, "quarry", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "s3cret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	_, _, err := GenerateJWT("operator", "", time.Hour, "quarry", time.Now())
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("gate-keeper")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("gate-keeper", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
