package utils_test

import (
	"testing"
	"time"

	"github.com/bookshare/bookshare_backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret"
	token, err := utils.GenerateJWT("user-123", "admin", secret, time.Hour, "bookshare-backend")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "bookshare-backend", claims.Issuer)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT("user-123", "user", "right-secret", time.Hour, "bookshare-backend")
	require.NoError(t, err)

	_, err = utils.ParseJWT(token, "wrong-secret")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := utils.GenerateJWT("user-123", "user", "secret", -time.Minute, "bookshare-backend")
	require.NoError(t, err)

	_, err = utils.ParseJWT(token, "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := utils.ParseJWT("not-a-token", "secret")
	assert.Error(t, err)
}
