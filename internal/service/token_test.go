package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
)

func TestTokenPair(t *testing.T) {
	svc := service.NewTokenService("secret", time.Hour, 24*time.Hour)
	user := &models.User{ID: 7, Username: "cook", Email: "cook@example.com", IsAdmin: true}

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	access, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), access.UserID)
	assert.Equal(t, "cook", access.Username)
	assert.True(t, access.IsAdmin)
	assert.Equal(t, "7", access.Subject)
	assert.NotEmpty(t, access.ID)

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), refresh.UserID)
	assert.True(t, refresh.IsRefresh())

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestTokenRejections(t *testing.T) {
	svc := service.NewTokenService("secret", time.Hour, time.Hour)
	user := &models.User{ID: 1, Username: "a"}

	expired, err := service.NewTokenService("secret", -time.Minute, time.Hour).GenerateTokenPair(user)
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired.AccessToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	foreign, err := service.NewTokenService("other-secret", time.Hour, time.Hour).GenerateTokenPair(user)
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign.AccessToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": 1, "username": "a"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := service.HashPassword("hunter22", 4)
	require.NoError(t, err)
	assert.True(t, service.CheckPassword(hash, "hunter22"))
	assert.False(t, service.CheckPassword(hash, "hunter23"))
	assert.False(t, service.CheckPassword("not-a-hash", "hunter22"))
}
