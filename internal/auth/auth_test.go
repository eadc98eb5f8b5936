package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-rental-api-server/config"
	"vehicle-rental-api-server/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService(config.JWTConfig{})
	assert.Error(t, err)

	_, err = NewService(config.JWTConfig{Secret: "x", Expiration: "not-a-duration"})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	service, err := NewService(config.JWTConfig{Secret: "test-secret", Expiration: "1h"})
	require.NoError(t, err)

	user := &models.User{UserUID: "uid-1", Email: "user@example.com", Role: models.RoleUser}
	token, err := service.GenerateJWT(user)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UserUID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestValidateToken_Rejects(t *testing.T) {
	service, err := NewService(config.JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)

	_, err = service.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with a different secret fails validation.
	other, err := NewService(config.JWTConfig{Secret: "other-secret"})
	require.NoError(t, err)
	token, err := other.GenerateJWT(&models.User{UserUID: "uid-1"})
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	service, err := NewService(config.JWTConfig{Secret: "test-secret", Expiration: "-1h"})
	require.NoError(t, err)

	token, err := service.GenerateJWT(&models.User{UserUID: "uid-1"})
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
