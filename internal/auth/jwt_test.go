package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexhub_backend/internal/config"
)

func setupTestConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-unit-tests")
	config.AppConfig = nil
	config.LoadConfig()
}

func TestGenerateAndParseToken(t *testing.T) {
	setupTestConfig(t)

	token, err := GenerateToken("user-123", "LAWYER")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "LAWYER", claims.Role)
}

func TestParseToken_Invalid(t *testing.T) {
	setupTestConfig(t)

	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_WrongSecret(t *testing.T) {
	setupTestConfig(t)

	token, err := GenerateToken("user-123", "CLIENT")
	require.NoError(t, err)

	// Re-load config with another secret; the old token must be rejected.
	t.Setenv("JWT_SECRET", "a-different-secret")
	config.AppConfig = nil
	config.LoadConfig()

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGenerateRandomToken_Unique(t *testing.T) {
	a := GenerateRandomToken()
	b := GenerateRandomToken()
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
}
