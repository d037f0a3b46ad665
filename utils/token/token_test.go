package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	tokenString, err := GenerateToken(userID, "alice", TypeAccess, secret, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := ValidateToken(tokenString, secret)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, TypeAccess, claims.TokenType)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	tokenString, err := GenerateToken(uuid.New(), "alice", TypeAccess, []byte("test-secret"), time.Hour)
	assert.NoError(t, err)

	_, err = ValidateToken(tokenString, []byte("other-secret"))
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	tokenString, err := GenerateToken(uuid.New(), "alice", TypeAccess, secret, -time.Minute)
	assert.NoError(t, err)

	_, err = ValidateToken(tokenString, secret)
	assert.Error(t, err)
}

func TestRefreshTokenCarriesType(t *testing.T) {
	secret := []byte("test-secret")
	tokenString, err := GenerateToken(uuid.New(), "alice", TypeRefresh, secret, time.Hour)
	assert.NoError(t, err)

	claims, err := ValidateToken(tokenString, secret)
	assert.NoError(t, err)
	assert.Equal(t, TypeRefresh, claims.TokenType)
}
