package utils

import (
	"testing"

	"bankcards/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userID := uuid.New()

	access, refresh, err := GenerateTokens(&models.UserClaims{
		UserID:       userID,
		Email:        "owner@example.com",
		Role:         models.RoleUser,
		Permissions:  models.GetDefaultPermissions(models.RoleUser),
		TokenVersion: 3,
	})
	require.NoError(t, err)

	_, claims, err := ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.True(t, claims.HasPermission(models.PermissionCardTransfer))

	_, refreshClaims, err := ParseToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
	assert.Empty(t, refreshClaims.Permissions)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "one")
	access, _, err := GenerateTokens(&models.UserClaims{UserID: uuid.New()})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "two")
	_, _, err = ParseToken(access)
	assert.Error(t, err)
}

func TestGenerateTokens_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, _, err := GenerateTokens(&models.UserClaims{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrJWTSecretMissing)
}
