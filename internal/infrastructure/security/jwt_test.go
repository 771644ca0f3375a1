package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.True(t, IsAdminClaims(claims))
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken("test-secret")
	require.NoError(t, err)

	_, err = ValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestIsAdminClaimsRejectsMissingRole(t *testing.T) {
	assert.False(t, IsAdminClaims(map[string]any{"role": "guest"}))
	assert.False(t, IsAdminClaims(map[string]any{}))
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse", hash))
	assert.False(t, VerifyPassword("wrong", hash))

	// Plaintext bootstrap comparison.
	assert.True(t, VerifyPassword("letmein", "letmein"))
	assert.False(t, VerifyPassword("letmein", ""))
}
