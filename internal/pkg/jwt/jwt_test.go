package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() Service {
	return NewJWTService("test-secret-key-for-jwt", "1h", "24h")
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := testService()

	token, expiresAt, err := svc.GenerateRefreshToken("emp-1", "comp-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	employeeID, companyID, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employeeID)
	assert.Equal(t, "comp-1", companyID)
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := testService()

	token, _, err := svc.GenerateAccessToken("emp-1", "comp-1", "chief")
	require.NoError(t, err)

	_, _, err = svc.ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestValidateRefreshTokenRejectsGarbage(t *testing.T) {
	svc := testService()

	_, _, err := svc.ValidateRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := testService()

	token, _, err := svc.GenerateRefreshToken("emp-1", "comp-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}
