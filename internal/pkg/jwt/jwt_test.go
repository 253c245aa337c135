package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret-key-for-jwt", "1h")
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateAccessToken(42, "manager")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, TokenTypeAccess, claims["type"])
	assert.Equal(t, "manager", claims["role"])
	id, err := EmployeeIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("secret", "soon")
	assert.Error(t, err)
}

func TestEmployeeIDFromClaims(t *testing.T) {
	id, err := EmployeeIDFromClaims(map[string]interface{}{"employee_id": float64(7)})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	for _, claims := range []map[string]interface{}{
		{},
		{"employee_id": nil},
		{"employee_id": "abc"},
		{"employee_id": "0"},
	} {
		_, err := EmployeeIDFromClaims(claims)
		assert.ErrorIs(t, err, ErrMissingEmployeeClaim)
	}
}
