package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", 1)

	token, err := svc.Generate(42, "alex@example.com", "participant")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "alex@example.com", claims.Email)
	require.Equal(t, "participant", claims.Role)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := NewJWTService("test-secret", 1)

	token, err := svc.Generate(42, "alex@example.com", "admin")
	require.NoError(t, err)

	_, err = svc.Validate(token + "x")
	require.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTService("different-secret", 1)
	_, err = other.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
