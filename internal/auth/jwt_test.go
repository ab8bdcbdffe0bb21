package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "planora")

	token, err := manager.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestGenerateRejectsNonPositiveUserID(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "planora")

	_, err := manager.Generate(0)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.Generate(-1)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsEmptyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "planora")

	_, err := manager.Validate("  ")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "planora")
	other := NewJWTManager("other-secret", time.Hour, "planora")

	token, err := manager.Generate(7)
	require.NoError(t, err)

	_, err = other.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, "planora")

	token, err := manager.Generate(7)
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "planora")
	other := NewJWTManager("test-secret", time.Hour, "someone-else")

	token, err := other.Generate(7)
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
