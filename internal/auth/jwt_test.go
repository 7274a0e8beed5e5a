package auth_test

import (
	"testing"

	"github.com/foodlink-dev/foodlink/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	auth.InitJWTSecret()

	tokenString, err := auth.GenerateJWT(42, "donor")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := auth.VerifyJWT(tokenString)
	require.NoError(t, err)

	userID, role, err := auth.ParseIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, "donor", role)
}

func TestVerifyJWTRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	auth.InitJWTSecret()

	tokenString, err := auth.GenerateJWT(42, "donor")
	require.NoError(t, err)

	_, err = auth.VerifyJWT(tokenString + "x")
	assert.Error(t, err)

	_, err = auth.VerifyJWT("not.a.token")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	auth.InitJWTSecret()

	tokenString, err := auth.GenerateJWT(1, "recipient")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	auth.InitJWTSecret()

	_, err = auth.VerifyJWT(tokenString)
	assert.Error(t, err)
}
