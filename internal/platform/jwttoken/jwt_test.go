package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("test-signing-key", "orgvet")

	token, err := svc.GenerateToken("ops@example.org", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.org", claims.Subject)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService("test-signing-key", "orgvet")

	token, err := svc.GenerateToken("ops@example.org", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateWrongKey(t *testing.T) {
	minted := NewService("key-one", "orgvet")
	verifier := NewService("key-two", "orgvet")

	token, err := minted.GenerateToken("ops@example.org", time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewService("test-signing-key", "orgvet")
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
