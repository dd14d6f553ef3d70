package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	tok, err := GenerateToken("admin", "admin", time.Hour)
	require.NoError(t, err)

	sub, role, err := ExtractClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
	assert.Equal(t, "admin", role)

	SetJWTSecret("other-secret")
	_, _, err = ExtractClaims(tok)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	SetJWTSecret("test-secret")
	tok, err := GenerateToken("admin", "admin", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractClaims(tok)
	assert.Error(t, err)
}
