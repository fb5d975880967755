package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 42, 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	uid, err := ParseAccessToken("test-secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret-a", 7, 15)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret-b", tok.Token)
	assert.Error(t, err)
}

func TestAccessTokenGarbage(t *testing.T) {
	_, err := ParseAccessToken("test-secret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 7, -1)
	require.NoError(t, err)

	_, err = ParseAccessToken("test-secret", tok.Token)
	assert.Error(t, err)
}
