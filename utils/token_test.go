package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionToken(t *testing.T) {
	token, err := NewSessionToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)

	raw, err := hex.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestNewSessionTokenUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := NewSessionToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "token repeated")
		seen[token] = true
	}
}
