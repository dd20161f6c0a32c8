package util

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenerateSessionToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := GenerateSessionToken()
		require.NotEmpty(t, token)
		assert.False(t, seen[token], "session tokens must not repeat")
		seen[token] = true
	}
}

func TestGenerateResetToken(t *testing.T) {
	first, err := GenerateResetToken()
	require.NoError(t, err)
	second, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, first, 64) // 32 bytes hex encoded
	assert.NotEqual(t, first, second)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token := FormatAccessToken(42)
	assert.Equal(t, "session-token-42", token)

	id, ok := ParseAccessToken(token)
	require.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestParseAccessToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"Empty", ""},
		{"Wrong prefix", "bearer-42"},
		{"No id", "session-token-"},
		{"Non-numeric id", "session-token-abc"},
		{"Zero id", "session-token-0"},
		{"Negative id", "session-token--5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseAccessToken(tt.token)
			assert.False(t, ok)
		})
	}
}
