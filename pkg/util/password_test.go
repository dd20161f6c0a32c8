package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, VerifyPassword(hash, "password123"))
	assert.False(t, VerifyPassword(hash, "wrongpassword"))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("password123")
	require.NoError(t, err)
	second, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestIsBcryptHash(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Generated hash", hash, true},
		{"2a prefix", "$2a$10$abcdefghijklmnopqrstuv", true},
		{"2b prefix", "$2b$12$abcdefghijklmnopqrstuv", true},
		{"2y prefix", "$2y$12$abcdefghijklmnopqrstuv", true},
		{"Plain text", "password123", false},
		{"Empty", "", false},
		{"Dollar but not bcrypt", "$1$legacy", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBcryptHash(tt.input))
		})
	}
}
