package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashToken(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "jwt-like token", raw: "aaa.bbb.ccc"},
		{name: "empty token", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed := HashToken(tt.raw)

			// SHA256 хеш всегда 64 символа (hex-encoded, 32 bytes * 2)
			assert.Len(t, hashed, 64)
			assert.Regexp(t, "^[a-f0-9]{64}$", hashed)
			assert.NotEqual(t, tt.raw, hashed)
		})
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashToken("token-1"), HashToken("token-1"))
	assert.NotEqual(t, HashToken("token-1"), HashToken("token-2"))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	// bcrypt использует случайную соль
	hash2, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)

	_, err = HashPassword("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	tests := []struct {
		wantErr  error
		name     string
		password string
		hash     string
		anyErr   bool
	}{
		{name: "correct password", password: "s3cret-password", hash: hash},
		{name: "wrong password", password: "nope", hash: hash, wantErr: ErrPasswordMismatch},
		{name: "empty hash", password: "s3cret-password", hash: "", anyErr: true},
		{name: "garbage hash", password: "s3cret-password", hash: "not-a-bcrypt-hash", anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword(tt.password, tt.hash)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
