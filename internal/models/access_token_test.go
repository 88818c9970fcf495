package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessToken_IsActive(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name  string
		token AccessToken
		want  bool
	}{
		{
			name:  "enabled without expiry",
			token: AccessToken{Status: AccessTokenEnabled},
			want:  true,
		},
		{
			name:  "enabled not yet expired",
			token: AccessToken{Status: AccessTokenEnabled, ExpiresAt: &future},
			want:  true,
		},
		{
			name:  "enabled but expired",
			token: AccessToken{Status: AccessTokenEnabled, ExpiresAt: &past},
			want:  false,
		},
		{
			name:  "revoked",
			token: AccessToken{Status: AccessTokenRevoked, ExpiresAt: &future},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.token.IsActive(now))
		})
	}
}

func TestUser_IsLocked(t *testing.T) {
	assert.False(t, (&User{Status: UserStatusActive}).IsLocked())
	assert.True(t, (&User{Status: UserStatusLocked}).IsLocked())
}
