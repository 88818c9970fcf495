package models

import "time"

// AccessTokenStatus состояние выпущенного API токена
type AccessTokenStatus string

const (
	// AccessTokenEnabled токен действует
	AccessTokenEnabled AccessTokenStatus = "enabled"
	// AccessTokenRevoked токен отозван и больше не принимается
	AccessTokenRevoked AccessTokenStatus = "revoked"
)

// AccessToken is a long-lived API token registered for a user.
// Only the fingerprint of the raw token is stored.
type AccessToken struct {
	CreatedAt   time.Time         `json:"created_at"`
	ExpiresAt   *time.Time        `json:"expires_at,omitempty"` // nil = бессрочный
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Fingerprint string            `json:"-"`
	Description string            `json:"description"`
	Status      AccessTokenStatus `json:"status"`
}

// IsActive reports whether the token is enabled and not expired at now.
func (t *AccessToken) IsActive(now time.Time) bool {
	if t.Status != AccessTokenEnabled {
		return false
	}
	return t.ExpiresAt == nil || now.Before(*t.ExpiresAt)
}
