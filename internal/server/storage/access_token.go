package storage

import (
	"context"

	"github.com/iudanet/consolerealm/internal/models"
)

// AccessTokenStorage defines interface for the long-lived API token registry
type AccessTokenStorage interface {
	// SaveAccessToken registers a token fingerprint for a user
	SaveAccessToken(ctx context.Context, token *models.AccessToken) error

	// IsEffective reports whether a token with the fingerprint is registered
	// for the user, enabled, not expired, and its owner is not locked.
	// Missing and inactive records both yield false.
	IsEffective(ctx context.Context, userID, fingerprint string) (bool, error)

	// ListUserAccessTokens retrieves all tokens of a user
	// Returns empty slice if no tokens found
	ListUserAccessTokens(ctx context.Context, userID string) ([]*models.AccessToken, error)

	// RevokeAccessToken marks the token of the user as revoked.
	// Returns ErrAccessTokenNotFound if the user has no token with this id
	RevokeAccessToken(ctx context.Context, userID, id string) error

	// DeleteExpiredAccessTokens removes all expired tokens
	// Returns number of deleted tokens
	DeleteExpiredAccessTokens(ctx context.Context) (int, error)
}
