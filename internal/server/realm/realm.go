// Package realm authenticates bearer tokens of the job console and resolves
// the permission set of the authenticated user.
//
// A token is accepted when its signature verifies against the current
// password hash of the user it names, or, failing that, when its fingerprint
// is registered as an active API token of that user.
package realm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/consolerealm/internal/models"
	"github.com/iudanet/consolerealm/internal/server/storage"
	"github.com/iudanet/consolerealm/internal/server/token"
)

//go:generate moq -out lookup_mock.go . UserLookup TokenRegistry

// UserLookup is the user and permission source of the realm.
type UserLookup interface {
	// GetUserByUsername returns storage.ErrUserNotFound for unknown users
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetPermissions returns the flattened permission strings of the user.
	// Empty teamID disables the team filter.
	GetPermissions(ctx context.Context, userID, teamID string) ([]string, error)
}

// TokenRegistry answers whether a token fingerprint is a live API token of a user.
type TokenRegistry interface {
	IsEffective(ctx context.Context, userID, fingerprint string) (bool, error)
}

// Authenticator is the contract the HTTP pipeline depends on.
type Authenticator interface {
	Supports(kind CredentialKind) bool
	Authenticate(ctx context.Context, raw string) (*Principal, error)
	Authorize(ctx context.Context, p *Principal) (PermissionSet, error)
}

var _ Authenticator = (*Realm)(nil)

// Realm resolves signed bearer tokens into principals
type Realm struct {
	logger *slog.Logger
	users  UserLookup
	tokens TokenRegistry
}

// New creates a new Realm
func New(logger *slog.Logger, users UserLookup, tokens TokenRegistry) *Realm {
	return &Realm{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

// Supports reports whether the realm handles the credential kind.
// Only signed bearer tokens are handled; login forms go elsewhere.
func (r *Realm) Supports(kind CredentialKind) bool {
	return kind == KindBearerToken
}

// Authenticate resolves raw into a Principal.
//
// Errors: token.ErrMalformedToken when raw cannot be decoded,
// *AuthenticationError when the token is rejected, and wrapped store errors
// otherwise. Nothing is retried.
func (r *Realm) Authenticate(ctx context.Context, raw string) (*Principal, error) {
	username, err := token.DecodeUsername(raw)
	if err != nil {
		r.logger.WarnContext(ctx, "malformed bearer token", slog.Any("error", err))
		return nil, err
	}
	if username == "" {
		return nil, r.reject(ctx, "", ReasonMissingIdentity)
	}

	user, err := r.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, r.reject(ctx, username, ReasonUnknownUser)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if token.Verify(raw, username, user.PasswordHash) {
		r.logger.DebugContext(ctx, "user authenticated",
			slog.String("user_id", user.ID),
			slog.String("method", string(MethodPassword)))
		return newPrincipal(user, MethodPassword), nil
	}

	ok, err := r.isRegisteredAPIToken(ctx, raw, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, r.reject(ctx, username, ReasonTokenRejected)
	}

	r.logger.DebugContext(ctx, "user authenticated",
		slog.String("user_id", user.ID),
		slog.String("method", string(MethodAPIToken)))

	return newPrincipal(user, MethodAPIToken), nil
}

// Authorize returns the permissions of p across all teams.
func (r *Realm) Authorize(ctx context.Context, p *Principal) (PermissionSet, error) {
	return r.AuthorizeTeam(ctx, p, "")
}

// AuthorizeTeam returns the permissions of p limited to global grants and
// grants within teamID. Every call goes to the store.
func (r *Realm) AuthorizeTeam(ctx context.Context, p *Principal, teamID string) (PermissionSet, error) {
	if p == nil {
		return nil, fmt.Errorf("principal is nil")
	}

	perms, err := r.users.GetPermissions(ctx, p.UserID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get permissions: %w", err)
	}

	return NewPermissionSet(perms...), nil
}

// isRegisteredAPIToken consults the API token registry. Only tokens whose
// user id claim names the resolved user are looked up; a token that claims
// someone else's id is refused without touching the registry.
func (r *Realm) isRegisteredAPIToken(ctx context.Context, raw string, user *models.User) (bool, error) {
	claimedID, err := token.DecodeUserID(raw)
	if err != nil {
		return false, err
	}
	if claimedID != user.ID {
		r.logger.WarnContext(ctx, "token user id does not match user",
			slog.String("username", user.Username))
		return false, nil
	}

	ok, err := r.tokens.IsEffective(ctx, user.ID, token.Fingerprint(raw))
	if err != nil {
		return false, fmt.Errorf("failed to check api token: %w", err)
	}

	return ok, nil
}

func (r *Realm) reject(ctx context.Context, username string, reason Reason) error {
	r.logger.WarnContext(ctx, "authentication rejected",
		slog.String("username", username),
		slog.String("reason", string(reason)))
	return &AuthenticationError{Reason: reason}
}
