package storage

import (
	"context"

	"github.com/iudanet/consolerealm/internal/models"
)

// UserStorage defines interface for console user persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if username already exists
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdatePassword replaces the password hash of a user.
	// Every session token signed with the previous hash stops verifying.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// SetStatus locks or unlocks a user
	SetStatus(ctx context.Context, userID string, status models.UserStatus) error
}

// PermissionStorage defines interface for roles and flattened permission lookup
type PermissionStorage interface {
	// CreateRole stores a role together with its permission strings
	CreateRole(ctx context.Context, role *models.Role) error

	// GrantRole assigns a role to a user, optionally within a team.
	// Empty teamID means the grant applies to every team.
	GrantRole(ctx context.Context, userID, roleID, teamID string) error

	// RevokeRole removes a role assignment
	RevokeRole(ctx context.Context, userID, roleID, teamID string) error

	// GetPermissions returns the distinct permission strings granted to the user
	// through all of its roles. Empty teamID means no team filter;
	// otherwise only global grants and grants for that team are considered.
	// Returns empty slice if user has no permissions
	GetPermissions(ctx context.Context, userID, teamID string) ([]string, error)
}
