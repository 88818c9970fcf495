package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrAccessTokenNotFound indicates that API token was not found
	ErrAccessTokenNotFound = errors.New("access token not found")

	// ErrRoleNotFound indicates that role was not found
	ErrRoleNotFound = errors.New("role not found")
)
