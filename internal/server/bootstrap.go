package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/consolerealm/internal/crypto"
	"github.com/iudanet/consolerealm/internal/models"
	"github.com/iudanet/consolerealm/internal/server/storage"
	"github.com/iudanet/consolerealm/internal/validation"
)

// AdminRoleName имя роли, выдаваемой bootstrap администратору
const AdminRoleName = "admin"

// AdminPermissions права роли администратора
var AdminPermissions = []string{"admin", PermissionTokenRead, PermissionTokenRevoke}

// BootstrapStore is the storage needed to seed the first administrator
type BootstrapStore interface {
	storage.UserStorage
	storage.PermissionStorage
}

// EnsureAdmin создает администратора с ролью admin, если такого пользователя еще нет.
// Существующий пользователь не изменяется, пароль из конфигурации игнорируется.
func EnsureAdmin(ctx context.Context, logger *slog.Logger, store BootstrapStore, username, password string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid admin username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid admin password: %w", err)
	}

	_, err := store.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		logger.InfoContext(ctx, "admin user already exists", slog.String("username", username))
		return nil
	case !errors.Is(err, storage.ErrUserNotFound):
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	role := &models.Role{
		ID:          uuid.New().String(),
		Name:        AdminRoleName + "-" + admin.ID[:8],
		Permissions: AdminPermissions,
		CreatedAt:   now,
	}
	if err := store.CreateRole(ctx, role); err != nil {
		return fmt.Errorf("failed to create admin role: %w", err)
	}
	if err := store.GrantRole(ctx, admin.ID, role.ID, ""); err != nil {
		return fmt.Errorf("failed to grant admin role: %w", err)
	}

	logger.InfoContext(ctx, "admin user created",
		slog.String("username", username),
		slog.String("user_id", admin.ID),
	)
	return nil
}
