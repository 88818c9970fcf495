package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/consolerealm/internal/models"
	"github.com/iudanet/consolerealm/internal/server/storage"
)

// CreateRole stores a role together with its permission strings
func (s *Storage) CreateRole(ctx context.Context, role *models.Role) error {
	if role.CreatedAt.IsZero() {
		role.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO roles (id, name, created_at) VALUES (?, ?, ?)`,
		role.ID, role.Name, role.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert role: %w", err)
	}

	for _, perm := range role.Permissions {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO role_permissions (role_id, permission) VALUES (?, ?)`,
			role.ID, perm,
		); err != nil {
			return fmt.Errorf("failed to insert role permission: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit role: %w", err)
	}

	return nil
}

// GrantRole assigns a role to a user; granting twice is a no-op
func (s *Storage) GrantRole(ctx context.Context, userID, roleID, teamID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM roles WHERE id = ?`, roleID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrRoleNotFound
		}
		return fmt.Errorf("failed to check role: %w", err)
	}

	query := `INSERT OR IGNORE INTO user_roles (user_id, role_id, team_id) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, userID, roleID, teamID); err != nil {
		return fmt.Errorf("failed to grant role: %w", err)
	}

	return nil
}

// RevokeRole removes a role assignment
func (s *Storage) RevokeRole(ctx context.Context, userID, roleID, teamID string) error {
	query := `DELETE FROM user_roles WHERE user_id = ? AND role_id = ? AND team_id = ?`

	result, err := s.db.ExecContext(ctx, query, userID, roleID, teamID)
	if err != nil {
		return fmt.Errorf("failed to revoke role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRoleNotFound
	}

	return nil
}

// GetPermissions returns the distinct permission strings granted to the user
func (s *Storage) GetPermissions(ctx context.Context, userID, teamID string) ([]string, error) {
	// Глобальные назначения (team_id = '') действуют в любой команде
	query := `
		SELECT DISTINCT rp.permission
		FROM user_roles ur
		JOIN role_permissions rp ON rp.role_id = ur.role_id
		WHERE ur.user_id = ?
		  AND (? = '' OR ur.team_id = '' OR ur.team_id = ?)
		ORDER BY rp.permission
	`

	rows, err := s.db.QueryContext(ctx, query, userID, teamID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query permissions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	permissions := []string{}

	for rows.Next() {
		var perm string
		if err := rows.Scan(&perm); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		permissions = append(permissions, perm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return permissions, nil
}
