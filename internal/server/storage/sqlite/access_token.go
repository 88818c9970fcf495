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

// SaveAccessToken registers a token fingerprint for a user
func (s *Storage) SaveAccessToken(ctx context.Context, token *models.AccessToken) error {
	query := `
		INSERT INTO access_tokens (id, user_id, fingerprint, description, status, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if token.Status == "" {
		token.Status = models.AccessTokenEnabled
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	var expiresAt sql.NullTime
	if token.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: token.ExpiresAt.UTC(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		token.ID,
		token.UserID,
		token.Fingerprint,
		token.Description,
		string(token.Status),
		expiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}

	return nil
}

// IsEffective reports whether the fingerprint is an active API token of the user
func (s *Storage) IsEffective(ctx context.Context, userID, fingerprint string) (bool, error) {
	query := `
		SELECT t.status, t.expires_at, u.status
		FROM access_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.user_id = ? AND t.fingerprint = ?
	`

	var (
		tokenStatus string
		userStatus  string
		expiresAt   sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, query, userID, fingerprint).Scan(&tokenStatus, &expiresAt, &userStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check access token: %w", err)
	}

	if models.UserStatus(userStatus) == models.UserStatusLocked {
		return false, nil
	}

	token := models.AccessToken{Status: models.AccessTokenStatus(tokenStatus)}
	if expiresAt.Valid {
		token.ExpiresAt = &expiresAt.Time
	}

	return token.IsActive(time.Now()), nil
}

// ListUserAccessTokens retrieves all tokens of a user
func (s *Storage) ListUserAccessTokens(ctx context.Context, userID string) ([]*models.AccessToken, error) {
	query := `
		SELECT id, user_id, fingerprint, description, status, expires_at, created_at
		FROM access_tokens
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user access tokens: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	tokens := []*models.AccessToken{}

	for rows.Next() {
		token := &models.AccessToken{}
		var (
			status    string
			expiresAt sql.NullTime
		)
		if err := rows.Scan(
			&token.ID,
			&token.UserID,
			&token.Fingerprint,
			&token.Description,
			&status,
			&expiresAt,
			&token.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan access token: %w", err)
		}
		token.Status = models.AccessTokenStatus(status)
		if expiresAt.Valid {
			token.ExpiresAt = &expiresAt.Time
		}
		tokens = append(tokens, token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tokens, nil
}

// RevokeAccessToken marks the token as revoked. Only the owner's tokens match,
// a foreign id reports ErrAccessTokenNotFound.
func (s *Storage) RevokeAccessToken(ctx context.Context, userID, id string) error {
	query := `UPDATE access_tokens SET status = ? WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, string(models.AccessTokenRevoked), id, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrAccessTokenNotFound
	}

	return nil
}

// DeleteExpiredAccessTokens removes all expired tokens
func (s *Storage) DeleteExpiredAccessTokens(ctx context.Context) (int, error) {
	query := `DELETE FROM access_tokens WHERE expires_at IS NOT NULL AND expires_at < ?`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired access tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
