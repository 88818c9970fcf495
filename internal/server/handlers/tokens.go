package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/consolerealm/internal/models"
	"github.com/iudanet/consolerealm/internal/server/storage"
	"github.com/iudanet/consolerealm/pkg/api"
)

// TokenStore lists and revokes the API tokens registered for a user
type TokenStore interface {
	ListUserAccessTokens(ctx context.Context, userID string) ([]*models.AccessToken, error)
	RevokeAccessToken(ctx context.Context, userID, id string) error
}

// TokensHandler обрабатывает запросы к реестру API токенов
type TokensHandler struct {
	logger *slog.Logger
	tokens TokenStore
}

// NewTokensHandler создает новый handler
func NewTokensHandler(logger *slog.Logger, tokens TokenStore) *TokensHandler {
	return &TokensHandler{
		logger: logger,
		tokens: tokens,
	}
}

// List обрабатывает GET /api/v1/auth/tokens
// Возвращает токены текущего пользователя, отпечатки не раскрываются
func (h *TokensHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := GetPrincipal(ctx)
	if !ok {
		WriteError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	tokens, err := h.tokens.ListUserAccessTokens(ctx, p.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list access tokens",
			slog.String("user_id", p.UserID), slog.Any("error", err))
		WriteError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.AccessTokensResponse{Tokens: make([]api.AccessTokenInfo, 0, len(tokens))}
	for _, t := range tokens {
		info := api.AccessTokenInfo{
			ID:          t.ID,
			Description: t.Description,
			Status:      string(t.Status),
			CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if t.ExpiresAt != nil {
			exp := t.ExpiresAt.UTC().Format(time.RFC3339)
			info.ExpiresAt = &exp
		}
		resp.Tokens = append(resp.Tokens, info)
	}

	WriteJSON(w, h.logger, resp, http.StatusOK)
}

// Revoke обрабатывает DELETE /api/v1/auth/tokens/{id}
// Отзывает только токены текущего пользователя; чужой id дает 404
func (h *TokensHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := GetPrincipal(ctx)
	if !ok {
		WriteError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(w, h.logger, "token id is required", http.StatusBadRequest)
		return
	}

	if err := h.tokens.RevokeAccessToken(ctx, p.UserID, id); err != nil {
		if errors.Is(err, storage.ErrAccessTokenNotFound) {
			WriteError(w, h.logger, "access token not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to revoke access token",
			slog.String("user_id", p.UserID), slog.Any("error", err))
		WriteError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "access token revoked",
		slog.String("user_id", p.UserID), slog.String("token_id", id))

	w.WriteHeader(http.StatusNoContent)
}
