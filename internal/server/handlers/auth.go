package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/consolerealm/internal/server/realm"
	"github.com/iudanet/consolerealm/internal/validation"
	"github.com/iudanet/consolerealm/pkg/api"
)

// TeamHeader заголовок с id команды, ограничивающий выборку прав
const TeamHeader = "X-Team-ID"

// Authorizer resolves the permission set of a principal within a team
type Authorizer interface {
	AuthorizeTeam(ctx context.Context, p *realm.Principal, teamID string) (realm.PermissionSet, error)
}

// AuthHandler отдает сведения об аутентифицированном пользователе
type AuthHandler struct {
	logger *slog.Logger
	authz  Authorizer
}

// NewAuthHandler создает новый handler
func NewAuthHandler(logger *slog.Logger, authz Authorizer) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		authz:  authz,
	}
}

// Me обрабатывает GET /api/v1/auth/me
// Возвращает principal и его права
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := GetPrincipal(ctx)
	if !ok {
		WriteError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	perms, err := h.authz.AuthorizeTeam(ctx, p, r.Header.Get(TeamHeader))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve permissions",
			slog.String("user_id", p.UserID), slog.Any("error", err))
		WriteError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.MeResponse{
		UserID:      p.UserID,
		Username:    p.Username,
		AuthMethod:  string(p.Method),
		IsAPIToken:  p.IsAPIToken,
		Permissions: perms.Slice(),
	}

	WriteJSON(w, h.logger, resp, http.StatusOK)
}

// CheckPermission обрабатывает GET /api/v1/auth/permissions/{permission}
func (h *AuthHandler) CheckPermission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := GetPrincipal(ctx)
	if !ok {
		WriteError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	permission := r.PathValue("permission")
	if err := validation.ValidatePermission(permission); err != nil {
		WriteError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	perms, err := h.authz.AuthorizeTeam(ctx, p, r.Header.Get(TeamHeader))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve permissions",
			slog.String("user_id", p.UserID), slog.Any("error", err))
		WriteError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.PermissionCheckResponse{
		Permission: permission,
		Granted:    perms.Has(permission),
	}

	status := http.StatusOK
	if !resp.Granted {
		status = http.StatusForbidden
	}

	WriteJSON(w, h.logger, resp, status)
}
