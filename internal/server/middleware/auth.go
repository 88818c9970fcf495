package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/consolerealm/internal/server/handlers"
	"github.com/iudanet/consolerealm/internal/server/realm"
	"github.com/iudanet/consolerealm/internal/server/token"
)

// credentialKind определяет тип учетных данных по схеме заголовка Authorization
func credentialKind(scheme string) realm.CredentialKind {
	switch strings.ToLower(scheme) {
	case "bearer":
		return realm.KindBearerToken
	case "basic":
		return realm.KindPassword
	default:
		return realm.CredentialKind(strings.ToLower(scheme))
	}
}

// AuthMiddleware создает middleware, аутентифицирующий запрос через realm.
// Клиенту всегда уходит одинаковый ответ 401, причина отказа только в логе.
func AuthMiddleware(logger *slog.Logger, authn realm.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(ctx, "missing Authorization header")
				handlers.WriteError(w, logger, "unauthorized", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !authn.Supports(credentialKind(parts[0])) {
				logger.WarnContext(ctx, "unsupported Authorization scheme")
				handlers.WriteError(w, logger, "unauthorized", http.StatusUnauthorized)
				return
			}

			principal, err := authn.Authenticate(ctx, strings.TrimSpace(parts[1]))
			if err != nil {
				var authErr *realm.AuthenticationError
				switch {
				case errors.Is(err, token.ErrMalformedToken), errors.As(err, &authErr):
					handlers.WriteError(w, logger, "unauthorized", http.StatusUnauthorized)
				default:
					logger.ErrorContext(ctx, "authentication failed", slog.Any("error", err))
					handlers.WriteError(w, logger, "internal server error", http.StatusInternalServerError)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithPrincipal(ctx, principal)))
		})
	}
}

// RequirePermission создает middleware, пропускающий запрос только при наличии права.
// Права запрашиваются заново на каждый запрос.
func RequirePermission(logger *slog.Logger, authz handlers.Authorizer, permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			principal, ok := handlers.GetPrincipal(ctx)
			if !ok {
				handlers.WriteError(w, logger, "unauthorized", http.StatusUnauthorized)
				return
			}

			perms, err := authz.AuthorizeTeam(ctx, principal, r.Header.Get(handlers.TeamHeader))
			if err != nil {
				logger.ErrorContext(ctx, "failed to resolve permissions",
					slog.String("user_id", principal.UserID), slog.Any("error", err))
				handlers.WriteError(w, logger, "internal server error", http.StatusInternalServerError)
				return
			}

			if !perms.Has(permission) {
				logger.WarnContext(ctx, "permission denied",
					slog.String("user_id", principal.UserID),
					slog.String("permission", permission))
				handlers.WriteError(w, logger, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
