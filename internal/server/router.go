package server

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/consolerealm/internal/server/handlers"
	"github.com/iudanet/consolerealm/internal/server/middleware"
	"github.com/iudanet/consolerealm/internal/server/realm"
)

const (
	// PermissionTokenRead право на просмотр собственных API токенов
	PermissionTokenRead = "token:read"
	// PermissionTokenRevoke право на отзыв собственных API токенов
	PermissionTokenRevoke = "token:revoke"
)

// Realm is the authentication and authorization surface used by the router
type Realm interface {
	realm.Authenticator
	handlers.Authorizer
}

// Store is the storage surface the HTTP handlers read from
type Store interface {
	handlers.Pinger
	handlers.TokenStore
}

// NewRouter собирает HTTP pipeline:
// recovery -> logging -> rate limit -> mux -> auth -> [permission] -> handler
func NewRouter(logger *slog.Logger, rlm Realm, store Store, limiter *middleware.RateLimiter, version string) http.Handler {
	health := handlers.NewHealthHandler(logger, store, version)
	auth := handlers.NewAuthHandler(logger, rlm)
	tokens := handlers.NewTokensHandler(logger, store)

	authenticated := middleware.AuthMiddleware(logger, rlm)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", health.Health)
	mux.Handle("GET /api/v1/auth/me", authenticated(http.HandlerFunc(auth.Me)))
	mux.Handle("GET /api/v1/auth/permissions/{permission}", authenticated(http.HandlerFunc(auth.CheckPermission)))
	mux.Handle("GET /api/v1/auth/tokens", authenticated(
		middleware.RequirePermission(logger, rlm, PermissionTokenRead)(http.HandlerFunc(tokens.List)),
	))
	mux.Handle("DELETE /api/v1/auth/tokens/{id}", authenticated(
		middleware.RequirePermission(logger, rlm, PermissionTokenRevoke)(http.HandlerFunc(tokens.Revoke)),
	))

	var h http.Handler = mux
	h = middleware.RateLimitMiddleware(limiter)(h)
	h = middleware.LoggingMiddleware(logger, "/api/v1/health")(h)
	h = middleware.RecoveryMiddleware(logger)(h)

	return h
}
