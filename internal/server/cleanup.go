package server

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredTokenDeleter removes expired API tokens from the registry
type ExpiredTokenDeleter interface {
	DeleteExpiredAccessTokens(ctx context.Context) (int, error)
}

// RunTokenCleanup периодически удаляет истекшие API токены до отмены ctx.
// Истекшие токены и так не принимаются, очистка только освобождает место.
func RunTokenCleanup(ctx context.Context, logger *slog.Logger, store ExpiredTokenDeleter, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpiredAccessTokens(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.ErrorContext(ctx, "failed to delete expired access tokens", slog.Any("error", err))
				continue
			}
			if n > 0 {
				logger.InfoContext(ctx, "expired access tokens deleted", slog.Int("count", n))
			}
		}
	}
}
