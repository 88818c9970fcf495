package realm

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/consolerealm/internal/models"
	"github.com/iudanet/consolerealm/internal/server/storage"
	"github.com/iudanet/consolerealm/internal/server/token"
)

const (
	aliceID     = "0b6f1a2e-alice"
	currentHash = "$2a$10$current-password-hash-of-alice"
	staleHash   = "$2a$10$previous-password-hash-of-alice"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

func alice() *models.User {
	return &models.User{
		ID:           aliceID,
		Username:     "alice",
		PasswordHash: currentHash,
		Status:       models.UserStatusActive,
	}
}

func usersWith(user *models.User) *UserLookupMock {
	return &UserLookupMock{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			if user != nil && username == user.Username {
				return user, nil
			}
			return nil, storage.ErrUserNotFound
		},
	}
}

func registryWith(userID string, fingerprints ...string) *TokenRegistryMock {
	return &TokenRegistryMock{
		IsEffectiveFunc: func(ctx context.Context, id, fingerprint string) (bool, error) {
			if id != userID {
				return false, nil
			}
			for _, fp := range fingerprints {
				if fp == fingerprint {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

func signToken(t *testing.T, username, userID, secret string) string {
	t.Helper()
	raw, err := token.Sign(username, userID, secret, time.Hour)
	require.NoError(t, err)
	return raw
}

func assertReason(t *testing.T, err error, want Reason) {
	t.Helper()
	var authErr *AuthenticationError
	require.True(t, errors.As(err, &authErr), "expected AuthenticationError, got %v", err)
	assert.Equal(t, want, authErr.Reason)
	assert.NotErrorIs(t, err, token.ErrMalformedToken)
}

func TestRealm_Supports(t *testing.T) {
	r := New(setupTestLogger(), usersWith(nil), registryWith(""))

	assert.True(t, r.Supports(KindBearerToken))
	assert.False(t, r.Supports(KindPassword))
	assert.False(t, r.Supports(CredentialKind("")))
}

func TestRealm_Authenticate_PasswordSigned(t *testing.T) {
	ctx := context.Background()
	registry := registryWith(aliceID)
	r := New(setupTestLogger(), usersWith(alice()), registry)

	raw := signToken(t, "alice", aliceID, currentHash)

	p, err := r.Authenticate(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, aliceID, p.UserID)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, MethodPassword, p.Method)
	assert.False(t, p.IsAPIToken)

	// проверка подписи прошла, реестр не нужен
	assert.Empty(t, registry.IsEffectiveCalls())
}

// Статус пользователя проверяется только на пути API токена, в реестре.
// Токен, подписанный текущим хешем пароля, принимается и у заблокированного.
func TestRealm_Authenticate_LockedUserPasswordSigned(t *testing.T) {
	ctx := context.Background()
	locked := alice()
	locked.Status = models.UserStatusLocked
	registry := registryWith(aliceID)
	r := New(setupTestLogger(), usersWith(locked), registry)

	p, err := r.Authenticate(ctx, signToken(t, "alice", aliceID, currentHash))
	require.NoError(t, err)
	assert.Equal(t, MethodPassword, p.Method)
	assert.False(t, p.IsAPIToken)
	assert.Empty(t, registry.IsEffectiveCalls())
}

func TestRealm_Authenticate_APITokenFallback(t *testing.T) {
	ctx := context.Background()
	raw := signToken(t, "alice", aliceID, staleHash)
	registry := registryWith(aliceID, token.Fingerprint(raw))
	r := New(setupTestLogger(), usersWith(alice()), registry)

	p, err := r.Authenticate(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, aliceID, p.UserID)
	assert.Equal(t, MethodAPIToken, p.Method)
	assert.True(t, p.IsAPIToken)

	calls := registry.IsEffectiveCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, aliceID, calls[0].UserID)
	assert.Equal(t, token.Fingerprint(raw), calls[0].Fingerprint)
	assert.NotEqual(t, raw, calls[0].Fingerprint)
}

func TestRealm_Authenticate_Rejected(t *testing.T) {
	ctx := context.Background()

	locked := alice()
	locked.Status = models.UserStatusLocked

	tests := []struct {
		name         string
		user         *models.User
		raw          func(t *testing.T) string
		registered   bool
		wantReason   Reason
		wantRegistry int
	}{
		{
			name: "unknown user",
			user: alice(),
			raw: func(t *testing.T) string {
				return signToken(t, "mallory", "mallory-id", currentHash)
			},
			wantReason: ReasonUnknownUser,
		},
		{
			name: "stale signature and not registered",
			user: alice(),
			raw: func(t *testing.T) string {
				return signToken(t, "alice", aliceID, staleHash)
			},
			wantReason:   ReasonTokenRejected,
			wantRegistry: 1,
		},
		{
			name: "foreign key and user id of someone else",
			user: alice(),
			raw: func(t *testing.T) string {
				return signToken(t, "alice", "attacker-id", "attacker-key")
			},
			registered: true,
			wantReason: ReasonTokenRejected,
		},
		{
			// реестр не подтверждает токены заблокированного владельца
			name: "locked owner and stale signature",
			user: locked,
			raw: func(t *testing.T) string {
				return signToken(t, "alice", aliceID, staleHash)
			},
			wantReason:   ReasonTokenRejected,
			wantRegistry: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.raw(t)
			registry := registryWith(aliceID)
			if tt.registered {
				registry = registryWith(aliceID, token.Fingerprint(raw))
			}
			r := New(setupTestLogger(), usersWith(tt.user), registry)

			p, err := r.Authenticate(ctx, raw)
			require.Error(t, err)
			assert.Nil(t, p)
			assertReason(t, err, tt.wantReason)
			assert.Len(t, registry.IsEffectiveCalls(), tt.wantRegistry)
		})
	}
}

func TestRealm_Authenticate_BlankUsernameSkipsLookup(t *testing.T) {
	ctx := context.Background()
	users := usersWith(alice())
	registry := registryWith(aliceID)
	r := New(setupTestLogger(), users, registry)

	raw := signToken(t, "", aliceID, currentHash)

	_, err := r.Authenticate(ctx, raw)
	assertReason(t, err, ReasonMissingIdentity)

	assert.Empty(t, users.GetUserByUsernameCalls())
	assert.Empty(t, registry.IsEffectiveCalls())
}

func TestRealm_Authenticate_Malformed(t *testing.T) {
	ctx := context.Background()
	users := usersWith(alice())
	registry := registryWith(aliceID)
	r := New(setupTestLogger(), users, registry)

	for _, raw := range []string{"", "not-a-token", "invalid.token.here"} {
		_, err := r.Authenticate(ctx, raw)
		require.ErrorIs(t, err, token.ErrMalformedToken)

		var authErr *AuthenticationError
		assert.False(t, errors.As(err, &authErr))
	}

	assert.Empty(t, users.GetUserByUsernameCalls())
	assert.Empty(t, registry.IsEffectiveCalls())
}

func TestRealm_Authenticate_StoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	dbDown := errors.New("database is locked")

	t.Run("user lookup", func(t *testing.T) {
		users := &UserLookupMock{
			GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
				return nil, dbDown
			},
		}
		r := New(setupTestLogger(), users, registryWith(aliceID))

		_, err := r.Authenticate(ctx, signToken(t, "alice", aliceID, currentHash))
		assert.ErrorIs(t, err, dbDown)

		var authErr *AuthenticationError
		assert.False(t, errors.As(err, &authErr))
	})

	t.Run("token registry", func(t *testing.T) {
		registry := &TokenRegistryMock{
			IsEffectiveFunc: func(ctx context.Context, userID, fingerprint string) (bool, error) {
				return false, dbDown
			},
		}
		r := New(setupTestLogger(), usersWith(alice()), registry)

		_, err := r.Authenticate(ctx, signToken(t, "alice", aliceID, staleHash))
		assert.ErrorIs(t, err, dbDown)
		assert.Len(t, registry.IsEffectiveCalls(), 1)
	})
}

func TestRealm_Authorize(t *testing.T) {
	ctx := context.Background()

	granted := []string{"app:view", "app:start"}
	users := usersWith(alice())
	users.GetPermissionsFunc = func(ctx context.Context, userID, teamID string) ([]string, error) {
		if userID != aliceID {
			return []string{}, nil
		}
		// дубликаты приходят при нескольких ролях с одинаковыми правами
		return append(append([]string{}, granted...), "app:view"), nil
	}
	r := New(setupTestLogger(), users, registryWith(aliceID))

	p := &Principal{UserID: aliceID, Username: "alice", Method: MethodPassword}

	first, err := r.Authorize(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []string{"app:start", "app:view"}, first.Slice())
	assert.True(t, first.Has("app:start"))
	assert.False(t, first.Has("app:delete"))

	second, err := r.Authorize(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// новое право видно на следующем вызове, кеша нет
	granted = append(granted, "app:delete")
	third, err := r.Authorize(ctx, p)
	require.NoError(t, err)
	assert.True(t, third.Has("app:delete"))

	calls := users.GetPermissionsCalls()
	require.Len(t, calls, 3)
	assert.Empty(t, calls[0].TeamID)

	empty, err := r.Authorize(ctx, &Principal{UserID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRealm_AuthorizeTeam(t *testing.T) {
	ctx := context.Background()
	users := usersWith(alice())
	users.GetPermissionsFunc = func(ctx context.Context, userID, teamID string) ([]string, error) {
		return []string{"team:" + teamID}, nil
	}
	r := New(setupTestLogger(), users, registryWith(aliceID))

	perms, err := r.AuthorizeTeam(ctx, &Principal{UserID: aliceID}, "team-a")
	require.NoError(t, err)
	assert.True(t, perms.Has("team:team-a"))

	_, err = r.Authorize(ctx, nil)
	assert.Error(t, err)

	users.GetPermissionsFunc = func(ctx context.Context, userID, teamID string) ([]string, error) {
		return nil, errors.New("boom")
	}
	_, err = r.Authorize(ctx, &Principal{UserID: aliceID})
	assert.Error(t, err)
}

func TestAuthenticationError_Message(t *testing.T) {
	err := &AuthenticationError{Reason: ReasonUnknownUser}
	assert.Equal(t, "authentication failed: unknown user", err.Error())
}
