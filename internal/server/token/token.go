// Package token decodes and verifies the signed bearer tokens accepted by the
// console. A token is a HS256 JWT whose signing key is the owner's current
// password hash, so changing the password invalidates every session token.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/consolerealm/internal/crypto"
)

// Issuer записывается в claim iss всех токенов консоли
const Issuer = "job-console"

// ErrMalformedToken returned when a token cannot be parsed into its claims.
var ErrMalformedToken = errors.New("malformed token")

// Claims представляет JWT claims токена консоли
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"user_id"`
	jwt.RegisteredClaims
}

// Sign создает подписанный токен для пользователя.
// ttl == 0 означает бессрочный токен (используется для API токенов).
func Sign(username, userID, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("signing secret cannot be empty")
	}

	now := time.Now()
	claims := Claims{
		Username: username,
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   Issuer,
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// DecodeUsername extracts the claimed username without checking the signature.
func DecodeUsername(raw string) (string, error) {
	claims, err := decode(raw)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// DecodeUserID extracts the claimed user id without checking the signature.
func DecodeUserID(raw string) (string, error) {
	claims, err := decode(raw)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// Verify recomputes the signature of raw with secret and checks that the
// token was issued for username. Any mismatch, including expiry, yields false.
func Verify(raw, username, secret string) bool {
	if raw == "" || secret == "" {
		return false
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return false
	}

	return claims.Username == username
}

// Fingerprint returns the lookup key of raw in the API token registry.
func Fingerprint(raw string) string {
	return crypto.HashToken(raw)
}

func decode(raw string) (*Claims, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	var claims Claims
	// Подпись здесь не проверяется: ключ зависит от пользователя,
	// которого мы еще не знаем
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	return &claims, nil
}
