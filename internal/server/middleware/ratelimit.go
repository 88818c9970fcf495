package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/iudanet/consolerealm/internal/server/handlers"
)

// RateLimiter ограничивает частоту запросов по ключу (IP адрес клиента).
// Для каждого ключа держится отдельный token bucket из x/time/rate.
type RateLimiter struct {
	visitors map[string]*visitor
	logger   *slog.Logger
	stopC    chan struct{}
	trusted  []netip.Prefix
	requests int
	window   time.Duration
	mu       sync.Mutex
	stopOnce sync.Once
}

type visitor struct {
	lastSeen time.Time
	limiter  *rate.Limiter
}

// NewRateLimiter создает новый rate limiter
// requests - максимальное количество запросов за окно
// window - временное окно (например, 1 минута)
// trustedProxies - сети прокси, чьим X-Forwarded-For / X-Real-IP можно верить;
// без них ключом всегда служит адрес TCP соединения
func NewRateLimiter(requests int, window time.Duration, logger *slog.Logger, trustedProxies ...netip.Prefix) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		trusted:  trustedProxies,
		requests: requests,
		window:   window,
		logger:   logger,
		stopC:    make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// cleanup периодически удаляет неактивные ключи
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			rl.cleanupVisitors(now)
		case <-rl.stopC:
			return
		}
	}
}

// cleanupVisitors удаляет ключи, не появлявшиеся дольше window.
// Bucket такого ключа к этому моменту уже полностью пополнен.
func (rl *RateLimiter) cleanupVisitors(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) >= rl.window {
			delete(rl.visitors, key)
		}
	}
}

// Stop останавливает cleanup goroutine. Повторный вызов безопасен.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopC) })
}

// Allow проверяет, разрешен ли запрос для данного ключа
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{
			limiter: rate.NewLimiter(rate.Every(rl.window/time.Duration(max(rl.requests, 1))), rl.requests),
		}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	rl.mu.Unlock()

	return v.limiter.Allow()
}

// retryAfter возвращает время пополнения одного токена в секундах (минимум 1)
func (rl *RateLimiter) retryAfter() int {
	perToken := rl.window / time.Duration(max(rl.requests, 1))
	return max(int(perToken.Round(time.Second)/time.Second), 1)
}

// RateLimitMiddleware создает middleware для ограничения частоты запросов.
// Limiter принадлежит вызывающему, он же вызывает Stop при остановке сервера.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := getClientIP(r, limiter.trusted)

			if !limiter.Allow(key) {
				limiter.logger.WarnContext(r.Context(), "Rate limit exceeded",
					"ip", key,
					"method", r.Method,
					"path", sanitizePath(r.URL.Path),
				)

				w.Header().Set("Retry-After", strconv.Itoa(limiter.retryAfter()))
				handlers.WriteError(w, limiter.logger, "rate limit exceeded, please try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP возвращает IP клиента без порта.
// Заголовки X-Forwarded-For и X-Real-IP учитываются, только если запрос
// пришел от доверенного прокси. В X-Forwarded-For берется самый правый адрес,
// не принадлежащий доверенным прокси: левые элементы задает сам клиент.
func getClientIP(r *http.Request, trusted []netip.Prefix) string {
	peer := remoteHost(r.RemoteAddr)
	if !isTrusted(peer, trusted) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				// мусор в цепочке: дальше влево доверять нельзя
				break
			}
			if !isTrusted(addr.String(), trusted) {
				return addr.String()
			}
		}
		return peer
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if addr, err := netip.ParseAddr(xri); err == nil {
			return addr.String()
		}
	}

	return peer
}

// remoteHost отрезает порт от RemoteAddr
func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	if len(trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
