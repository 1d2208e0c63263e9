package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-DroneBookingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, повторите позже"

// RateLimiter ограничивает частоту запросов каждого пользователя.
// Лимитеры, не использованные дольше idleTTL, удаляются при следующем обращении.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создает ограничитель: perMinute запросов в минуту с запасом burst
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// Allow проверяет, можно ли выполнить запрос пользователя
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, e := range l.limiters {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.limiters, k)
		}
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Middleware отклоняет запросы сверх лимита с 429.
// Ключ - пользователь из сессии, без сессии - адрес клиента.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if session, ok := GetSession(r.Context()); ok {
			key = session.CompanyRef + "/" + session.RequesterRef
		}
		if !l.Allow(key) {
			w.Header().Set("Retry-After", "60")
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
