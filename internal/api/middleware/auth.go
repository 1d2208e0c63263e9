package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-DroneBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderCompanyID = "X-Company-ID"

	msgMissingSession = "отсутствуют заголовки X-User-ID и X-Company-ID"
)

type ctxKey int

const sessionKey ctxKey = iota

// Auth кладет в контекст сессию из заголовков X-User-ID и X-Company-ID.
// Без обоих заголовков запрос отклоняется с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := domain.Session{
			RequesterRef: strings.TrimSpace(r.Header.Get(HeaderUserID)),
			CompanyRef:   strings.TrimSpace(r.Header.Get(HeaderCompanyID)),
		}
		if !session.IsValid() {
			handlers.RespondUnauthorized(w, msgMissingSession)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// WithSession возвращает контекст с сессией
func WithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession достает сессию из контекста
func GetSession(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(domain.Session)
	return session, ok
}

// ContextSessions отдает сессию запроса use case'ам
type ContextSessions struct{}

// Session возвращает сессию из контекста
func (ContextSessions) Session(ctx context.Context) (domain.Session, bool) {
	return GetSession(ctx)
}
