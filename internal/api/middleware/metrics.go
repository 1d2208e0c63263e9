package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// HTTPMetrics учитывает HTTP запросы
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// statusRecorder запоминает код ответа
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware пишет метрики по шаблону маршрута, чтобы ID не раздували кардинальность
func MetricsMiddleware(m HTTPMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			m.ObserveHTTPRequest(r.Method, route, rec.status, time.Since(start))
		})
	}
}
