package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/copywriter/internal/metrics"
)

// Logging returns a middleware that logs every HTTP request and records it
// in m. It logs method, path, status, duration and the user ID when the
// session gate has set one.
func Logging(logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			info := &requestInfo{}
			r = r.WithContext(withRequestInfo(r.Context(), info))

			next.ServeHTTP(sw, r)

			duration := time.Since(start)
			route := routePattern(r)

			if m != nil {
				m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
				m.HTTPDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int64("duration_ms", duration.Milliseconds()),
			}
			if info.userID != "" {
				attrs = append(attrs, slog.String("user_id", info.userID))
			}

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "Request completed", attrs...)
		})
	}
}

// routePattern returns the matched chi route, or "unmatched" so unknown
// paths do not blow up metric cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}
