package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cuppa/internal/metrics"
)

// requestLogger logs every request on completion and records its latency.
// 4xx responses log at Warn, 5xx at Error.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		ctx := r.Context()
		status := ww.Status()
		duration := time.Since(start)

		route := r.URL.Path
		if rctx := chi.RouteContext(ctx); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.HTTPDuration.WithLabelValues(route, strconv.Itoa(status)).
			Observe(duration.Seconds())

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		slog.Default().Log(ctx, level, "Request completed",
			"request_id", middleware.GetReqID(ctx),
			"method", r.Method,
			"url", r.URL.Path,
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"client_ip", r.RemoteAddr)
	})
}

// securityHeaders sets the standard hardening headers on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
