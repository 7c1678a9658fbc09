// Package http exposes the habit tracker as a JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cuppa/internal/cache"
	"cuppa/internal/middleware/ratelimit"
	"cuppa/internal/services"
)

// Server wraps the HTTP server around the habit service. Derived read models
// for the overview endpoint are cached with explicit invalidation on every
// write that can change them.
type Server struct {
	http.Server
	habits         *services.HabitService
	metricsEnabled bool

	limiter       *ratelimit.Limiter
	overviewCache *cache.TTL[services.Overview]
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, habits *services.HabitService, metricsEnabled bool) *Server {
	s := &Server{
		habits:         habits,
		metricsEnabled: metricsEnabled,
		limiter:        ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		overviewCache:  cache.New[services.Overview](64, 5*time.Minute),
	}
	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestLogger)
	r.Use(securityHeaders)

	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.limiter.Middleware(clientIP))

		r.Get("/dashboard", s.handleDashboard)

		r.Get("/logs", s.handleListLogs)
		r.Post("/logs", s.handleCreateLog)
		r.Delete("/logs", s.handleClearLogs)

		r.Get("/overview", s.handleOverview)

		r.Get("/budget", s.handleGetBudget)
		r.Put("/budget", s.handleSetBudget)

		r.Get("/coins", s.handleGetCoins)
		r.Post("/coins/reset", s.handleResetCoins)

		r.Get("/cups", s.handleListCups)
		r.Post("/cups/{id}/purchase", s.handlePurchaseCup)
		r.Put("/cups/current", s.handleSelectCup)
	})

	if s.metricsEnabled {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	return r
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.Server.Shutdown(ctx)
}

// clientIP relies on chi's RealIP middleware having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
