// Package httpserver provides the HTTP REST API server for the dashboard service.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/rhettlabs/research-dashboard-service/internal/dashboard"
	"github.com/rhettlabs/research-dashboard-service/internal/observability"
)

// Server is the HTTP REST API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	svc        *dashboard.Service
	logger     zerolog.Logger
	metrics    *observability.Metrics
	cors       []string
}

// Config holds HTTP server configuration.
type Config struct {
	Address            string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
}

// NewServer creates a new HTTP server with all dependencies. The metrics may
// be nil when metrics exposure is disabled.
func NewServer(cfg Config, svc *dashboard.Service, logger zerolog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		svc:     svc,
		logger:  logger.With().Str("component", "http-server").Logger(),
		metrics: metrics,
		cors:    cfg.CORSAllowedOrigins,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cors,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Correlation-ID"},
		MaxAge:         300,
	}))
	r.Use(jsonContentTypeMiddleware)
	r.Use(s.requestMetricsMiddleware)

	// Health endpoint (no instrumentation beyond the global chain)
	r.Get("/healthz", s.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/wordcloud", s.getWordCloud)
		r.Get("/trending", s.getTrending)
		r.Get("/researchers", s.getResearchers)
		r.Post("/chat", s.postChat)
		r.Post("/rsti-advisor", s.postRSTIAdvisor)
		r.Get("/lootbox", s.getLootbox)
		r.Post("/lifepath", s.postLifePath)
	})

	return r
}

// Router exposes the configured handler, primarily for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthHandler returns basic liveness status. The service holds no
// stateful backends, so liveness is process liveness.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort log; headers already sent.
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
