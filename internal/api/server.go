// Package api exposes the gatekeeper over HTTP: eligibility checks,
// guarded sends, and the bounce-notification webhook.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ignite/mailgate/internal/pkg/logger"
)

// Server wraps the HTTP server and its routes.
type Server struct {
	handlers *Handlers
	server   *http.Server
}

// NewServer creates the server around the given handlers.
func NewServer(h *Handlers) *Server {
	return &Server{handlers: h}
}

// Routes builds the router. Split out so tests can drive it directly.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handlers.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/eligibility", s.handlers.CheckEligibility)
		r.Post("/send", s.handlers.Send)
	})

	r.Post("/webhooks/bounce", s.handlers.BounceWebhook)

	return r
}

// ListenAndServe starts the HTTP server on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("http server listening", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
