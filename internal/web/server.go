// Package web exposes the album index over HTTP for local querying.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lakshayg/face-search/internal/face"
	"github.com/lakshayg/face-search/internal/index"
)

// Server serves face-search queries for a single album.
type Server struct {
	store      *index.Store
	matcher    *face.Matcher
	router     *chi.Mux
	httpServer *http.Server
}

// NewServer creates a web server bound to host:port over the given store
// and matcher.
func NewServer(store *index.Store, matcher *face.Matcher, host string, port int) *Server {
	r := chi.NewRouter()

	s := &Server{
		store:   store,
		matcher: matcher,
		router:  r,
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/files", s.handleFiles)
		r.Get("/stats", s.handleStats)
		r.Post("/search", s.handleSearch)
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	fmt.Printf("Listening on %s\n", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
