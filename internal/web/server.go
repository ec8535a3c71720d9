// Package web provides the HTTP server exposing CSV upload and analysis
// as a JSON API. The UI rendering a preview, statistics or charts is an
// external collaborator; this layer only owns sessions and shapes results
// for it.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tablewise/tablewise"
)

// Server is the HTTP server for the CSV analysis application
type Server struct {
	store  *tablewise.SessionStore
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new Server backed by the given session store
func NewServer(store *tablewise.SessionStore) *Server {
	s := &Server{
		store:  store,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/upload", s.handleUpload)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/preview", s.handlePreview)
			r.Get("/filter", s.handleFilter)
			r.Get("/stats", s.handleStats)
			r.Get("/chart", s.handleChart)
			r.Get("/info", s.handleInfo)
			r.Delete("/", s.handleClear)
		})
	})
}

// ServeHTTP dispatches requests to the router; it makes Server usable
// directly in tests via httptest
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start begins listening on the given address
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
