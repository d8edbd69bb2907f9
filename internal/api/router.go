package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/good-yellow-bee/workfolio/internal/api/middleware"
	"github.com/good-yellow-bee/workfolio/internal/api/projects"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(cors.Handler(cors.Options{
		// Any frontend origin may call the API; there is no
		// credentialed auth to protect.
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(middleware.RequestLogger(s.config.Verbose))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.PrometheusMiddleware)
	r.Use(middleware.Recoverer)

	// Project routes
	r.Route("/api/projects", func(r chi.Router) {
		projectHandler := projects.NewHandler(s.storage)
		projectHandler.Routes(r)
	})

	// Liveness banner and readiness check (public)
	r.Get("/", s.healthHandler.Banner)
	r.Get("/health", s.healthHandler.Health)

	return r
}
