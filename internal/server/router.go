package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yourusername/race-lens/internal/metrics"
)

// NewRouter wires the API routes, middleware and the metrics endpoint.
func NewRouter(handler *Handler, corsOrigins []string) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Routes
	r.Get("/health", handler.HealthCheck)
	r.Method("GET", "/metrics", metrics.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", handler.AnalyzeSnapshot)

		r.Route("/races/{date}/{race}", func(r chi.Router) {
			r.Get("/analysis", handler.GetRaceAnalysis)
			r.Get("/export", handler.ExportRaceAnalysis)
		})
	})

	return r
}
