package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpgo/projection-engine/internal/calculation"
	"github.com/rpgo/projection-engine/internal/config"
)

// NewRouter creates and configures the HTTP router
func NewRouter(engine *calculation.CalculationEngine, settings config.Settings, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(NewCORS(settings.AllowedOrigins).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", Health)
		})

		r.Route("/projection", func(r chi.Router) {
			h := NewProjectionHandler(engine, logger)
			r.Post("/buckets", h.Buckets)
			r.Post("/accumulation", h.Accumulation)
			r.Post("/lump-sum", h.LumpSum)
			r.Post("/share-plan", h.SharePlan)
			r.Post("/social-security", h.SocialSecurity)
			r.Post("/run", h.Run)
		})
	})

	return r
}

// NewHTTPServer wraps the router in an http.Server using the configured timeouts
func NewHTTPServer(engine *calculation.CalculationEngine, settings config.Settings, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:         settings.Addr,
		Handler:      NewRouter(engine, settings, logger),
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
}
