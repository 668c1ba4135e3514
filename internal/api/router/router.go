// Package router assembles the HTTP surface of the automation API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ctisdesk/autopilot/internal/http/handlers"
	httpmiddleware "github.com/ctisdesk/autopilot/internal/http/middleware"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	WorkflowHandler    *handlers.WorkflowHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// RunRateLimit caps /workflows/run requests per second per IP.
	// Zero disables rate limiting.
	RunRateLimit float64
	RunRateBurst int
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.WorkflowHandler.Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/workflows", func(wr chi.Router) {
		if cfg.RunRateLimit > 0 {
			burst := cfg.RunRateBurst
			if burst <= 0 {
				burst = int(cfg.RunRateLimit) + 1
			}
			wr.Use(httpmiddleware.RateLimit(cfg.RunRateLimit, burst))
		}
		wr.Post("/run", cfg.WorkflowHandler.Run)
		wr.Get("/runs", cfg.WorkflowHandler.RecentRuns)
	})

	return r
}
