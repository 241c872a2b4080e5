package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/yt-re-growth-api/internal/diagnostics"
	httpmiddleware "github.com/wolfman30/yt-re-growth-api/internal/http/middleware"
	"github.com/wolfman30/yt-re-growth-api/internal/ideas"
	"github.com/wolfman30/yt-re-growth-api/internal/leads"
	"github.com/wolfman30/yt-re-growth-api/internal/observability/metrics"
	"github.com/wolfman30/yt-re-growth-api/internal/scripts"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	Diagnostics    *diagnostics.Handler
	LeadsHandler   *leads.Handler
	IdeasHandler   *ideas.Handler
	ScriptsHandler *scripts.Handler
	MetricsHandler http.Handler
	Metrics        *metrics.APIMetrics

	CORSAllowedOrigins []string

	// Per-IP limit on /api routes; zero disables it.
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(httpmiddleware.Metrics(cfg.Metrics))
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}

	// Status and diagnostics
	r.Group(func(public chi.Router) {
		if cfg.Diagnostics != nil {
			public.Get("/", cfg.Diagnostics.Root)
			public.Get("/test", cfg.Diagnostics.Test)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		if cfg.LeadsHandler != nil {
			api.Post("/leads", cfg.LeadsHandler.CreateLead)
		}
		if cfg.IdeasHandler != nil {
			api.Post("/ideas", cfg.IdeasHandler.GenerateIdeas)
		}
		if cfg.ScriptsHandler != nil {
			api.Post("/script", cfg.ScriptsHandler.GenerateScript)
		}
	})

	return r
}
