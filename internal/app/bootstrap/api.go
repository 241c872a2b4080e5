package bootstrap

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/yt-re-growth-api/internal/api/router"
	appconfig "github.com/wolfman30/yt-re-growth-api/internal/config"
	"github.com/wolfman30/yt-re-growth-api/internal/diagnostics"
	"github.com/wolfman30/yt-re-growth-api/internal/ideas"
	"github.com/wolfman30/yt-re-growth-api/internal/leads"
	"github.com/wolfman30/yt-re-growth-api/internal/observability/metrics"
	"github.com/wolfman30/yt-re-growth-api/internal/scripts"
	"github.com/wolfman30/yt-re-growth-api/internal/storage"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

// NewRegistry returns a Prometheus registry with the Go and process
// collectors installed.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// APIDeps are the collaborators BuildAPI wires in. Every field is optional.
type APIDeps struct {
	// Store may be nil, in which case lead capture fails and the diagnostics
	// probe reports an uninitialized backend.
	Store    storage.Store
	Registry *prometheus.Registry
	Alerts   leads.Notifier
}

// API is the routed HTTP handler plus the background work it may start.
type API struct {
	http.Handler
	leads *leads.Service
}

// Wait blocks until post-capture notifications have finished.
func (a *API) Wait() {
	a.leads.Wait()
}

// BuildAPI assembles every handler and returns the routed API.
func BuildAPI(cfg *appconfig.Config, logger *logging.Logger, deps APIDeps) *API {
	if logger == nil {
		logger = logging.Default()
	}
	reg := deps.Registry
	if reg == nil {
		reg = NewRegistry()
	}
	store := deps.Store
	apiMetrics := metrics.NewAPIMetrics(reg)

	leadOpts := []leads.Option{
		leads.WithMetrics(apiMetrics),
		leads.WithTimeout(cfg.StorageTimeout),
	}
	if deps.Alerts != nil {
		leadOpts = append(leadOpts, leads.WithNotifier(deps.Alerts))
	}
	leadService := leads.NewService(store, logger, leadOpts...)

	handler := router.New(&router.Config{
		Logger: logger,
		Diagnostics: diagnostics.NewHandler(diagnostics.Config{
			Store:           store,
			DatabaseURLSet:  cfg.DatabaseURL != "",
			DatabaseNameSet: cfg.DatabaseName != "",
			Timeout:         cfg.StorageTimeout,
		}, logger),
		LeadsHandler:       leads.NewHandler(leadService, logger),
		IdeasHandler:       ideas.NewHandler(logger, apiMetrics),
		ScriptsHandler:     scripts.NewHandler(logger, apiMetrics),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Metrics:            apiMetrics,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})
	return &API{Handler: handler, leads: leadService}
}
