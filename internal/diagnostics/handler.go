// Package diagnostics serves the service banner and a storage reachability
// probe. Neither endpoint ever fails the request.
package diagnostics

import (
	"context"
	"net/http"
	"time"

	"github.com/wolfman30/yt-re-growth-api/internal/http/respond"
	"github.com/wolfman30/yt-re-growth-api/internal/storage"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

const (
	// ServiceName is reported by the root endpoint.
	ServiceName = "yt-re-real-estate"

	// MaxCollections caps the collection names reported by the probe.
	MaxCollections = 10

	// MaxErrorLength caps the probe error text, in characters.
	MaxErrorLength = 80
)

// Probe result labels.
const (
	BackendRunning        = "✅ Running"
	DatabaseNotAvailable  = "❌ Not Available"
	DatabaseAvailable     = "✅ Available"
	DatabaseUninitialized = "⚠️  Available but not initialized"
	DatabaseWorking       = "✅ Connected & Working"
	DatabaseErrorPrefix   = "⚠️  Connected but Error: "
	SettingSet            = "✅ Set"
	SettingNotSet         = "❌ Not Set"
	StatusConnected       = "Connected"
	StatusNotConnected    = "Not Connected"
)

// RootStatus is the body of GET /.
type RootStatus struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

// Status is the body of GET /test.
type Status struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Config describes what the probe reports about.
type Config struct {
	// Store may be nil when no storage backend could be initialized.
	Store           storage.Store
	DatabaseURLSet  bool
	DatabaseNameSet bool
	Timeout         time.Duration
}

// Handler serves the diagnostics endpoints.
type Handler struct {
	cfg    Config
	logger *logging.Logger
}

// NewHandler creates a diagnostics handler.
func NewHandler(cfg Config, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{cfg: cfg, logger: logger}
}

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, RootStatus{Service: ServiceName, Status: "ok"})
}

// Test handles GET /test.
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Probe(r.Context()))
}

// Probe builds the storage status report.
func (h *Handler) Probe(ctx context.Context) Status {
	status := Status{
		Backend:          BackendRunning,
		Database:         DatabaseNotAvailable,
		ConnectionStatus: StatusNotConnected,
		Collections:      []string{},
	}

	if h.cfg.Store == nil {
		status.Database = DatabaseUninitialized
		return status
	}

	status.Database = DatabaseAvailable
	status.DatabaseURL = setting(h.cfg.DatabaseURLSet)
	status.DatabaseName = setting(h.cfg.DatabaseNameSet)
	status.ConnectionStatus = StatusConnected

	if h.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.Timeout)
		defer cancel()
	}

	names, err := h.cfg.Store.ListCollectionNames(ctx)
	if err != nil {
		h.logger.Warn("storage probe failed", "error", err)
		status.Database = DatabaseErrorPrefix + truncate(err.Error(), MaxErrorLength)
		return status
	}

	if len(names) > MaxCollections {
		names = names[:MaxCollections]
	}
	if names != nil {
		status.Collections = names
	}
	status.Database = DatabaseWorking
	return status
}

func setting(set bool) *string {
	v := SettingNotSet
	if set {
		v = SettingSet
	}
	return &v
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
