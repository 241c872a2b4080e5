package scripts

import (
	"net/http"

	"github.com/wolfman30/yt-re-growth-api/internal/http/respond"
	"github.com/wolfman30/yt-re-growth-api/internal/observability/metrics"
	"github.com/wolfman30/yt-re-growth-api/internal/validation"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

// Handler serves script outline requests.
type Handler struct {
	logger  *logging.Logger
	metrics *metrics.APIMetrics
}

// NewHandler creates a new scripts handler. metrics may be nil.
func NewHandler(logger *logging.Logger, m *metrics.APIMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger, metrics: m}
}

// GenerateScript handles POST /api/script requests
func (h *Handler) GenerateScript(w http.ResponseWriter, r *http.Request) {
	var req Request
	if verr := respond.DecodeJSON(w, r, &req); verr != nil {
		h.logger.Warn("invalid script request body", "error", verr)
		respond.ValidationError(w, verr)
		return
	}

	script, err := Generate(req)
	if err != nil {
		if verr, ok := validation.As(err); ok {
			respond.ValidationError(w, verr)
			return
		}
		h.logger.Error("failed to generate script", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate script")
		return
	}

	h.metrics.ObserveScript()
	respond.JSON(w, http.StatusOK, script)
}
