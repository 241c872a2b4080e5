package ideas

import (
	"net/http"

	"github.com/wolfman30/yt-re-growth-api/internal/http/respond"
	"github.com/wolfman30/yt-re-growth-api/internal/observability/metrics"
	"github.com/wolfman30/yt-re-growth-api/internal/validation"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

// Handler serves idea generation requests.
type Handler struct {
	logger  *logging.Logger
	metrics *metrics.APIMetrics
}

// NewHandler creates a new ideas handler. metrics may be nil.
func NewHandler(logger *logging.Logger, m *metrics.APIMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger, metrics: m}
}

// GenerateIdeas handles POST /api/ideas requests
func (h *Handler) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
	var req Request
	if verr := respond.DecodeJSON(w, r, &req); verr != nil {
		h.logger.Warn("invalid ideas request body", "error", verr)
		respond.ValidationError(w, verr)
		return
	}

	ideas, err := Generate(req)
	if err != nil {
		if verr, ok := validation.As(err); ok {
			respond.ValidationError(w, verr)
			return
		}
		h.logger.Error("failed to generate ideas", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate ideas")
		return
	}

	h.metrics.ObserveIdeas(len(ideas))
	respond.JSON(w, http.StatusOK, ideas)
}
