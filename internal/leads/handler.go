package leads

import (
	"context"
	"errors"
	"net/http"

	"github.com/wolfman30/yt-re-growth-api/internal/http/respond"
	"github.com/wolfman30/yt-re-growth-api/internal/validation"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

// Capturer stores a lead submission.
type Capturer interface {
	Capture(ctx context.Context, lead Lead) (*CaptureResult, error)
}

// Handler handles HTTP requests for leads
type Handler struct {
	capturer Capturer
	logger   *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(capturer Capturer, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		capturer: capturer,
		logger:   logger,
	}
}

// CreateLead handles POST /api/leads requests
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var lead Lead
	if verr := respond.DecodeJSON(w, r, &lead); verr != nil {
		h.logger.Warn("failed to decode lead", "error", verr)
		respond.ValidationError(w, verr)
		return
	}

	result, err := h.capturer.Capture(r.Context(), lead)
	if err != nil {
		if verr, ok := validation.As(err); ok {
			respond.ValidationError(w, verr)
			return
		}
		h.logger.Error("failed to create lead", "error", err, "storage", errors.Is(err, ErrStorage))
		respond.Error(w, http.StatusInternalServerError, "failed to capture lead")
		return
	}

	respond.JSON(w, http.StatusOK, result)
}
