package leads

import (
	"strings"
	"time"

	"github.com/wolfman30/yt-re-growth-api/internal/storage"
	"github.com/wolfman30/yt-re-growth-api/internal/validation"
)

const (
	// DefaultSource tags leads that arrive without a source.
	DefaultSource = "website"

	// CapturedMessage is returned with the id of every stored lead.
	CapturedMessage = "Lead captured"
)

// Lead represents a contact submission from the marketing site
type Lead struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone,omitempty"`
	Niche      string `json:"niche,omitempty"`
	ChannelURL string `json:"channel_url,omitempty"`
	Source     string `json:"source,omitempty"`
}

var _ storage.Entity = Lead{}

// Collection places leads in the "lead" collection.
func (Lead) Collection() storage.Collection {
	return storage.CollectionLead
}

// WithDefaults returns a copy with the source default applied.
func (l Lead) WithDefaults() Lead {
	if strings.TrimSpace(l.Source) == "" {
		l.Source = DefaultSource
	}
	return l
}

// Validate checks name and email. The returned error, if any, is a
// *validation.Error listing every failing field.
func (l Lead) Validate() error {
	verr := validation.Struct(l)
	if l.Name != "" && strings.TrimSpace(l.Name) == "" && !verr.Has("name") {
		verr.Add("name", validation.TypeMissing, "Field required")
	}
	return verr.Err()
}

// Document converts the lead to its stored form, stamped with now.
func (l Lead) Document(now time.Time) storage.Document {
	now = now.UTC()
	return storage.Document{
		"name":        l.Name,
		"email":       l.Email,
		"phone":       optional(l.Phone),
		"niche":       optional(l.Niche),
		"channel_url": optional(l.ChannelURL),
		"source":      l.Source,
		"created_at":  now,
		"updated_at":  now,
	}
}

func optional(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// CaptureResult is the response body for a stored lead.
type CaptureResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
