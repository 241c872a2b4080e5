package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wolfman30/yt-re-growth-api/internal/leads"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

// LeadAlerts emails a fixed recipient about every captured lead.
type LeadAlerts struct {
	email  EmailSender
	to     string
	logger *logging.Logger
	now    func() time.Time
}

// NewLeadAlerts returns nil when either the sender or the recipient is
// missing, which disables alerts.
func NewLeadAlerts(email EmailSender, to string, logger *logging.Logger) *LeadAlerts {
	to = strings.TrimSpace(to)
	if email == nil || to == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadAlerts{email: email, to: to, logger: logger, now: time.Now}
}

// LeadCaptured sends the alert for a stored lead.
func (a *LeadAlerts) LeadCaptured(ctx context.Context, id string, lead leads.Lead) error {
	if a == nil {
		return nil
	}
	msg := EmailMessage{
		To:      a.to,
		Subject: fmt.Sprintf("New lead: %s (%s)", lead.Name, lead.Source),
		Body:    leadAlertBody(id, lead, a.now().UTC()),
	}
	if err := a.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: lead alert: %w", err)
	}
	a.logger.Debug("lead alert sent", "id", id)
	return nil
}

func leadAlertBody(id string, lead leads.Lead, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new lead was captured on %s.\n\n", at.Format("January 2, 2006 at 3:04 PM MST"))
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	if lead.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", lead.Phone)
	}
	if lead.Niche != "" {
		fmt.Fprintf(&b, "Niche: %s\n", lead.Niche)
	}
	if lead.ChannelURL != "" {
		fmt.Fprintf(&b, "Channel: %s\n", lead.ChannelURL)
	}
	fmt.Fprintf(&b, "Source: %s\n", lead.Source)
	fmt.Fprintf(&b, "Lead ID: %s\n", id)
	return b.String()
}

var _ leads.Notifier = (*LeadAlerts)(nil)
