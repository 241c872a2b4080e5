package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/wolfman30/yt-re-growth-api/internal/config"
	"github.com/wolfman30/yt-re-growth-api/internal/leads"
	"github.com/wolfman30/yt-re-growth-api/internal/notify"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

// Email providers accepted in EMAIL_PROVIDER.
const (
	EmailProviderNone     = "none"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderSES      = "ses"
	EmailProviderLog      = "log"
)

// BuildLeadAlerts returns the lead notifier selected by cfg, or nil when
// alerts are disabled.
func BuildLeadAlerts(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, loadAWS AWSConfigLoader) (leads.Notifier, error) {
	if logger == nil {
		logger = logging.Default()
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.EmailProvider))
	if provider == "" || provider == EmailProviderNone {
		return nil, nil
	}
	if strings.TrimSpace(cfg.LeadAlertEmail) == "" {
		logger.Warn("lead alerts disabled: LEAD_ALERT_EMAIL not set", "provider", provider)
		return nil, nil
	}

	var sender notify.EmailSender
	switch provider {
	case EmailProviderSendGrid:
		sg := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sg == nil {
			return nil, fmt.Errorf("bootstrap: SENDGRID_API_KEY required for %s provider", provider)
		}
		sender = sg
	case EmailProviderSES:
		if loadAWS == nil {
			return nil, fmt.Errorf("bootstrap: no AWS config loader for %s provider", provider)
		}
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: aws config: %w", err)
		}
		sender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
	case EmailProviderLog:
		sender = notify.NewStubEmailSender(logger)
	default:
		return nil, fmt.Errorf("bootstrap: unknown email provider %q", cfg.EmailProvider)
	}

	logger.Info("lead alerts enabled", "provider", provider)
	return notify.NewLeadAlerts(sender, cfg.LeadAlertEmail, logger), nil
}
