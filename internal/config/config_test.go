package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("STORAGE_TIMEOUT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	cfg := Load()
	if cfg.Port != "8000" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.StorageDriver != "memory" {
		t.Fatalf("expected memory storage by default, got %s", cfg.StorageDriver)
	}
	if cfg.StorageTimeout != 5*time.Second {
		t.Fatalf("expected default storage timeout, got %s", cfg.StorageTimeout)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Fatalf("expected wildcard CORS by default, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 0 {
		t.Fatalf("expected rate limiting disabled by default, got %v", cfg.RateLimitRPS)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected development env not to be production")
	}
}

func TestLoadEmailSettings(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "")
	if cfg := Load(); cfg.EmailProvider != "none" {
		t.Fatalf("expected email disabled by default, got %q", cfg.EmailProvider)
	}

	t.Setenv("EMAIL_PROVIDER", "SendGrid")
	t.Setenv("LEAD_ALERT_EMAIL", "agent@example.com")
	t.Setenv("SENDGRID_API_KEY", "sg-key")
	cfg := Load()
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected normalized provider, got %q", cfg.EmailProvider)
	}
	if cfg.LeadAlertEmail != "agent@example.com" || cfg.SendGridAPIKey != "sg-key" {
		t.Fatalf("unexpected email settings %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORAGE_DRIVER", " Mongo ")
	t.Setenv("STORAGE_TIMEOUT", "750ms")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "ytre")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "7")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("DYNAMODB_TABLE_PREFIX", "dev_")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production env")
	}
	if cfg.StorageDriver != "mongo" {
		t.Fatalf("expected normalized driver, got %q", cfg.StorageDriver)
	}
	if cfg.StorageTimeout != 750*time.Millisecond {
		t.Fatalf("expected storage timeout override, got %s", cfg.StorageTimeout)
	}
	if cfg.DatabaseURL != "mongodb://localhost:27017" || cfg.DatabaseName != "ytre" {
		t.Fatalf("expected db overrides, got %s %s", cfg.DatabaseURL, cfg.DatabaseName)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 7 {
		t.Fatalf("expected rate limit overrides, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if !cfg.RedisTLS {
		t.Fatalf("expected redis TLS enabled")
	}
	if cfg.DynamoTablePrefix != "dev_" {
		t.Fatalf("expected table prefix override, got %s", cfg.DynamoTablePrefix)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "lots")
	t.Setenv("STORAGE_TIMEOUT", "soon")
	cfg := Load()
	if cfg.RateLimitBurst != 20 {
		t.Fatalf("expected default burst, got %d", cfg.RateLimitBurst)
	}
	if cfg.StorageTimeout != 5*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.StorageTimeout)
	}
}
