package config

import (
	"errors"
	"testing"

	apperrors "vpn-tg-admin/internal/errors"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TG_TOKEN", "123:abc")
	t.Setenv("ALLOWED_SENDERS", " 111, 222 ,,333")
	t.Setenv("API_BASE_URL", "http://localhost:8080/api/v1/")
	t.Setenv("API_USERNAME", "admin")
	t.Setenv("API_PASSWORD", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := cfg.Telegram.AllowedSenders; len(got) != 3 || got[0] != "111" || got[1] != "222" || got[2] != "333" {
		t.Errorf("unexpected allowed senders: %q", got)
	}
	if cfg.Telegram.CommandPrefix != "/" {
		t.Errorf("expected default prefix '/', got %q", cfg.Telegram.CommandPrefix)
	}
	if cfg.API.BaseURL != "http://localhost:8080/api/v1" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Log.Level)
	}
	if !cfg.SendQR {
		t.Error("expected SEND_QR to default to true")
	}
	if cfg.HealthAddr != "" {
		t.Errorf("expected health server disabled by default, got %q", cfg.HealthAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COMMAND_PREFIX", "!")
	t.Setenv("SEND_QR", "false")
	t.Setenv("LOG_MAX_BACKUPS", "7")
	t.Setenv("HEALTH_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Telegram.CommandPrefix != "!" {
		t.Errorf("expected prefix '!', got %q", cfg.Telegram.CommandPrefix)
	}
	if cfg.SendQR {
		t.Error("expected SEND_QR=false to disable QR codes")
	}
	if cfg.Log.MaxBackups != 7 {
		t.Errorf("expected 7 log backups, got %d", cfg.Log.MaxBackups)
	}
	if cfg.HealthAddr != ":9090" {
		t.Errorf("expected health addr :9090, got %q", cfg.HealthAddr)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"token", "TG_TOKEN"},
		{"senders", "ALLOWED_SENDERS"},
		{"base url", "API_BASE_URL"},
		{"password", "API_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			var cfgErr *apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestLoadRejectsLongPrefix(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COMMAND_PREFIX", "//")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for multi-character prefix")
	}
}
