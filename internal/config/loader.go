package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"vpn-tg-admin/internal/constants"
	apperrors "vpn-tg-admin/internal/errors"
)

// Load loads the configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	// Set default values
	v.SetDefault("LOG_LEVEL", constants.DefaultLogLevel)
	v.SetDefault("LOG_MAX_SIZE_MB", constants.DefaultLogMaxSizeMB)
	v.SetDefault("LOG_MAX_BACKUPS", constants.DefaultLogMaxBackups)
	v.SetDefault("LOG_MAX_AGE_DAYS", constants.DefaultLogMaxAgeDays)
	v.SetDefault("COMMAND_PREFIX", constants.DefaultCommandPrefix)
	v.SetDefault("SEND_QR", true)
	v.SetDefault("API_INSECURE_TLS", false)

	// Define environment variables
	for _, key := range []string{
		"TG_TOKEN",
		"ALLOWED_SENDERS",
		"COMMAND_PREFIX",
		"API_BASE_URL",
		"API_USERNAME",
		"API_PASSWORD",
		"API_INSECURE_TLS",
		"LOG_LEVEL",
		"LOG_FILE",
		"LOG_MAX_SIZE_MB",
		"LOG_MAX_BACKUPS",
		"LOG_MAX_AGE_DAYS",
		"HEALTH_ADDR",
		"SEND_QR",
	} {
		_ = v.BindEnv(key)
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			Token:          strings.TrimSpace(v.GetString("TG_TOKEN")),
			AllowedSenders: parseList(v.GetString("ALLOWED_SENDERS")),
			CommandPrefix:  strings.TrimSpace(v.GetString("COMMAND_PREFIX")),
		},
		API: APIConfig{
			BaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString("API_BASE_URL")), "/"),
			Username:    strings.TrimSpace(v.GetString("API_USERNAME")),
			Password:    strings.TrimSpace(v.GetString("API_PASSWORD")),
			InsecureTLS: v.GetBool("API_INSECURE_TLS"),
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			File:       strings.TrimSpace(v.GetString("LOG_FILE")),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		HealthAddr: strings.TrimSpace(v.GetString("HEALTH_ADDR")),
		SendQR:     v.GetBool("SEND_QR"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseList splits a comma separated list, dropping empty items
func parseList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Telegram.Token == "" {
		return &apperrors.ConfigError{Section: "telegram", Message: "TG_TOKEN is required"}
	}
	if len(cfg.Telegram.AllowedSenders) == 0 {
		return &apperrors.ConfigError{Section: "telegram", Message: "ALLOWED_SENDERS is required"}
	}
	if len([]rune(cfg.Telegram.CommandPrefix)) != 1 {
		return &apperrors.ConfigError{Section: "telegram", Message: "COMMAND_PREFIX must be a single character"}
	}

	if cfg.API.BaseURL == "" {
		return &apperrors.ConfigError{Section: "api", Message: "API_BASE_URL is required"}
	}
	if cfg.API.Username == "" || cfg.API.Password == "" {
		return &apperrors.ConfigError{Section: "api", Message: "API_USERNAME and API_PASSWORD are required"}
	}

	return nil
}
