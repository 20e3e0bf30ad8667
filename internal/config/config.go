package config

// Config represents the application configuration
type Config struct {
	Telegram   TelegramConfig `mapstructure:"telegram"`
	API        APIConfig      `mapstructure:"api"`
	Log        LogConfig      `mapstructure:"log"`
	HealthAddr string         `mapstructure:"health_addr"`
	SendQR     bool           `mapstructure:"send_qr"`
}

// TelegramConfig holds the Telegram bot configuration
type TelegramConfig struct {
	Token          string   `mapstructure:"token"`
	AllowedSenders []string `mapstructure:"allowed_senders"`
	CommandPrefix  string   `mapstructure:"command_prefix"`
}

// APIConfig holds the connection settings for the VPN provisioning API
type APIConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	InsecureTLS bool   `mapstructure:"insecure_tls"`
}

// LogConfig holds the logger settings
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}
