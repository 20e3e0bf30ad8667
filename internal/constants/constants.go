package constants

import "time"

const (
	// Command grammar constants
	DefaultCommandPrefix = "/"
	BotNameSeparator     = "@"

	// Credential constants
	GeneratedPasswordLength = 8
	PasswordAlphabet        = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Network constants
	BackendTimeout    = 0 // no local deadline on backend calls
	BackendRetryCount = 0
	PollerTimeout     = 10 * time.Second
	RequestIDHeader   = "X-Request-ID"
	LoginPath         = "/auth/login"

	// Cache constants
	DeniedLogInterval    = 10 * time.Minute
	CacheCleanupInterval = 30 * time.Minute

	// QR constants
	QRSize           = 256
	ShareLinkPrefix  = "link_"
	ShareLinkCaption = "📷 %s"

	// Quick action constants
	QuickListPrefix = "list_"
	QuickActionsRow = 2

	// Logging constants
	DefaultLogLevel      = "info"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28

	// Formatting constants
	TimestampFormat = "2006-01-02 15:04:05"
	DateFormat      = "2006-01-02"
)
