package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"vpn-tg-admin/internal/config"
	"vpn-tg-admin/internal/constants"
	"vpn-tg-admin/internal/handlers"
	"vpn-tg-admin/internal/permissions"
	"vpn-tg-admin/internal/services"
	"vpn-tg-admin/pkg/telegrambot"
	"vpn-tg-admin/pkg/vpnclient"
)

// transport delivers chat messages to the dispatcher
type transport interface {
	Start(ctx context.Context) error
}

// transportFactory builds the chat transport once the API session is established
type transportFactory func(cfg *config.Config, dispatcher *handlers.Dispatcher, qrService *services.QRService, logger *logrus.Logger) (transport, error)

func main() {
	// Setup logger
	logger := setupLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: ", err)
	}
	configureLogger(logger, cfg.Log)
	gin.SetMode(gin.ReleaseMode)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	if err := run(ctx, cfg, logger, newTelegramTransport); err != nil {
		logger.Fatal("Bot failed: ", err)
	}
}

// run logs in to the VPN API, wires the dispatcher and starts the transport.
// The transport is never constructed when login fails.
func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, newTransport transportFactory) error {
	httpClient := vpnclient.NewHTTPClient(cfg.API)

	session := vpnclient.NewSession(cfg.API, httpClient, logger)
	if err := session.Acquire(ctx); err != nil {
		return fmt.Errorf("failed to login to VPN API: %w", err)
	}

	// Initialize services
	client := vpnclient.NewClient(cfg.API.BaseURL, httpClient, session, logger)
	vpnService := services.NewVPNService(client, logger)
	qrService := services.NewQRService(logger)

	// Setup authorization gate
	gate := permissions.NewGate(cfg.Telegram.AllowedSenders, logger)

	dispatcher := handlers.NewDispatcher(vpnService, gate, cfg.Telegram.CommandPrefix, logger)

	if cfg.HealthAddr != "" {
		health := services.NewHealthServer(cfg.HealthAddr, session, logger)
		go func() {
			if err := health.Start(ctx); err != nil {
				logger.Errorf("Health server failed: %v", err)
			}
		}()
	}

	bot, err := newTransport(cfg, dispatcher, qrService, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting VPN admin bot")
	return bot.Start(ctx)
}

func newTelegramTransport(cfg *config.Config, dispatcher *handlers.Dispatcher, qrService *services.QRService, logger *logrus.Logger) (transport, error) {
	return telegrambot.NewBot(cfg, dispatcher, qrService, logger)
}

// setupLogger sets up the logger before configuration is available
func setupLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	// Set formatter
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: constants.TimestampFormat,
	})

	return logger
}

// configureLogger applies the configured level and optional rotating log file
func configureLogger(logger *logrus.Logger, cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.Warnf("Invalid log level %s, defaulting to info", cfg.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.File != "" {
		logger.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}))
	}
}
