package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SessionInfo is the part of the API session the health endpoint reports on
type SessionInfo interface {
	Token() (string, bool)
	AcquiredAt() time.Time
}

// HealthServer serves GET /healthz
type HealthServer struct {
	addr    string
	session SessionInfo
	engine  *gin.Engine
	logger  *logrus.Logger
}

// NewHealthServer creates a health server listening on addr.
// The gin mode is left to the caller.
func NewHealthServer(addr string, session SessionInfo, logger *logrus.Logger) *HealthServer {
	h := &HealthServer{
		addr:    addr,
		session: session,
		engine:  gin.New(),
		logger:  logger,
	}
	h.engine.Use(gin.Recovery())
	h.engine.GET("/healthz", h.handleHealth)
	return h
}

// Handler returns the HTTP handler
func (h *HealthServer) Handler() http.Handler {
	return h.engine
}

// Start serves until ctx is cancelled
func (h *HealthServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              h.addr,
		Handler:           h.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			h.logger.Warnf("Health server shutdown: %v", err)
		}
	}()

	h.logger.Infof("Health endpoint listening on %s", h.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *HealthServer) handleHealth(c *gin.Context) {
	if _, ok := h.session.Token(); !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unauthenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"token_acquired_at": h.session.AcquiredAt().UTC().Format(time.RFC3339),
	})
}
