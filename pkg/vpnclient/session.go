package vpnclient

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"vpn-tg-admin/internal/config"
	"vpn-tg-admin/internal/constants"
	apperrors "vpn-tg-admin/internal/errors"
	"vpn-tg-admin/internal/models"
)

// Session owns the bearer token for the VPN API.
// The token is written by Acquire and only read afterwards.
type Session struct {
	httpClient *resty.Client
	apiConfig  config.APIConfig
	logger     *logrus.Logger

	mu         sync.RWMutex
	token      string
	acquiredAt time.Time
}

// NewSession creates a session that has not logged in yet
func NewSession(apiConfig config.APIConfig, httpClient *resty.Client, logger *logrus.Logger) *Session {
	return &Session{
		httpClient: httpClient,
		apiConfig:  apiConfig,
		logger:     logger,
	}
}

// Acquire logs in to the VPN API and stores the returned token.
// Any failure is returned as *errors.AuthenticationError.
func (s *Session) Acquire(ctx context.Context) error {
	s.logger.Infof("Logging in to VPN API at %s", s.apiConfig.BaseURL)
	s.logger.Debugf("Using username: %s", s.apiConfig.Username)

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{
			Username: s.apiConfig.Username,
			Password: s.apiConfig.Password,
		}).
		Post(s.apiConfig.BaseURL + constants.LoginPath)

	if err != nil {
		return &apperrors.AuthenticationError{Message: "login request failed: " + err.Error()}
	}

	var apiResp models.APIResponse
	decodeErr := json.Unmarshal(resp.Body(), &apiResp)

	if !resp.IsSuccess() {
		s.logger.Errorf("Login failed - URL: %s%s, Status: %d, Response: %s",
			s.apiConfig.BaseURL, constants.LoginPath, resp.StatusCode(), string(resp.Body()))
		return &apperrors.AuthenticationError{Status: resp.StatusCode(), Message: backendMessage(apiResp, resp.StatusCode())}
	}

	if decodeErr != nil {
		return &apperrors.AuthenticationError{Status: resp.StatusCode(), Message: "failed to parse login response: " + decodeErr.Error()}
	}

	var login models.LoginResponse
	if len(apiResp.Data) > 0 {
		if err := json.Unmarshal(apiResp.Data, &login); err != nil {
			return &apperrors.AuthenticationError{Status: resp.StatusCode(), Message: "failed to parse login data: " + err.Error()}
		}
	}

	if login.Token == "" {
		return &apperrors.AuthenticationError{Status: resp.StatusCode(), Message: "no token received from server"}
	}

	s.mu.Lock()
	s.token = login.Token
	s.acquiredAt = time.Now()
	s.mu.Unlock()

	if login.ExpiresAt != "" {
		s.logger.Infof("Successfully logged in to VPN API (token expires %s)", login.ExpiresAt)
	} else {
		s.logger.Info("Successfully logged in to VPN API")
	}
	return nil
}

// Token returns the current bearer token and whether one has been acquired
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// AcquiredAt returns when the current token was obtained
func (s *Session) AcquiredAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.acquiredAt
}
