package vpnclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vpn-tg-admin/internal/config"
	"vpn-tg-admin/internal/constants"
	"vpn-tg-admin/internal/models"
)

// TokenSource supplies the bearer token attached to every request
type TokenSource interface {
	Token() (string, bool)
}

// Client executes authenticated requests against the VPN API
type Client struct {
	httpClient *resty.Client
	baseURL    string
	session    TokenSource
	logger     *logrus.Logger
}

type requestIDKey struct{}

// WithRequestID stores the correlation id sent as X-Request-ID
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation id stored in ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// NewHTTPClient creates the resty client shared by the session and the API client.
// It never retries and applies no local timeout.
func NewHTTPClient(apiConfig config.APIConfig) *resty.Client {
	httpClient := resty.New().
		SetTimeout(constants.BackendTimeout * time.Second).
		SetRetryCount(constants.BackendRetryCount)

	if apiConfig.InsecureTLS {
		httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return httpClient
}

// NewClient creates a new VPN API client
func NewClient(baseURL string, httpClient *resty.Client, session TokenSource, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		session:    session,
		logger:     logger,
	}
}

// Request sends exactly one request and returns its Result.
// body may be nil.
func (c *Client) Request(ctx context.Context, method, path string, body any) Result {
	operation := method + " " + path

	token, ok := c.session.Token()
	if !ok {
		return Failure(operation, 0, "not logged in to VPN API")
	}

	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	req := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetHeader(constants.RequestIDHeader, requestID)

	if body != nil {
		req.SetBody(body)
	}

	c.logger.Debugf("[%s] %s", requestID, operation)

	resp, err := req.Execute(method, c.baseURL+path)
	if err != nil {
		c.logger.Errorf("[%s] %s request failed: %v", requestID, operation, err)
		return Failure(operation, 0, "backend unreachable")
	}

	c.logger.Debugf("[%s] Response status: %d, body: %s", requestID, resp.StatusCode(), string(resp.Body()))

	if resp.IsSuccess() && len(bytes.TrimSpace(resp.Body())) == 0 {
		// 204 and other bodiless successes carry no envelope
		return Success(operation, resp.StatusCode(), nil, "")
	}

	var apiResp models.APIResponse
	decodeErr := json.Unmarshal(resp.Body(), &apiResp)

	if !resp.IsSuccess() {
		c.logger.Warnf("[%s] %s failed with status code %d", requestID, operation, resp.StatusCode())
		return Failure(operation, resp.StatusCode(), backendMessage(apiResp, resp.StatusCode()))
	}

	if decodeErr != nil {
		c.logger.Errorf("[%s] Failed to parse %s response: %v", requestID, operation, decodeErr)
		return Failure(operation, resp.StatusCode(), "invalid response from server")
	}

	if apiResp.Success != nil && !*apiResp.Success {
		return Failure(operation, resp.StatusCode(), backendMessage(apiResp, resp.StatusCode()))
	}

	return Success(operation, resp.StatusCode(), apiResp.Data, apiResp.Message)
}

// backendMessage picks the most specific message the backend sent
func backendMessage(apiResp models.APIResponse, status int) string {
	if apiResp.Error != "" {
		return apiResp.Error
	}
	if apiResp.Message != "" {
		return apiResp.Message
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "request failed"
}
