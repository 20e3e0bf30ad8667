package vpnclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"

	"vpn-tg-admin/internal/config"
	apperrors "vpn-tg-admin/internal/errors"
	"vpn-tg-admin/internal/testutil"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newLoggedInClient(t *testing.T, api *testutil.FakeAPI) (*Client, *Session) {
	t.Helper()
	api.Login("test-token")

	apiConfig := config.APIConfig{BaseURL: api.URL(), Username: "admin", Password: "secret"}
	httpClient := NewHTTPClient(apiConfig)
	session := NewSession(apiConfig, httpClient, newTestLogger())
	if err := session.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	return NewClient(api.URL(), httpClient, session, newTestLogger()), session
}

func TestSessionAcquire(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	_, session := newLoggedInClient(t, api)

	token, ok := session.Token()
	if !ok || token != "test-token" {
		t.Fatalf("expected token 'test-token', got %q (ok=%v)", token, ok)
	}
	if session.AcquiredAt().IsZero() {
		t.Error("expected acquisition time to be recorded")
	}

	calls := api.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 login call, got %d", len(calls))
	}
	if calls[0].Body["username"] != "admin" || calls[0].Body["password"] != "secret" {
		t.Errorf("unexpected login body: %v", calls[0].Body)
	}
}

func TestSessionAcquireRejected(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Fail(http.MethodPost, "/auth/login", http.StatusUnauthorized, "Invalid credentials")

	apiConfig := config.APIConfig{BaseURL: api.URL(), Username: "admin", Password: "wrong"}
	session := NewSession(apiConfig, NewHTTPClient(apiConfig), newTestLogger())

	err := session.Acquire(context.Background())
	var authErr *apperrors.AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
	if authErr.Status != http.StatusUnauthorized || authErr.Message != "Invalid credentials" {
		t.Errorf("unexpected error: %+v", authErr)
	}
	if _, ok := session.Token(); ok {
		t.Error("expected no token after failed login")
	}
}

func TestSessionAcquireWithoutToken(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.OK(http.MethodPost, "/auth/login", map[string]string{"username": "admin"})

	apiConfig := config.APIConfig{BaseURL: api.URL(), Username: "admin", Password: "secret"}
	session := NewSession(apiConfig, NewHTTPClient(apiConfig), newTestLogger())

	var authErr *apperrors.AuthenticationError
	if err := session.Acquire(context.Background()); !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
}

func TestRequestAttachesHeaders(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.OK(http.MethodGet, "/system/status", map[string]bool{"ssh": true})
	client, _ := newLoggedInClient(t, api)

	ctx := WithRequestID(context.Background(), "req-1")
	res := client.Request(ctx, http.MethodGet, "/system/status", nil)
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	if res.Status() != http.StatusOK {
		t.Errorf("expected status 200, got %d", res.Status())
	}

	calls := api.CallsExcept("/auth/login")
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Auth != "Bearer test-token" {
		t.Errorf("expected bearer token, got %q", calls[0].Auth)
	}
	if calls[0].Content != "application/json" {
		t.Errorf("expected JSON content type, got %q", calls[0].Content)
	}
	if calls[0].RequestID != "req-1" {
		t.Errorf("expected request id req-1, got %q", calls[0].RequestID)
	}

	var status struct {
		SSH bool `json:"ssh"`
	}
	if err := res.Decode(&status); err != nil || !status.SSH {
		t.Errorf("unexpected decode result %+v, err %v", status, err)
	}
}

func TestRequestGeneratesRequestID(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.OK(http.MethodGet, "/system/info", map[string]string{})
	client, _ := newLoggedInClient(t, api)

	client.Request(context.Background(), http.MethodGet, "/system/info", nil)

	calls := api.CallsExcept("/auth/login")
	if len(calls) != 1 || calls[0].RequestID == "" {
		t.Fatalf("expected a generated request id, got %+v", calls)
	}
}

func TestRequestFailureCarriesBackendMessage(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Fail(http.MethodDelete, "/vpn/ssh/users/john", http.StatusNotFound, "user not found")
	client, _ := newLoggedInClient(t, api)

	res := client.Request(context.Background(), http.MethodDelete, "/vpn/ssh/users/john", nil)
	if res.OK() {
		t.Fatal("expected failure")
	}
	if res.Status() != http.StatusNotFound || res.Message() != "user not found" {
		t.Errorf("unexpected failure: status %d message %q", res.Status(), res.Message())
	}

	var backendErr *apperrors.BackendError
	if err := res.Decode(&struct{}{}); !errors.As(err, &backendErr) {
		t.Fatalf("expected Decode to return BackendError, got %v", err)
	}
	if backendErr.Operation != "DELETE /vpn/ssh/users/john" {
		t.Errorf("unexpected operation %q", backendErr.Operation)
	}
}

func TestRequestFailureWithoutEnvelope(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client, _ := newLoggedInClient(t, api)

	// No route registered: gin answers 404 with a plain-text body.
	res := client.Request(context.Background(), http.MethodGet, "/missing", nil)
	if res.OK() {
		t.Fatal("expected failure")
	}
	if res.Message() != http.StatusText(http.StatusNotFound) {
		t.Errorf("expected status text fallback, got %q", res.Message())
	}
}

func TestRequestIsNotRetried(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Fail(http.MethodGet, "/system/status", http.StatusServiceUnavailable, "busy")
	client, _ := newLoggedInClient(t, api)

	client.Request(context.Background(), http.MethodGet, "/system/status", nil)

	if calls := api.CallsExcept("/auth/login"); len(calls) != 1 {
		t.Errorf("expected exactly 1 request, got %d", len(calls))
	}
}

func TestRequestTransportFailure(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client, _ := newLoggedInClient(t, api)
	api.Server.Close()

	res := client.Request(context.Background(), http.MethodGet, "/system/status", nil)
	if res.OK() {
		t.Fatal("expected failure")
	}
	if res.Status() != 0 || res.Message() != "backend unreachable" {
		t.Errorf("unexpected failure: status %d message %q", res.Status(), res.Message())
	}
}

type noToken struct{}

func (noToken) Token() (string, bool) { return "", false }

func TestRequestWithoutToken(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client := NewClient(api.URL(), NewHTTPClient(config.APIConfig{}), noToken{}, newTestLogger())

	res := client.Request(context.Background(), http.MethodGet, "/system/status", nil)
	if res.OK() {
		t.Fatal("expected failure without token")
	}
	if len(api.Calls()) != 0 {
		t.Errorf("expected no requests without a token, got %d", len(api.Calls()))
	}
}

func TestSuccessFlagFalseIsFailure(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.On(http.MethodGet, "/system/status", http.StatusOK, map[string]any{"success": false, "message": "degraded"})
	client, _ := newLoggedInClient(t, api)

	res := client.Request(context.Background(), http.MethodGet, "/system/status", nil)
	if res.OK() || res.Message() != "degraded" {
		t.Errorf("expected failure with message 'degraded', got ok=%v message=%q", res.OK(), res.Message())
	}
}

func TestBodilessSuccessIsSuccess(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.On(http.MethodDelete, "/vpn/ssh/users/john", http.StatusNoContent, nil)
	client, _ := newLoggedInClient(t, api)

	res := client.Request(context.Background(), http.MethodDelete, "/vpn/ssh/users/john", nil)
	if !res.OK() || res.Err() != nil {
		t.Fatalf("expected success for 204, got %v", res.Err())
	}
	if res.Status() != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", res.Status())
	}

	var backendErr *apperrors.BackendError
	if err := res.Decode(&struct{}{}); !errors.As(err, &backendErr) || backendErr.Message != "empty response from server" {
		t.Errorf("expected empty response error from Decode, got %v", err)
	}
}

func TestSessionAcquireToleratesExpiryFormat(t *testing.T) {
	for _, expiresAt := range []any{"in 24 hours", 1767225600, nil} {
		api := testutil.NewFakeAPI(t)
		api.OK(http.MethodPost, "/auth/login", map[string]any{"token": "t", "expires_at": expiresAt})

		apiConfig := config.APIConfig{BaseURL: api.URL(), Username: "admin", Password: "secret"}
		session := NewSession(apiConfig, NewHTTPClient(apiConfig), newTestLogger())
		if err := session.Acquire(context.Background()); err != nil {
			t.Errorf("expires_at %v: expected login to succeed, got %v", expiresAt, err)
		}
	}
}
