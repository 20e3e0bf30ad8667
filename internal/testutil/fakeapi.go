// Package testutil provides an in-process stand-in for the VPN API.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// BasePath is the API prefix the fake backend serves under
const BasePath = "/api/v1"

// Call is a request received by the fake backend
type Call struct {
	Method    string
	Path      string
	Auth      string
	Content   string
	RequestID string
	Body      map[string]any
}

// FakeAPI is a gin-backed VPN API that records every request
type FakeAPI struct {
	Server *httptest.Server
	engine *gin.Engine

	mu    sync.Mutex
	calls []Call
}

// NewFakeAPI starts a fake backend. Login succeeds with token "test-token"
// unless overridden with On before the first request.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &FakeAPI{engine: gin.New()}
	f.engine.Use(f.record)
	f.Server = httptest.NewServer(f.engine)
	t.Cleanup(f.Server.Close)

	return f
}

// URL returns the API base URL
func (f *FakeAPI) URL() string {
	return f.Server.URL + BasePath
}

// On registers a canned JSON response for method and path (relative to BasePath)
func (f *FakeAPI) On(method, path string, status int, body any) {
	f.engine.Handle(method, BasePath+path, func(c *gin.Context) {
		c.JSON(status, body)
	})
}

// OK registers a success envelope wrapping data
func (f *FakeAPI) OK(method, path string, data any) {
	f.On(method, path, http.StatusOK, gin.H{"success": true, "message": "ok", "data": data})
}

// Fail registers an error envelope
func (f *FakeAPI) Fail(method, path string, status int, message string) {
	f.On(method, path, status, gin.H{"success": false, "error": message})
}

// Login registers a successful login returning token
func (f *FakeAPI) Login(token string) {
	f.OK(http.MethodPost, "/auth/login", gin.H{
		"token":      token,
		"username":   "admin",
		"expires_at": "2030-01-01T00:00:00Z",
	})
}

// Calls returns a copy of the recorded requests
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsExcept returns the recorded requests that did not hit path
func (f *FakeAPI) CallsExcept(path string) []Call {
	var calls []Call
	for _, call := range f.Calls() {
		if call.Path != BasePath+path {
			calls = append(calls, call)
		}
	}
	return calls
}

func (f *FakeAPI) record(c *gin.Context) {
	raw, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	call := Call{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		Auth:      c.GetHeader("Authorization"),
		Content:   c.GetHeader("Content-Type"),
		RequestID: c.GetHeader("X-Request-ID"),
	}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &call.Body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	c.Next()
}
