package permissions

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestIsAuthorized(t *testing.T) {
	gate := NewGate([]string{"111", "222"}, newTestLogger())

	tests := []struct {
		sender string
		want   bool
	}{
		{"111", true},
		{"222", true},
		{"333", false},
		{"", false},
		{"111 ", false},
	}

	for _, tt := range tests {
		if got := gate.IsAuthorized(tt.sender); got != tt.want {
			t.Errorf("IsAuthorized(%q) = %v, want %v", tt.sender, got, tt.want)
		}
	}
}

func TestReportDeniedLogsOncePerSender(t *testing.T) {
	gate := NewGate(nil, newTestLogger())

	if !gate.ReportDenied("999") {
		t.Error("expected first denial to be logged")
	}
	if gate.ReportDenied("999") {
		t.Error("expected repeated denial to be suppressed")
	}
	if !gate.ReportDenied("998") {
		t.Error("expected denial from another sender to be logged")
	}

	// Reporting never changes the outcome.
	if gate.IsAuthorized("999") {
		t.Error("denied sender became authorized")
	}
}
