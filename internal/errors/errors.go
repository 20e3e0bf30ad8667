package errors

import (
	"fmt"
)

// AuthenticationError represents a rejected login against the VPN API
type AuthenticationError struct {
	Status  int
	Message string
}

// Error returns the error message
func (e *AuthenticationError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("authentication failed: %s", e.Message)
	}
	return fmt.Sprintf("authentication failed (status %d): %s", e.Status, e.Message)
}

// UsageError represents a command invoked with too few arguments
type UsageError struct {
	Usage   string
	Example string
}

// Error returns the error message
func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %s", e.Usage)
}

// UnknownCommandError represents a prefixed message that names no known command
type UnknownCommandError struct {
	Name string
}

// Error returns the error message
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Name)
}

// BackendError represents a failed call to the VPN API
type BackendError struct {
	Operation string
	Status    int
	Message   string
}

// Error returns the error message
func (e *BackendError) Error() string {
	return fmt.Sprintf("VPN API error during %s (status %d): %s", e.Operation, e.Status, e.Message)
}

// CommandError attaches a user-facing summary to the error that made a command fail
type CommandError struct {
	Summary string
	Err     error
}

// Error returns the error message
func (e *CommandError) Error() string {
	if e.Err == nil {
		return e.Summary
	}
	return fmt.Sprintf("%s: %v", e.Summary, e.Err)
}

// Unwrap returns the underlying error
func (e *CommandError) Unwrap() error {
	return e.Err
}

// ConfigError represents an error related to configuration
type ConfigError struct {
	Section string
	Message string
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Section, e.Message)
}
