package vpnclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "vpn-tg-admin/internal/errors"
)

// Result is the outcome of a single VPN API call: either a success carrying
// the unwrapped data payload, or a failure carrying the HTTP status and the
// backend's message. A Result is never both.
type Result struct {
	ok        bool
	operation string
	status    int
	payload   json.RawMessage
	message   string
}

// Success builds a successful Result
func Success(operation string, status int, payload json.RawMessage, message string) Result {
	return Result{ok: true, operation: operation, status: status, payload: payload, message: message}
}

// Failure builds a failed Result
func Failure(operation string, status int, message string) Result {
	return Result{operation: operation, status: status, message: message}
}

// OK reports whether the call succeeded
func (r Result) OK() bool { return r.ok }

// Status returns the HTTP status, or 0 when no response was received
func (r Result) Status() int { return r.status }

// Payload returns the unwrapped data of a successful call
func (r Result) Payload() json.RawMessage { return r.payload }

// Message returns the backend message of either outcome
func (r Result) Message() string { return r.message }

// Operation returns the "METHOD path" the result belongs to
func (r Result) Operation() string { return r.operation }

// Err returns a *errors.BackendError for a failure and nil for a success
func (r Result) Err() error {
	if r.ok {
		return nil
	}
	return &apperrors.BackendError{Operation: r.operation, Status: r.status, Message: r.message}
}

// Decode unmarshals the payload into v. Decoding a failure returns the failure.
func (r Result) Decode(v any) error {
	if !r.ok {
		return r.Err()
	}

	if len(bytes.TrimSpace(r.payload)) == 0 {
		return &apperrors.BackendError{Operation: r.operation, Status: r.status, Message: "empty response from server"}
	}

	if err := json.Unmarshal(r.payload, v); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", r.operation, err)
	}
	return nil
}
