package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthenticated is returned before any network I/O when a protected endpoint is called without a token.
	ErrUnauthenticated = errors.New("authentication required for this endpoint")

	// ErrInvalidPayload is returned when a request or response body fails validation.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrTimeout is returned when the backend does not answer in time.
	// Callers may retry.
	ErrTimeout = errors.New("api request timed out")
)

// connFailures are the messages a transport error carries when the backend cannot be reached at all.
var connFailures = []string{"connection refused", "no such host", "connection reset", "Failed to fetch", "network is unreachable"}

// An HTTPError is a non-2xx response from the backend.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Message)
}

// NotFound asserts whether the backend could not find the resource.
func (e *HTTPError) NotFound() bool { return e.Status == http.StatusNotFound }

// Unauthorized asserts whether the backend rejected the bearer token.
func (e *HTTPError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// A TransportError is a failure to get any response from the backend.
type TransportError struct {
	Method string
	URL    string
	Hint   string
	Err    error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.Status
	}
	return 0
}

// Retryable asserts whether err is worth the caller trying again:
// timeouts, unreachable backends and 5xx responses are.
func Retryable(err error) bool {
	if errors.Is(err, ErrTimeout) {
		return true
	}

	var terr *TransportError
	if errors.As(err, &terr) {
		return true
	}

	return StatusOf(err) >= http.StatusInternalServerError
}

func connHint(err error, base string) string {
	msg := err.Error()
	for _, sig := range connFailures {
		if strings.Contains(msg, sig) {
			return "backend unreachable at " + base + "; check API_URL, that the backend is running, and that it allows this origin"
		}
	}
	return ""
}
