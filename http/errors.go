package http

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError describes a throttling signal observed on a response.
// The client never returns it from Do; it is handed to the logger and
// used by callers that want to inspect Response.RateLimit.
type RateLimitError struct {
	// StatusCode is the HTTP status code (429, 403, or 503)
	StatusCode int
	// RetryAfter is the server-advertised wait, if any
	RetryAfter time.Duration
	// IsBotDetection indicates this may be anti-bot protection (403)
	IsBotDetection bool
}

// Error returns a string representation of the rate limit error.
func (e *RateLimitError) Error() string {
	if e.IsBotDetection {
		return fmt.Sprintf("bot detection (status %d): retry after %v", e.StatusCode, e.RetryAfter)
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (status %d): retry after %v", e.StatusCode, e.RetryAfter)
	}
	return fmt.Sprintf("rate limited (status %d)", e.StatusCode)
}

// Sentinel errors for HTTP operations.
var (
	// ErrRequestFailed indicates the request itself failed (network error).
	ErrRequestFailed = errors.New("http request failed")

	// ErrCircuitOpen is returned when the circuit for a host is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrBodyTooLarge indicates the response exceeded Config.MaxBodyBytes.
	ErrBodyTooLarge = errors.New("response body too large")
)
