package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// YouTubeRateLimitDetector detects YouTube-specific rate limiting signals.
type YouTubeRateLimitDetector struct{}

// NewYouTubeRateLimitDetector creates a new YouTube rate limit detector.
func NewYouTubeRateLimitDetector() *YouTubeRateLimitDetector {
	return &YouTubeRateLimitDetector{}
}

// Detect returns a RateLimitError when the response carries a throttling
// signal, or nil otherwise. It recognizes:
//   - HTTP 429 (Too Many Requests)
//   - HTTP 503 (Service Unavailable)
//   - HTTP 403 carrying rate limit headers (bot detection)
func (d *YouTubeRateLimitDetector) Detect(statusCode int, header http.Header) *RateLimitError {
	switch statusCode {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return &RateLimitError{StatusCode: statusCode, RetryAfter: d.RetryAfter(header)}
	case http.StatusForbidden:
		if d.hasRateLimitHeaders(header) {
			return &RateLimitError{
				StatusCode:     statusCode,
				RetryAfter:     d.RetryAfter(header),
				IsBotDetection: true,
			}
		}
	}
	return nil
}

// hasRateLimitHeaders checks for rate limit headers that YouTube may send.
func (d *YouTubeRateLimitDetector) hasRateLimitHeaders(header http.Header) bool {
	if header.Get("Retry-After") != "" {
		return true
	}
	if header.Get("X-RateLimit-Remaining") == "0" {
		return true
	}
	return header.Get("X-RateLimit-Reset") != "" || header.Get("X-RateLimit-Limit") != ""
}

// RetryAfter extracts the advertised wait from Retry-After (seconds or an
// HTTP date) or X-RateLimit-Reset. It returns 0 when nothing usable is set.
func (d *YouTubeRateLimitDetector) RetryAfter(header http.Header) time.Duration {
	if v := strings.TrimSpace(header.Get("Retry-After")); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		if t, err := http.ParseTime(v); err == nil {
			if wait := time.Until(t); wait > 0 {
				return wait
			}
		}
	}
	if v := strings.TrimSpace(header.Get("X-RateLimit-Reset")); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}

// IsClientError checks if status code is a client error (4xx).
func IsClientError(statusCode int) bool {
	return statusCode >= 400 && statusCode < 500
}

// IsServerError checks if status code is a server error (5xx).
func IsServerError(statusCode int) bool {
	return statusCode >= 500 && statusCode < 600
}
