package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYouTubeRateLimitDetector(t *testing.T) {
	d := NewYouTubeRateLimitDetector()

	tests := []struct {
		name    string
		status  int
		header  http.Header
		limited bool
		bot     bool
	}{
		{"ok", http.StatusOK, http.Header{}, false, false},
		{"too many requests", http.StatusTooManyRequests, http.Header{}, true, false},
		{"service unavailable", http.StatusServiceUnavailable, http.Header{}, true, false},
		{"plain forbidden", http.StatusForbidden, http.Header{}, false, false},
		{"forbidden with retry-after", http.StatusForbidden, http.Header{"Retry-After": {"30"}}, true, true},
		{"forbidden with remaining 0", http.StatusForbidden, http.Header{"X-Ratelimit-Remaining": {"0"}}, true, true},
		{"forbidden with remaining 5", http.StatusForbidden, http.Header{"X-Ratelimit-Remaining": {"5"}}, false, false},
		{"not found", http.StatusNotFound, http.Header{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.status, tt.header)
			if !tt.limited {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.status, got.StatusCode)
				assert.Equal(t, tt.bot, got.IsBotDetection)
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	d := NewYouTubeRateLimitDetector()

	assert.Equal(t, 120*time.Second, d.RetryAfter(http.Header{"Retry-After": {"120"}}))
	assert.Equal(t, 9*time.Second, d.RetryAfter(http.Header{"X-Ratelimit-Reset": {"9"}}))
	assert.Zero(t, d.RetryAfter(http.Header{}))
	assert.Zero(t, d.RetryAfter(http.Header{"Retry-After": {"soon"}}))

	future := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	got := d.RetryAfter(http.Header{"Retry-After": {future}})
	assert.Greater(t, got, 59*time.Minute)
}

func TestStatusClasses(t *testing.T) {
	assert.True(t, IsClientError(404))
	assert.False(t, IsClientError(500))
	assert.True(t, IsServerError(503))
	assert.False(t, IsServerError(200))
}
