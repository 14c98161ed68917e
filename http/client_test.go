package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig disables pacing so tests run at full speed.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.RateLimiter = RateLimiterConfig{}
	return cfg
}

func TestNewClientNilConfig(t *testing.T) {
	client := New(nil)
	require.NotNil(t, client)
	assert.Equal(t, DefaultTransportConfig(), client.GetTransportConfig())
	assert.NoError(t, client.Close())
}

func TestClientGetSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("test response"))
	}))
	defer server.Close()

	client := New(testConfig())
	defer client.Close()

	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "test response", string(resp.Body))
	assert.Nil(t, resp.RateLimit)
}

func TestClientHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "fr", r.Header.Get("Accept-Language"))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := New(testConfig())
	defer client.Close()

	_, err := client.Get(context.Background(), server.URL, map[string]string{
		"User-Agent":      "custom-agent",
		"Accept-Language": "fr",
	})
	require.NoError(t, err)
}

func TestClientDefaultUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "yttranscript/1.0", r.Header.Get("User-Agent"))
	}))
	defer server.Close()

	client := New(testConfig())
	defer client.Close()

	_, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
}

func TestClientNonSuccessIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	}))
	defer server.Close()

	client := New(testConfig())
	defer client.Close()

	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "missing", string(resp.Body))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientRateLimitKeepsBody(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`<div class="g-recaptcha"></div>`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.RateLimiter.EnableDynamicBackoff = true
	client := New(cfg)
	defer client.Close()

	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.RateLimit)
	assert.Equal(t, http.StatusTooManyRequests, resp.RateLimit.StatusCode)
	assert.Equal(t, 7*time.Second, resp.RateLimit.RetryAfter)
	assert.Contains(t, string(resp.Body), "g-recaptcha")
	assert.Equal(t, int32(1), calls.Load())

	state := client.limiter.GetBackoffState(server.URL)
	require.NotNil(t, state)
	assert.Equal(t, 7*time.Second, state.CurrentBackoff)
}

func TestClientServerErrorsOpenCircuit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.CircuitBreaker = CircuitBreakerConfig{FailureThreshold: 2, RecoveryTimeout: time.Minute}
	client := New(cfg)
	defer client.Close()

	for i := 0; i < 2; i++ {
		resp, err := client.Get(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	}
	assert.Equal(t, gobreaker.StateOpen, client.CircuitState(server.URL))

	_, err := client.Get(context.Background(), server.URL, nil)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := New(testConfig())
	defer client.Close()

	_, err := client.Get(context.Background(), url, nil)
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestClientBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxBodyBytes = 16
	client := New(cfg)
	defer client.Close()

	_, err := client.Get(context.Background(), server.URL, nil)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestClientContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := New(testConfig())
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, server.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, gobreaker.StateClosed, client.CircuitState(server.URL))
}

func TestClientCookiesPersist(t *testing.T) {
	var sawCookie atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("CONSENT"); err == nil {
			sawCookie.Store(true)
		}
		http.SetCookie(w, &http.Cookie{Name: "CONSENT", Value: "YES+", Path: "/"})
	}))
	defer server.Close()

	client := New(testConfig())
	defer client.Close()

	for i := 0; i < 2; i++ {
		_, err := client.Get(context.Background(), server.URL, nil)
		require.NoError(t, err)
	}
	assert.True(t, sawCookie.Load())
}

func TestRateLimitErrorMessage(t *testing.T) {
	tests := []struct {
		err  *RateLimitError
		want string
	}{
		{&RateLimitError{StatusCode: 429}, "rate limited (status 429)"},
		{&RateLimitError{StatusCode: 429, RetryAfter: time.Second}, "rate limited (status 429): retry after 1s"},
		{&RateLimitError{StatusCode: 403, IsBotDetection: true}, "bot detection (status 403): retry after 0s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}
