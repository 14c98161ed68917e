// Package http provides the HTTP transport used to talk to YouTube: request
// pacing, per-host circuit breaking, cookie handling and connection pooling.
// It never retries a request; failures are returned to the caller as-is.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/net/publicsuffix"
)

// DefaultMaxBodyBytes bounds how much of a response body is read.
// Watch pages are typically 1-2 MB.
const DefaultMaxBodyBytes = 8 << 20

// Client wraps an HTTP client with rate limiting and circuit breaking.
// It is safe for concurrent use; concurrent retrievals share one Client.
type Client struct {
	base     *http.Client
	config   *Config
	limiter  *RateLimiter
	breakers *CircuitBreakers
	detector *YouTubeRateLimitDetector
	logger   zerolog.Logger
}

// Config holds HTTP client configuration.
type Config struct {
	// Timeout for individual HTTP requests
	Timeout time.Duration

	// User agent applied when a request sets none
	UserAgent string

	// MaxBodyBytes caps the response body size. 0 uses DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// EnableCookies keeps cookies across requests made by this client
	EnableCookies bool

	// Rate limiter configuration
	RateLimiter RateLimiterConfig

	// Circuit breaker configuration
	CircuitBreaker CircuitBreakerConfig

	// Connection pool configuration
	Transport TransportConfig

	// Logger receives throttling and circuit state events
	Logger *zerolog.Logger
}

// TransportConfig configures the HTTP transport (connection pooling).
type TransportConfig struct {
	// MaxIdleConns is the maximum number of idle connections across all hosts.
	MaxIdleConns int
	// MaxIdleConnsPerHost is the maximum idle connections per host.
	MaxIdleConnsPerHost int
	// MaxConnsPerHost is the maximum concurrent connections per host.
	MaxConnsPerHost int
	// IdleConnTimeout is the maximum amount of time an idle connection can remain open.
	IdleConnTimeout time.Duration
	// ForceAttemptHTTP2 forces HTTP/2 for connections to servers that don't explicitly support it.
	ForceAttemptHTTP2 bool
	// DisableKeepAlives disables HTTP keep-alives (connection reuse).
	DisableKeepAlives bool
}

// DefaultConfig returns sensible defaults for HTTP client configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:        30 * time.Second,
		UserAgent:      "yttranscript/1.0",
		MaxBodyBytes:   DefaultMaxBodyBytes,
		EnableCookies:  true,
		RateLimiter:    DefaultRateLimiterConfig(),
		CircuitBreaker: DefaultCircuitBreakerConfig(),
		Transport:      DefaultTransportConfig(),
	}
}

// DefaultTransportConfig returns sensible defaults for HTTP transport configuration.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
}

// New creates a new HTTP client with the given configuration.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.Transport.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.Transport.MaxConnsPerHost,
		IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
		ForceAttemptHTTP2:   cfg.Transport.ForceAttemptHTTP2,
		DisableKeepAlives:   cfg.Transport.DisableKeepAlives,
	}
	base := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
	if cfg.EnableCookies {
		// cookiejar.New only fails on a nil options value.
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		base.Jar = jar
	}

	cbConfig := cfg.CircuitBreaker
	userHook := cbConfig.OnStateChange
	cbConfig.OnStateChange = func(host string, from, to gobreaker.State) {
		logger.Warn().
			Str("host", host).
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("circuit state changed")
		if userHook != nil {
			userHook(host, from, to)
		}
	}

	return &Client{
		base:     base,
		config:   cfg,
		limiter:  NewRateLimiter(cfg.RateLimiter),
		breakers: NewCircuitBreakers(cbConfig),
		detector: NewYouTubeRateLimitDetector(),
		logger:   logger,
	}
}

// Response represents an HTTP response with status code and body.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// RateLimit is set when the response carried a throttling signal.
	RateLimit *RateLimitError
}

// OK reports whether the response has a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, headers)
}

// Do performs a single HTTP request. Any status code is returned as a
// Response; only transport failures, an open circuit or an oversized body
// produce an error. Throttling responses slow down later requests to the
// same host but the request is not repeated.
func (c *Client) Do(ctx context.Context, method, urlStr string, body io.Reader, headers map[string]string) (*Response, error) {
	host := hostOf(urlStr)

	done, err := c.breakers.Allow(host)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx, urlStr); err != nil {
		done(true) // a canceled wait says nothing about the host
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		done(true)
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.base.Do(req)
	if err != nil {
		done(ctx.Err() != nil)
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	limit := c.config.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		done(false)
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(data)) > limit {
		done(true)
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrBodyTooLarge, limit, host)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}

	if rl := c.detector.Detect(resp.StatusCode, resp.Header); rl != nil {
		out.RateLimit = rl
		pause := c.limiter.RecordRateLimitError(urlStr, rl.RetryAfter)
		c.logger.Warn().
			Str("host", host).
			Int("status", resp.StatusCode).
			Dur("pause", pause).
			Msg("rate limit signal")
	} else if out.OK() {
		c.limiter.RecordSuccess(urlStr)
	}

	done(!IsServerError(resp.StatusCode))
	return out, nil
}

// CircuitState returns the circuit state for the host of urlStr.
func (c *Client) CircuitState(urlStr string) gobreaker.State {
	return c.breakers.State(hostOf(urlStr))
}

// Close closes the HTTP client connections and releases all resources.
func (c *Client) Close() error {
	if c.base != nil {
		c.base.CloseIdleConnections()
	}
	return nil
}

// GetTransportConfig returns the transport configuration being used.
func (c *Client) GetTransportConfig() TransportConfig {
	return c.config.Transport
}
