package http

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Backoff tuning for hosts that signal throttling.
const (
	// InitialBackoff is the pause imposed after the first throttling signal.
	InitialBackoff = 1 * time.Second
	// MaxBackoff caps the pause between requests to a throttled host.
	MaxBackoff = 60 * time.Second
	// BackoffMultiplier grows the pause on consecutive signals.
	BackoffMultiplier = 2.0
	// BackoffCooldownPeriod is how long after the last signal before the original rate is restored.
	BackoffCooldownPeriod = 5 * time.Minute
	// MinRPSMultiplier is the floor of the rate reduction (0.25 = 25% of original).
	MinRPSMultiplier = 0.25
)

// RateLimiterConfig defines request pacing.
type RateLimiterConfig struct {
	// RequestsPerSecond applies to every host without a custom rate.
	// 0 disables pacing.
	RequestsPerSecond float64
	// Burst is the token bucket size. Default: 1
	Burst int
	// CustomRates maps a host name to its own requests per second.
	CustomRates map[string]float64
	// EnableDynamicBackoff slows a host down after a throttling signal.
	EnableDynamicBackoff bool
}

// DefaultRateLimiterConfig returns conservative defaults for youtube.com.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond:    2.5,
		Burst:                1,
		CustomRates:          make(map[string]float64),
		EnableDynamicBackoff: true,
	}
}

// BackoffState tracks throttling for a host.
type BackoffState struct {
	CurrentBackoff    time.Duration
	LastSignal        time.Time
	ConsecutiveErrors int
	OriginalRPS       float64
	ReducedRPS        float64
}

// RateLimiter paces requests per host with token buckets. It only delays
// requests; it never repeats one.
type RateLimiter struct {
	mu       sync.Mutex
	config   RateLimiterConfig
	limiters map[string]*rate.Limiter
	backoff  map[string]*BackoffState
	now      func() time.Time
}

// NewRateLimiter creates a rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.CustomRates == nil {
		cfg.CustomRates = make(map[string]float64)
	}
	return &RateLimiter{
		config:   cfg,
		limiters: make(map[string]*rate.Limiter),
		backoff:  make(map[string]*BackoffState),
		now:      time.Now,
	}
}

// Wait blocks until both the backoff window and the token bucket for the
// URL's host allow a request.
func (rl *RateLimiter) Wait(ctx context.Context, urlStr string) error {
	if rl == nil {
		return nil
	}
	host := hostOf(urlStr)

	if remaining := rl.remainingBackoff(host); remaining > 0 {
		timer := time.NewTimer(remaining)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	limiter := rl.limiter(host)
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

func (rl *RateLimiter) limiter(host string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if l, ok := rl.limiters[host]; ok {
		return l
	}
	rps := rl.rps(host)
	if rps <= 0 {
		return nil
	}
	l := rate.NewLimiter(rate.Limit(rps), rl.config.Burst)
	rl.limiters[host] = l
	return l
}

// rps must be called with mu held.
func (rl *RateLimiter) rps(host string) float64 {
	if rps, ok := rl.config.CustomRates[host]; ok {
		return rps
	}
	return rl.config.RequestsPerSecond
}

func (rl *RateLimiter) remainingBackoff(host string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.backoff[host]
	if !ok {
		return 0
	}
	return state.CurrentBackoff - rl.now().Sub(state.LastSignal)
}

// SetCustomRate sets a custom rate for a host.
func (rl *RateLimiter) SetCustomRate(host string, rps float64) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.config.CustomRates[host] = rps
	delete(rl.limiters, host)
}

// RecordRateLimitError registers a throttling signal for the URL's host and
// returns the pause that will be imposed before its next request.
func (rl *RateLimiter) RecordRateLimitError(urlStr string, retryAfter time.Duration) time.Duration {
	if rl == nil || !rl.config.EnableDynamicBackoff {
		return retryAfter
	}
	host := hostOf(urlStr)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.backoff[host]
	if !ok {
		state = &BackoffState{CurrentBackoff: InitialBackoff, OriginalRPS: rl.rps(host)}
		rl.backoff[host] = state
	} else {
		state.CurrentBackoff = time.Duration(float64(state.CurrentBackoff) * BackoffMultiplier)
		if state.CurrentBackoff > MaxBackoff {
			state.CurrentBackoff = MaxBackoff
		}
	}
	state.LastSignal = rl.now()
	state.ConsecutiveErrors++
	if retryAfter > state.CurrentBackoff {
		state.CurrentBackoff = retryAfter
	}

	// 1 signal: 75%, 2 signals: 50%, 3+: 25%
	factor := 0.75
	switch {
	case state.ConsecutiveErrors >= 3:
		factor = MinRPSMultiplier
	case state.ConsecutiveErrors == 2:
		factor = 0.5
	}
	state.ReducedRPS = state.OriginalRPS * factor
	if l, ok := rl.limiters[host]; ok && state.ReducedRPS > 0 {
		l.SetLimit(rate.Limit(state.ReducedRPS))
	}

	return state.CurrentBackoff
}

// RecordSuccess clears the backoff for the URL's host once the cooldown
// period has passed since its last throttling signal.
func (rl *RateLimiter) RecordSuccess(urlStr string) {
	if rl == nil || !rl.config.EnableDynamicBackoff {
		return
	}
	host := hostOf(urlStr)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.backoff[host]
	if !ok || rl.now().Sub(state.LastSignal) <= BackoffCooldownPeriod {
		return
	}
	if l, ok := rl.limiters[host]; ok && state.OriginalRPS > 0 {
		l.SetLimit(rate.Limit(state.OriginalRPS))
	}
	delete(rl.backoff, host)
}

// GetBackoffState returns a copy of the backoff state for the URL's host,
// or nil when the host is not backed off.
func (rl *RateLimiter) GetBackoffState(urlStr string) *BackoffState {
	if rl == nil {
		return nil
	}
	host := hostOf(urlStr)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.backoff[host]
	if !ok {
		return nil
	}
	cp := *state
	return &cp
}

// hostOf extracts the host name (without port) from a URL string.
func hostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return u.Hostname()
}
