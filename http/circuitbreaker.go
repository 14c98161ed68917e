package http

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// Circuit breaker configuration constants
const (
	// DefaultFailureThreshold is the number of consecutive failures to open the circuit.
	DefaultFailureThreshold = 5
	// DefaultRecoveryTimeout is how long the circuit stays open before testing.
	DefaultRecoveryTimeout = 30 * time.Second
	// DefaultHalfOpenMaxRequests is the number of test requests allowed in half-open state.
	DefaultHalfOpenMaxRequests = 1
)

// CircuitBreakerConfig configures circuit breaker behavior.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures to open the circuit.
	// 0 disables circuit breaking.
	FailureThreshold int
	// RecoveryTimeout is how long the circuit stays open before transitioning to half-open.
	RecoveryTimeout time.Duration
	// HalfOpenMaxRequests is the number of test requests allowed in half-open state.
	HalfOpenMaxRequests int
	// OnStateChange is called whenever a host's circuit changes state.
	OnStateChange func(host string, from, to gobreaker.State)
}

// DefaultCircuitBreakerConfig returns sensible defaults for circuit breaker configuration.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold:    DefaultFailureThreshold,
		RecoveryTimeout:     DefaultRecoveryTimeout,
		HalfOpenMaxRequests: DefaultHalfOpenMaxRequests,
	}
}

// CircuitBreakers holds one breaker per host so that an unresponsive host
// fails fast without affecting the others.
type CircuitBreakers struct {
	mu       sync.Mutex
	config   CircuitBreakerConfig
	breakers map[string]*gobreaker.TwoStepCircuitBreaker
}

// NewCircuitBreakers creates a per-host circuit breaker set.
func NewCircuitBreakers(cfg CircuitBreakerConfig) *CircuitBreakers {
	if cfg.RecoveryTimeout <= 0 {
		cfg.RecoveryTimeout = DefaultRecoveryTimeout
	}
	if cfg.HalfOpenMaxRequests <= 0 {
		cfg.HalfOpenMaxRequests = DefaultHalfOpenMaxRequests
	}
	return &CircuitBreakers{
		config:   cfg,
		breakers: make(map[string]*gobreaker.TwoStepCircuitBreaker),
	}
}

// Allow reports whether a request to host may proceed. On success the
// returned done func must be called exactly once with the request outcome.
func (cb *CircuitBreakers) Allow(host string) (func(success bool), error) {
	if cb == nil || cb.config.FailureThreshold <= 0 {
		return func(bool) {}, nil
	}
	done, err := cb.breaker(host).Allow()
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %s", ErrCircuitOpen, host)
		}
		return nil, err
	}
	return done, nil
}

// State returns the current circuit state for host.
func (cb *CircuitBreakers) State(host string) gobreaker.State {
	if cb == nil || cb.config.FailureThreshold <= 0 {
		return gobreaker.StateClosed
	}
	return cb.breaker(host).State()
}

func (cb *CircuitBreakers) breaker(host string) *gobreaker.TwoStepCircuitBreaker {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if b, ok := cb.breakers[host]; ok {
		return b
	}
	threshold := uint32(cb.config.FailureThreshold)
	b := gobreaker.NewTwoStepCircuitBreaker(gobreaker.Settings{
		Name:        host,
		MaxRequests: uint32(cb.config.HalfOpenMaxRequests),
		Timeout:     cb.config.RecoveryTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: cb.config.OnStateChange,
	})
	cb.breakers[host] = b
	return b
}
