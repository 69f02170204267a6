package driver

import (
	"sync"
	"time"
)

// BreakerConfig controls the single-resource circuit breaker guarding the
// upstream CLI. Adapted from a multi-endpoint health tracker down to one
// resource: there is exactly one upstream in this domain, so the breaker
// tracks its health rather than selecting among several.
type BreakerConfig struct {
	FailureThreshold   int
	BackoffDuration    time.Duration
	MaxBackoffDuration time.Duration
}

// DefaultBreakerConfig returns reasonable defaults for a single upstream
// resource: trip after 2 consecutive failures, back off 30s, capped at 5m.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold:   2,
		BackoffDuration:    30 * time.Second,
		MaxBackoffDuration: 5 * time.Minute,
	}
}

// Breaker counts consecutive upstream CLI failures reported through
// RecordFailure and opens to shed load onto the upstream while it
// recovers. The HTTP handlers report spawn failures only, and reset the
// count on every successful spawn.
type Breaker struct {
	cfg BreakerConfig

	mu            sync.Mutex
	failureCount  int
	circuitOpen   bool
	nextRetryTime time.Time
}

// NewBreaker creates a breaker with the given configuration.
func NewBreaker(cfg BreakerConfig) *Breaker {
	return &Breaker{cfg: cfg}
}

// Allow reports whether a new subprocess may be spawned right now.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.circuitOpen {
		return true
	}
	if time.Now().After(b.nextRetryTime) {
		return true // half-open: calls pass until the next recorded outcome
	}
	return false
}

// RecordFailure registers an upstream failure, opening the circuit once
// FailureThreshold consecutive failures have accumulated.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	if b.failureCount >= b.cfg.FailureThreshold {
		b.circuitOpen = true
		over := b.failureCount - b.cfg.FailureThreshold + 1
		backoff := time.Duration(int64(b.cfg.BackoffDuration) * int64(over))
		if backoff > b.cfg.MaxBackoffDuration {
			backoff = b.cfg.MaxBackoffDuration
		}
		b.nextRetryTime = time.Now().Add(backoff)
	}
}

// RecordSuccess closes the circuit and resets the failure count.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.circuitOpen = false
	b.failureCount = 0
	b.nextRetryTime = time.Time{}
}

// IsOpen reports the current circuit state, for diagnostics.
func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.circuitOpen
}
