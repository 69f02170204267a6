package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 2, BackoffDuration: time.Hour, MaxBackoffDuration: time.Hour})
	assert.True(t, b.Allow())
	b.RecordFailure()
	assert.True(t, b.Allow())
	b.RecordFailure()
	assert.False(t, b.Allow())
	assert.True(t, b.IsOpen())
}

func TestBreaker_SuccessClosesCircuit(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 1, BackoffDuration: time.Hour, MaxBackoffDuration: time.Hour})
	b.RecordFailure()
	assert.True(t, b.IsOpen())
	b.RecordSuccess()
	assert.False(t, b.IsOpen())
	assert.True(t, b.Allow())
}
