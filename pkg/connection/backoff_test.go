package connection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffProgression(t *testing.T) {
	b := NewBackoff(BackoffConfig{
		Initial:    time.Second,
		Max:        60 * time.Second,
		Multiplier: 2.0,
		Jitter:     0, // deterministic for the test
	})

	want := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		32 * time.Second,
		60 * time.Second,
		60 * time.Second, // stays capped
	}
	for i, w := range want {
		assert.Equal(t, w, b.Next(), "attempt %d", i)
	}
}

func TestBackoffReset(t *testing.T) {
	b := NewBackoff(BackoffConfig{Initial: time.Second, Jitter: 0})
	b.Next()
	b.Next()
	b.Reset()

	assert.Equal(t, time.Second, b.Next())
}

func TestBackoffJitterBounds(t *testing.T) {
	b := NewBackoff(BackoffConfig{
		Initial:    time.Second,
		Multiplier: 2.0,
		Jitter:     0.25,
	})

	for i := 0; i < 20; i++ {
		d := b.Next()
		b.Reset()
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, time.Second+250*time.Millisecond)
	}
}

func TestBackoffDefaults(t *testing.T) {
	b := NewBackoff(BackoffConfig{Jitter: -1, Multiplier: 0.5})
	d := b.Next()
	assert.GreaterOrEqual(t, d, InitialBackoff)
	assert.LessOrEqual(t, d, InitialBackoff+InitialBackoff/4)
}
