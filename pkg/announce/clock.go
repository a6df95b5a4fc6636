// Package announce decides which navigation decisions actually get spoken.
// It holds the only time-based state in the pipeline: Gate keeps the
// partition path honest with repeat intervals and metric deltas, Limiter
// applies the legacy path's per-label cooldown tiers. Both are
// deterministic given a fixed clock, which is injectable for tests.
package announce

import (
	"sync"
	"time"
)

// Clock supplies the current time. Production code uses SystemClock;
// tests drive a Manual clock so gate behavior is reproducible.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Manual is a hand-advanced clock for deterministic tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a manual clock starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set jumps the clock to the given instant.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
