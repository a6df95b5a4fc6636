package speech

import (
	"sync"
	"time"

	"github.com/waypath/go-waypath/internal/log"
	"github.com/waypath/go-waypath/pkg/announce"
)

// DefaultSuppressionWindow is how long informational speech stays muted
// after guidance speaks.
const DefaultSuppressionWindow = 1500 * time.Millisecond

// Arbiter owns the single audio channel. Producers call Request; the
// arbiter forwards accepted requests to the sink and opens a suppression
// window after navigation or urgent speech so informational narration
// can't pile on top of it.
type Arbiter struct {
	sink   Sink
	clock  announce.Clock
	window time.Duration

	mu              sync.Mutex
	suppressedUntil time.Time
	currentTier     Tier
	hasSpoken       bool
}

// ArbiterOption configures the arbiter.
type ArbiterOption func(*Arbiter)

// WithSuppressionWindow overrides the informational suppression window.
func WithSuppressionWindow(d time.Duration) ArbiterOption {
	return func(a *Arbiter) { a.window = d }
}

// WithClock injects the time source (tests use a manual clock).
func WithClock(c announce.Clock) ArbiterOption {
	return func(a *Arbiter) { a.clock = c }
}

// NewArbiter creates an arbiter that speaks through the given sink.
func NewArbiter(sink Sink, opts ...ArbiterOption) *Arbiter {
	a := &Arbiter{
		sink:   sink,
		clock:  announce.SystemClock{},
		window: DefaultSuppressionWindow,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Request submits an utterance. It returns true when the request reached
// the sink, false when it was dropped by the suppression window or the
// sink failed. Delivery is fire-and-forget: the sink enqueues and returns.
func (a *Arbiter) Request(req Request) bool {
	a.mu.Lock()

	now := a.clock.Now()
	if req.Tier == TierInformation && now.Before(a.suppressedUntil) {
		a.mu.Unlock()
		log.Debug("speech suppressed", "tier", req.Tier.String(), "text", req.Text)
		return false
	}

	if req.Tier >= TierNavigation {
		a.suppressedUntil = now.Add(a.window)
	}
	a.currentTier = req.Tier
	a.hasSpoken = true
	a.mu.Unlock()

	if err := a.sink.Speak(req.Text, req.Interrupt); err != nil {
		log.Error("speech sink failed", "error", err, "text", req.Text)
		return false
	}
	log.Debug("spoke", "tier", req.Tier.String(), "interrupt", req.Interrupt, "text", req.Text)
	return true
}

// Suppressed reports whether a request at the given tier would currently
// be dropped. Producers may check this before doing expensive work.
func (a *Arbiter) Suppressed(tier Tier) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return tier == TierInformation && a.clock.Now().Before(a.suppressedUntil)
}

// CurrentTier returns the tier of the most recent accepted request.
// The second result is false before anything has been spoken.
func (a *Arbiter) CurrentTier() (Tier, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentTier, a.hasSpoken
}

// Reset clears the suppression window for a new session.
func (a *Arbiter) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.suppressedUntil = time.Time{}
	a.currentTier = TierInformation
	a.hasSpoken = false
}
