// Package narrator produces ambient "closest object" narration at the
// information tier. It is deliberately chatty-by-design but polite: it
// checks the arbiter's suppression window before speaking so it never
// talks over navigation guidance.
package narrator

import (
	"fmt"
	"sync"
	"time"

	"github.com/waypath/go-waypath/pkg/announce"
	"github.com/waypath/go-waypath/pkg/detect"
	"github.com/waypath/go-waypath/pkg/speech"
)

// DefaultRepeatInterval is the minimum gap between narrations of the same
// object.
const DefaultRepeatInterval = 6 * time.Second

// Narrator announces the closest labeled object from each frame.
type Narrator struct {
	arbiter  *speech.Arbiter
	clock    announce.Clock
	interval time.Duration

	mu        sync.Mutex
	lastLabel string
	lastSaid  time.Time
}

// Option configures the narrator.
type Option func(*Narrator)

// WithRepeatInterval overrides the per-object repeat interval.
func WithRepeatInterval(d time.Duration) Option {
	return func(n *Narrator) { n.interval = d }
}

// WithClock injects the time source.
func WithClock(c announce.Clock) Option {
	return func(n *Narrator) { n.clock = c }
}

// New creates a narrator speaking through the given arbiter.
func New(arbiter *speech.Arbiter, opts ...Option) *Narrator {
	n := &Narrator{
		arbiter:  arbiter,
		clock:    announce.SystemClock{},
		interval: DefaultRepeatInterval,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Observe considers one frame of detections and narrates the closest
// object if it is new or stale enough to mention again. Objects without a
// depth reading can't be ranked and are skipped.
func (n *Narrator) Observe(dets []detect.Detection) bool {
	if n.arbiter.Suppressed(speech.TierInformation) {
		return false
	}

	var closest *detect.Detection
	var closestDist float64
	for i := range dets {
		meters, ok := dets[i].DistanceMeters()
		if !ok || dets[i].Label == "" {
			continue
		}
		if closest == nil || meters < closestDist {
			closest = &dets[i]
			closestDist = meters
		}
	}
	if closest == nil {
		return false
	}

	n.mu.Lock()
	now := n.clock.Now()
	if closest.Label == n.lastLabel && now.Sub(n.lastSaid) < n.interval {
		n.mu.Unlock()
		return false
	}
	n.lastLabel = closest.Label
	n.lastSaid = now
	n.mu.Unlock()

	text := fmt.Sprintf("%s, %.1f meters", closest.Label, closestDist)
	return n.arbiter.Request(speech.Request{Text: text, Tier: speech.TierInformation})
}

// Reset clears the narration state.
func (n *Narrator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lastLabel = ""
	n.lastSaid = time.Time{}
}
