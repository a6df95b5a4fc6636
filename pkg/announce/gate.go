package announce

import (
	"math"
	"sync"
	"time"

	"github.com/waypath/go-waypath/pkg/guidance"
)

// category is the gate's view of a decision. The two lateral decisions
// share one category so the sidestep choice flipping between frames
// doesn't defeat change detection.
type category int

const (
	catNone category = iota
	catStop
	catLateral
	catStraight
	catClear
)

func categorize(d guidance.Decision) category {
	switch {
	case d == guidance.Stop:
		return catStop
	case guidance.IsLateral(d):
		return catLateral
	default:
		return catStraight
	}
}

// Announcement is a gate-approved utterance.
type Announcement struct {
	Text   string
	Urgent bool
}

// Gate filters the partition engine's per-frame decisions down to the few
// worth speaking. It re-announces only when the situation genuinely
// changed: a different object, a different kind of decision, or enough
// elapsed time combined with a real distance or occupancy shift. A hard
// minimum interval absorbs detector flicker regardless of everything else.
//
// All state is behind one mutex; the check-then-record step is atomic so
// two concurrent frames can't slip through the same cooldown window.
type Gate struct {
	cfg   Config
	clock Clock

	mu            sync.Mutex
	lastSpeech    time.Time
	lastCategory  category
	lastDistance  float64
	lastOccupancy float64
	lastLabel     string
	lastClear     time.Time
}

// NewGate creates a gate with the given timings and clock.
func NewGate(cfg Config, clock Clock) *Gate {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Gate{cfg: cfg, clock: clock}
}

// Check decides whether this frame's result should be spoken. When it
// returns true the gate has already recorded the announcement; the caller
// must deliver it.
func (g *Gate) Check(r *guidance.Result) (Announcement, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	if !g.lastSpeech.IsZero() && now.Sub(g.lastSpeech) < g.cfg.MinInterval {
		return Announcement{}, false
	}

	cat := categorize(r.Decision)
	changed := g.lastCategory != cat || g.lastLabel != r.Label

	if !changed {
		repeat := g.cfg.NonurgentRepeat
		if cat == catStop {
			repeat = g.cfg.UrgentRepeat
		}
		if now.Sub(g.lastSpeech) < repeat {
			return Announcement{}, false
		}
		distDelta := math.Abs(r.Distance - g.lastDistance)
		occDelta := math.Abs(r.Occupancy - g.lastOccupancy)
		if distDelta < g.cfg.DistanceDelta && occDelta < g.cfg.OccupancyDelta {
			return Announcement{}, false
		}
	}

	g.lastSpeech = now
	g.lastCategory = cat
	g.lastDistance = r.Distance
	g.lastOccupancy = r.Occupancy
	g.lastLabel = r.Label
	g.lastClear = time.Time{}

	return Announcement{
		Text:   guidance.Text(r.Decision, r.Label),
		Urgent: guidance.IsUrgent(r.Decision),
	}, true
}

// Clear handles a frame with no qualifying detections. The transition into
// the clear state is announced once immediately, then repeated at most
// once per PathClearRepeat while the path stays clear. The hard minimum
// interval still applies.
func (g *Gate) Clear() (Announcement, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	if !g.lastSpeech.IsZero() && now.Sub(g.lastSpeech) < g.cfg.MinInterval {
		return Announcement{}, false
	}
	if g.lastCategory == catClear && now.Sub(g.lastClear) < g.cfg.PathClearRepeat {
		return Announcement{}, false
	}

	g.lastSpeech = now
	g.lastCategory = catClear
	g.lastLabel = ""
	g.lastClear = now

	return Announcement{Text: "Path clear"}, true
}

// Reset clears all gate state for a new session. It is atomic with respect
// to concurrent checks.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastSpeech = time.Time{}
	g.lastCategory = catNone
	g.lastDistance = 0
	g.lastOccupancy = 0
	g.lastLabel = ""
	g.lastClear = time.Time{}
}
