package announce

import (
	"sync"
	"time"

	"github.com/waypath/go-waypath/pkg/guidance"
)

// labelDir keys the per-object-direction cooldown map.
type labelDir struct {
	label string
	dir   guidance.Direction
}

// Limiter is the legacy path's announcement rate limiter. Suppression
// tiers are evaluated in a fixed order and the first failing check wins;
// only a guidance that survives every tier is announced and recorded.
//
// The movement-sensitivity tier means an object only re-triggers when its
// distance category gets strictly worse: something drifting away, or
// sliding sideways at the same range, stays quiet.
type Limiter struct {
	cfg   Config
	clock Clock

	mu           sync.Mutex
	lastGlobal   time.Time
	lastByLabel  map[string]time.Time
	lastByDir    map[labelDir]time.Time
	lastCategory map[string]guidance.DistanceCategory
}

// NewLimiter creates a limiter with the given timings and clock.
func NewLimiter(cfg Config, clock Clock) *Limiter {
	if clock == nil {
		clock = SystemClock{}
	}
	l := &Limiter{cfg: cfg, clock: clock}
	l.resetLocked()
	return l
}

// Allow decides whether the guidance should be spoken now. When it returns
// true the limiter has already recorded the announcement.
func (l *Limiter) Allow(g *guidance.Guidance) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()

	// Tier 1: global cooldown.
	if !l.lastGlobal.IsZero() && now.Sub(l.lastGlobal) < l.cfg.GlobalCooldown {
		return false
	}

	// Tier 2: far objects are never announced.
	if g.Category == guidance.Far {
		return false
	}

	// Tier 3: medium objects only matter dead ahead and high priority.
	if g.Category == guidance.Medium {
		if g.Dir != guidance.DirCenter || g.Priority <= l.cfg.MediumMinPriority {
			return false
		}
	}

	// Tier 4: too small to matter.
	if g.Width < l.cfg.MinWidth {
		return false
	}

	// Tier 5: detection geometry is unreliable at the frame edges.
	if g.XCenter < l.cfg.EdgeMargin || g.XCenter > 1-l.cfg.EdgeMargin {
		return false
	}

	// Tier 6: per-object cooldown.
	if last, ok := l.lastByLabel[g.Label]; ok && now.Sub(last) < l.cfg.LabelCooldown {
		return false
	}

	// Tier 7: per-object-direction cooldown.
	key := labelDir{g.Label, g.Dir}
	if last, ok := l.lastByDir[key]; ok && now.Sub(last) < l.cfg.DirectionCooldown {
		return false
	}

	// Tier 8: movement sensitivity.
	if prev, ok := l.lastCategory[g.Label]; ok && !g.Category.MoreDangerousThan(prev) {
		return false
	}

	l.lastGlobal = now
	l.lastByLabel[g.Label] = now
	l.lastByDir[key] = now
	l.lastCategory[g.Label] = g.Category
	return true
}

// Reset clears all limiter state for a new session.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetLocked()
}

func (l *Limiter) resetLocked() {
	l.lastGlobal = time.Time{}
	l.lastByLabel = make(map[string]time.Time)
	l.lastByDir = make(map[labelDir]time.Time)
	l.lastCategory = make(map[string]guidance.DistanceCategory)
}
