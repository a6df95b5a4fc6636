// Package guide runs the per-frame navigation pipeline: normalize the
// detection batch, decide, gate, and hand approved announcements to the
// speech arbiter. A Guide owns one session's mutable state; multiple
// independent sessions can coexist because nothing here is global.
package guide

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/waypath/go-waypath/internal/log"
	"github.com/waypath/go-waypath/pkg/announce"
	"github.com/waypath/go-waypath/pkg/detect"
	"github.com/waypath/go-waypath/pkg/guidance"
	"github.com/waypath/go-waypath/pkg/speech"
)

// Mode selects which decision strategy drives the session.
type Mode int

const (
	// ModePartition uses the zone-geometry engine (primary path).
	ModePartition Mode = iota

	// ModeLegacy uses the direction/distance-category scorer with the
	// per-label rate limiter.
	ModeLegacy
)

func (m Mode) String() string {
	switch m {
	case ModePartition:
		return "partition"
	case ModeLegacy:
		return "legacy"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name into a Mode.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "partition":
		return ModePartition, nil
	case "legacy":
		return ModeLegacy, nil
	}
	return ModePartition, fmt.Errorf("unknown mode %q", value)
}

// Config aggregates the session configuration.
type Config struct {
	Mode       Mode
	FrameWidth float64 // Frame width in the unit the detector reports (pixels)
	Guidance   guidance.Config
	Announce   announce.Config
}

// DefaultConfig returns the production session configuration.
func DefaultConfig() Config {
	return Config{
		Mode:       ModePartition,
		FrameWidth: 1000,
		Guidance:   guidance.DefaultConfig(),
		Announce:   announce.DefaultConfig(),
	}
}

// FrameResult reports what one pipeline pass produced, for tooling and the
// dashboard. Announced false with a non-nil decision means the gate
// legitimately suppressed it.
type FrameResult struct {
	Decision  *guidance.Result   // Partition path output, nil if none/legacy
	Guidance  *guidance.Guidance // Legacy path output, nil if none/partition
	PathClear bool               // Partition path found nothing qualifying
	Announced bool
	Spoken    string
	Tier      speech.Tier
}

// Guide is one navigation session.
type Guide struct {
	id      string
	cfg     Config
	engine  *guidance.Engine
	scorer  *guidance.Scorer
	gate    *announce.Gate
	limiter *announce.Limiter
	arbiter *speech.Arbiter

	// OnAnnouncement, when set, observes every spoken announcement
	// (journal, dashboard broadcast). Called after the sink request.
	OnAnnouncement func(text string, tier speech.Tier)
}

// New creates a session speaking through the given arbiter.
func New(cfg Config, arbiter *speech.Arbiter, clock announce.Clock) *Guide {
	return &Guide{
		id:      uuid.NewString(),
		cfg:     cfg,
		engine:  guidance.NewEngine(cfg.Guidance),
		scorer:  guidance.NewScorer(cfg.Guidance),
		gate:    announce.NewGate(cfg.Announce, clock),
		limiter: announce.NewLimiter(cfg.Announce, clock),
		arbiter: arbiter,
	}
}

// ID returns the session identifier.
func (g *Guide) ID() string { return g.id }

// Mode returns the session's decision strategy.
func (g *Guide) Mode() Mode { return g.cfg.Mode }

// Arbiter exposes the session's speech arbiter so other producers (the
// narrator, scene description) can share the audio channel.
func (g *Guide) Arbiter() *speech.Arbiter { return g.arbiter }

// ProcessFrame runs one full pipeline pass over a detection batch.
// It executes to completion on the calling goroutine; no step suspends.
func (g *Guide) ProcessFrame(dets []detect.Detection) FrameResult {
	dets = detect.NormalizeAll(dets)

	if g.cfg.Mode == ModeLegacy {
		return g.processLegacy(dets)
	}
	return g.processPartition(dets)
}

func (g *Guide) processPartition(dets []detect.Detection) FrameResult {
	result, ok := g.engine.Decide(dets, g.cfg.FrameWidth)
	if !ok {
		res := FrameResult{PathClear: true}
		if ann, speak := g.gate.Clear(); speak {
			res.Announced = g.say(ann.Text, speech.TierNavigation, false)
			res.Spoken = ann.Text
			res.Tier = speech.TierNavigation
		}
		return res
	}

	res := FrameResult{Decision: result}
	ann, speak := g.gate.Check(result)
	if !speak {
		return res
	}

	tier := speech.TierNavigation
	if ann.Urgent {
		tier = speech.TierUrgent
	}
	res.Announced = g.say(ann.Text, tier, ann.Urgent)
	res.Spoken, res.Tier = ann.Text, tier
	return res
}

func (g *Guide) processLegacy(dets []detect.Detection) FrameResult {
	best, ok := g.scorer.Evaluate(dets)
	if !ok {
		return FrameResult{}
	}

	res := FrameResult{Guidance: best}
	if !g.limiter.Allow(best) {
		return res
	}

	text := guidance.GuidanceText(*best)
	tier := speech.TierNavigation
	interrupt := false
	if best.Category == guidance.VeryClose {
		tier, interrupt = speech.TierUrgent, true
	}
	res.Announced = g.say(text, tier, interrupt)
	res.Spoken, res.Tier = text, tier
	return res
}

func (g *Guide) say(text string, tier speech.Tier, interrupt bool) bool {
	ok := g.arbiter.Request(speech.Request{Text: text, Tier: tier, Interrupt: interrupt})
	if ok && g.OnAnnouncement != nil {
		g.OnAnnouncement(text, tier)
	}
	return ok
}

// Reset clears all gate, limiter, and arbiter state for a fresh session.
// Each state object resets atomically behind its own lock, so a concurrent
// gate check sees either the old state or the cleared one, never a mix.
func (g *Guide) Reset() {
	g.gate.Reset()
	g.limiter.Reset()
	g.arbiter.Reset()
	log.Info("session reset", "session", g.id)
}
