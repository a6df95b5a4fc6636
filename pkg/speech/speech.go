// Package speech serializes announcements from multiple producers onto one
// audio output. The Arbiter never decides content; it only sequences
// requests by tier, handles interruption, and temporarily mutes the
// informational producer after guidance speaks so the two don't talk over
// each other.
package speech

import (
	"fmt"

	"github.com/waypath/go-waypath/internal/log"
)

// Tier is the fixed announcement priority level.
type Tier int

const (
	// TierInformation is ambient narration (closest object, scene
	// description). Lowest priority, droppable.
	TierInformation Tier = iota

	// TierNavigation is turn/step/path-clear guidance.
	TierNavigation

	// TierUrgent is stop/danger guidance. Always preempts.
	TierUrgent
)

func (t Tier) String() string {
	switch t {
	case TierInformation:
		return "information"
	case TierNavigation:
		return "navigation"
	case TierUrgent:
		return "urgent"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// Request is one utterance handed to the arbiter.
type Request struct {
	Text      string
	Tier      Tier
	Interrupt bool // Flush queued output and play immediately
}

// Sink is the external text-to-speech contract. Speak must enqueue the
// utterance and return promptly; the pipeline never awaits playback. When
// interrupt is true the sink flushes anything queued or playing first.
type Sink interface {
	Speak(text string, interrupt bool) error
	Close() error
}

// LogSink writes utterances to the log instead of an audio engine. Used
// when no speech engine is configured so the pipeline stays observable.
type LogSink struct{}

func (LogSink) Speak(text string, interrupt bool) error {
	log.Info("announce", "text", text, "interrupt", interrupt)
	return nil
}

func (LogSink) Close() error { return nil }
