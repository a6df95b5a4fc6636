// Package guidance turns per-frame detections into a single navigation
// decision. Two independent strategies are provided: the partition engine
// (zone geometry, primary) and the legacy scorer (direction plus distance
// category). Both are pure functions over their inputs; all announcement
// state lives downstream in the announce package.
package guidance

import (
	"fmt"

	"github.com/waypath/go-waypath/pkg/partition"
)

// Decision is the navigation instruction for one frame.
type Decision int

const (
	Stop Decision = iota
	StepLeft
	StepRight
	GoStraight
)

func (d Decision) String() string {
	switch d {
	case Stop:
		return "STOP"
	case StepLeft:
		return "STEP_LEFT"
	case StepRight:
		return "STEP_RIGHT"
	case GoStraight:
		return "GO_STRAIGHT"
	}
	return fmt.Sprintf("Decision(%d)", int(d))
}

// IsLateral reports whether the decision is a sidestep. The announcement
// gate treats the two lateral decisions as one category so the choice
// flipping between frames doesn't defeat its change detection.
func IsLateral(d Decision) bool {
	return d == StepLeft || d == StepRight
}

// IsUrgent reports whether the decision warrants interrupting current
// speech output.
func IsUrgent(d Decision) bool {
	return d == Stop
}

// Text renders the spoken phrase for a decision about the given object.
func Text(d Decision, label string) string {
	switch d {
	case Stop:
		if label != "" {
			return fmt.Sprintf("Stop. %s ahead", label)
		}
		return "Stop"
	case StepLeft:
		return "Step left"
	case StepRight:
		return "Step right"
	case GoStraight:
		return "Continue straight"
	}
	return ""
}

// Result is the partition engine's output for one frame: the decision plus
// the metrics the announcement gate keys its hysteresis on.
type Result struct {
	Decision  Decision
	Label     string  // Primary object's label
	Distance  float64 // Primary object's distance (meters)
	Occupancy float64 // Primary object's frame occupancy
	Coverage  partition.Coverage
}
