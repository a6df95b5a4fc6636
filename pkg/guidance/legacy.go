package guidance

import (
	"fmt"
	"math"

	"github.com/waypath/go-waypath/pkg/detect"
)

// Direction is the user-facing horizontal direction of an object. It maps
// onto the same three frame thirds as partition.Zone.
type Direction int

const (
	DirLeft Direction = iota
	DirCenter
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirCenter:
		return "center"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// DistanceCategory is a coarse distance bucket. The order is total:
// a larger value is strictly more dangerous.
type DistanceCategory int

const (
	Far DistanceCategory = iota
	Medium
	Close
	VeryClose
)

func (c DistanceCategory) String() string {
	switch c {
	case Far:
		return "far"
	case Medium:
		return "medium"
	case Close:
		return "close"
	case VeryClose:
		return "very close"
	}
	return "unknown"
}

// MoreDangerousThan reports whether c is strictly closer than other.
func (c DistanceCategory) MoreDangerousThan(other DistanceCategory) bool {
	return c > other
}

// Guidance is the legacy scorer's output: one object worth announcing,
// with enough geometry attached for the rate limiter's suppression rules.
type Guidance struct {
	Label    string
	Dir      Direction
	Category DistanceCategory
	Priority float64

	Width   float64 // Normalized bounding box width
	XCenter float64 // Normalized horizontal center
}

// GuidanceText renders the spoken phrase for a guidance result.
func GuidanceText(g Guidance) string {
	if g.Dir == DirCenter {
		return fmt.Sprintf("%s %s ahead", g.Label, g.Category)
	}
	return fmt.Sprintf("%s %s on the %s", g.Label, g.Category, g.Dir)
}

// Scorer is the legacy decision strategy. It survives alongside the
// partition engine because its hard suppression rules encode a different
// tuning philosophy; the two are selectable, never merged.
type Scorer struct {
	cfg Config
}

// NewScorer creates a legacy scorer with the given thresholds.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Evaluate scores one frame of detections and returns the single
// highest-priority guidance, or (nil, false) when nothing qualifies.
//
// Objects only matter for walking when they sit in the lower half of the
// frame (roughly ground level), are wide enough to be real, and aren't on
// the stoplist of small handhelds.
func (s *Scorer) Evaluate(dets []detect.Detection) (*Guidance, bool) {
	var best *Guidance
	for _, d := range dets {
		if d.Confidence < s.cfg.ConfidenceThresh {
			continue
		}
		if d.Y < 0.5 {
			continue
		}
		if d.W < s.cfg.MinBoxWidth {
			continue
		}
		if s.cfg.inStoplist(d.Label) {
			continue
		}

		dir := s.direction(d.X)
		category := s.categorize(d)
		g := &Guidance{
			Label:    d.Label,
			Dir:      dir,
			Category: category,
			Priority: s.priority(d, dir),
			Width:    d.W,
			XCenter:  d.X,
		}
		if best == nil || g.Priority > best.Priority {
			best = g
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

func (s *Scorer) direction(x float64) Direction {
	switch {
	case x < 1.0/3:
		return DirLeft
	case x < 2.0/3:
		return DirCenter
	default:
		return DirRight
	}
}

// categorize buckets the object's distance. Real depth wins when present;
// otherwise the bounding box width stands in via (1-w)^4, where a smaller
// score means a wider, closer object. With no signal at all the object
// defaults to Far, which the rate limiter never announces.
func (s *Scorer) categorize(d detect.Detection) DistanceCategory {
	if meters, ok := d.DistanceMeters(); ok {
		switch {
		case meters < s.cfg.VeryCloseMeters:
			return VeryClose
		case meters < s.cfg.CloseMeters:
			return Close
		case meters < s.cfg.MediumMeters:
			return Medium
		default:
			return Far
		}
	}

	if d.W <= 0 {
		return Far
	}
	score := math.Pow(1-d.W, 4)
	switch {
	case score < s.cfg.VeryCloseScore:
		return VeryClose
	case score < s.cfg.CloseScore:
		return Close
	case score < s.cfg.MediumScore:
		return Medium
	default:
		return Far
	}
}

// priority ranks objects for announcement. Confidence, proximity, and a
// center-of-frame bias all contribute; proximity dominates.
func (s *Scorer) priority(d detect.Detection, dir Direction) float64 {
	meters, ok := d.DistanceMeters()
	if !ok {
		// No depth signal: rank as if distant so depth-backed objects win.
		meters = 10
	}
	meters = math.Min(math.Max(meters, 0.1), 10)

	weight := s.cfg.SideWeight
	if dir == DirCenter {
		weight = s.cfg.CenterWeight
	}
	return d.Confidence*2 + (10/meters)*3 + weight
}
