package guidance

import (
	"github.com/waypath/go-waypath/pkg/detect"
	"github.com/waypath/go-waypath/pkg/partition"
)

// Engine is the partition-based decision strategy. It is stateless; one
// Decide call handles one frame.
type Engine struct {
	cfg Config
}

// NewEngine creates a partition engine with the given thresholds.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// candidate pairs a qualifying detection with its zone analysis.
type candidate struct {
	det      detect.Detection
	analysis partition.Analysis
	distance float64
}

// Decide evaluates one frame of detections. It returns (nil, false) when no
// detection qualifies: the "path clear" state, handled by the gate, not an
// error. Detections without a depth reading cannot be ranked by distance
// and never qualify for this strategy; the legacy scorer covers that case.
//
// The primary target is the closest qualifying detection; ties are broken
// by first-encountered order, which makes the result deterministic for a
// given input ordering.
func (e *Engine) Decide(dets []detect.Detection, frameWidth float64) (*Result, bool) {
	var qualified []candidate
	for _, d := range dets {
		if d.Confidence < e.cfg.ConfidenceThresh {
			continue
		}
		meters, ok := d.DistanceMeters()
		if !ok || meters > e.cfg.Horizon {
			continue
		}
		qualified = append(qualified, candidate{
			det:      d,
			analysis: partition.Analyze(d, frameWidth),
			distance: meters,
		})
	}
	if len(qualified) == 0 {
		return nil, false
	}

	closest := qualified[0]
	for _, c := range qualified[1:] {
		if c.distance < closest.distance {
			closest = c
		}
	}

	result := &Result{
		Label:     closest.det.Label,
		Distance:  closest.distance,
		Occupancy: closest.analysis.Occupancy,
		Coverage:  closest.analysis.Coverage,
	}

	// Rules in strict priority order; first match wins.
	switch {
	case closest.analysis.Occupancy >= e.cfg.FullBlockThresh && closest.distance <= e.cfg.StopDistance:
		result.Decision = Stop

	case closest.analysis.Occupancy >= e.cfg.LargeObjectThresh && closest.distance <= e.cfg.AlertDistance:
		result.Decision = chooseLateral(qualified)

	case closest.analysis.CenterZone == partition.ZoneCenter:
		result.Decision = chooseLateral(qualified)

	default:
		// Obstacle is off to the side; the forward path is clear.
		result.Decision = GoStraight
	}

	return result, true
}

// chooseLateral picks the sidestep direction by comparing aggregate zone
// coverage on each side over all qualifying detections, not just the
// closest one: several small objects on one side can be collectively worse
// than a single object on the other. Equal sums step right.
func chooseLateral(qualified []candidate) Decision {
	var leftSum, rightSum float64
	for _, c := range qualified {
		if c.analysis.OverlapsZone(partition.ZoneLeft) {
			leftSum += c.analysis.Coverage.Left
		}
		if c.analysis.OverlapsZone(partition.ZoneRight) {
			rightSum += c.analysis.Coverage.Right
		}
	}
	if leftSum < rightSum {
		return StepLeft
	}
	return StepRight
}
