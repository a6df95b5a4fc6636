package detect

import "sort"

// Depth annotation constants.
// The depth collaborator reports relative per-region values; a calibration
// scale converts them to meters.
const (
	// DefaultDepthScale converts raw depth units to meters.
	DefaultDepthScale = 1.0

	// Distances outside this range are unreliable and clamped.
	MinDistanceMeters = 0.3
	MaxDistanceMeters = 10.0
)

// Calibration converts raw depth samples into metric distance.
type Calibration struct {
	Scale float64 // Raw-to-meters multiplier
	Min   float64 // Lower clamp (meters)
	Max   float64 // Upper clamp (meters)
}

// DefaultCalibration returns the production depth calibration.
func DefaultCalibration() Calibration {
	return Calibration{
		Scale: DefaultDepthScale,
		Min:   MinDistanceMeters,
		Max:   MaxDistanceMeters,
	}
}

// Distance converts the depth samples from one bounding box region into a
// metric distance. The median is used rather than the mean so stray
// foreground/background pixels inside the box don't skew the reading.
// Returns (0, false) when there are no usable samples.
func (c Calibration) Distance(samples []float64) (float64, bool) {
	valid := samples[:0:0]
	for _, s := range samples {
		if s > 0 {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return 0, false
	}

	meters := median(valid) * c.Scale
	if meters < c.Min {
		meters = c.Min
	}
	if meters > c.Max {
		meters = c.Max
	}
	return meters, true
}

// Annotate attaches a distance to the detection from the region's depth
// samples. Detections with no usable samples are left with unknown
// distance; the guidance core applies its documented safe defaults.
func (c Calibration) Annotate(d Detection, samples []float64) Detection {
	if meters, ok := c.Distance(samples); ok {
		d.Distance = &meters
	}
	return d
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
