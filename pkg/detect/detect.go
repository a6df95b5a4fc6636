// Package detect defines the canonical detection record produced by the
// object-detection and depth collaborators, plus the normalization applied
// at the pipeline boundary.
//
// The guidance core never talks to a model directly; it consumes a
// per-frame batch of Detection values through the Detector interface.
// Backends (DNN, replay logs, mocks) all produce the same record.
package detect

// Detection is a single detected object in one frame.
// Geometry is normalized to the frame: X,Y are the bounding box center and
// W,H its size, all in [0,1]. Records are immutable once produced and
// discarded after the frame is processed.
type Detection struct {
	Label      string
	Confidence float64 // 0-1

	X, Y float64 // Center position, normalized
	W, H float64 // Width and height, normalized

	// Distance is the depth-derived distance in meters, nil when the depth
	// collaborator produced no reading for this box.
	Distance *float64
}

// HasDistance reports whether a depth reading is attached.
func (d Detection) HasDistance() bool {
	return d.Distance != nil
}

// DistanceMeters returns the attached distance, or (0, false) when unknown.
func (d Detection) DistanceMeters() (float64, bool) {
	if d.Distance == nil {
		return 0, false
	}
	return *d.Distance, true
}

// Left returns the normalized left edge of the bounding box.
func (d Detection) Left() float64 {
	return d.X - d.W/2
}

// Right returns the normalized right edge of the bounding box.
func (d Detection) Right() float64 {
	return d.X + d.W/2
}

// Area returns the normalized bounding box area.
func (d Detection) Area() float64 {
	return d.W * d.H
}

// Detector is the interface for object detection backends.
type Detector interface {
	// Detect finds objects in the JPEG image and returns their positions.
	Detect(jpeg []byte) ([]Detection, error)

	// Close releases resources.
	Close() error
}

// Normalize clamps a raw detection into the documented ranges so
// out-of-range collaborator output never reaches the decision engine.
// Confidence and geometry are clamped to [0,1]; a non-positive distance is
// treated as unknown.
func Normalize(d Detection) Detection {
	d.Confidence = clamp01(d.Confidence)
	d.X = clamp01(d.X)
	d.Y = clamp01(d.Y)
	d.W = clamp01(d.W)
	d.H = clamp01(d.H)
	if d.Distance != nil && *d.Distance <= 0 {
		d.Distance = nil
	}
	return d
}

// NormalizeAll normalizes a frame batch in place and returns it.
func NormalizeAll(dets []Detection) []Detection {
	for i := range dets {
		dets[i] = Normalize(dets[i])
	}
	return dets
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
