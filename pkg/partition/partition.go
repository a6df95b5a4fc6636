// Package partition divides the camera frame into three equal horizontal
// zones and computes, per detection, which zones the bounding box touches
// and how much of each zone it covers. The analysis is stateless and
// recomputed for every frame.
package partition

import "github.com/waypath/go-waypath/pkg/detect"

// Zone identifies one horizontal third of the frame.
type Zone int

const (
	ZoneLeft Zone = iota
	ZoneCenter
	ZoneRight
)

func (z Zone) String() string {
	switch z {
	case ZoneLeft:
		return "LEFT"
	case ZoneCenter:
		return "CENTER"
	case ZoneRight:
		return "RIGHT"
	}
	return "UNKNOWN"
}

// Coverage holds the fraction of each zone's width covered by a bounding
// box. Values are in [0,1]; zero when the box does not touch the zone.
type Coverage struct {
	Left   float64
	Center float64
	Right  float64
}

// Analysis is the spatial breakdown of one detection against the three
// frame zones.
type Analysis struct {
	// Overlaps marks the zones the bounding box intersects.
	Overlaps [3]bool

	// CenterZone is the zone containing the horizontal midpoint of the box.
	CenterZone Zone

	// Occupancy is the bounding box width as a fraction of frame width.
	Occupancy float64

	// Coverage is the per-zone coverage fraction.
	Coverage Coverage
}

// OverlapsZone reports whether the detection intersects the given zone.
func (a Analysis) OverlapsZone(z Zone) bool {
	return a.Overlaps[z]
}

// Analyze computes the zone analysis for one detection on a frame of the
// given width. Any consistent width unit works; the detection geometry is
// normalized so the unit cancels out. Degenerate zero-width boxes yield
// zero occupancy and a valid center zone.
func Analyze(d detect.Detection, frameWidth float64) Analysis {
	left := (d.X - d.W/2) * frameWidth
	right := (d.X + d.W/2) * frameWidth

	b1 := frameWidth / 3
	b2 := 2 * frameWidth / 3

	var a Analysis
	a.Overlaps[ZoneLeft] = left < b1 && right > 0
	a.Overlaps[ZoneCenter] = left < b2 && right > b1
	a.Overlaps[ZoneRight] = left < frameWidth && right > b2

	mid := (left + right) / 2
	switch {
	case mid < b1:
		a.CenterZone = ZoneLeft
	case mid < b2:
		a.CenterZone = ZoneCenter
	default:
		a.CenterZone = ZoneRight
	}

	a.Occupancy = (right - left) / frameWidth
	a.Coverage = Coverage{
		Left:   zoneFraction(left, right, 0, b1),
		Center: zoneFraction(left, right, b1, b2),
		Right:  zoneFraction(left, right, b2, frameWidth),
	}
	return a
}

// zoneFraction returns the fraction of [zLeft,zRight] covered by
// [left,right], clamped to [0,1].
func zoneFraction(left, right, zLeft, zRight float64) float64 {
	lo := max(left, zLeft)
	hi := min(right, zRight)
	if hi <= lo {
		return 0
	}
	frac := (hi - lo) / (zRight - zLeft)
	if frac > 1 {
		return 1
	}
	return frac
}
