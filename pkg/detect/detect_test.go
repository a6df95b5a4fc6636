package detect

import (
	"math"
	"testing"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalize_ClampsGeometry(t *testing.T) {
	d := Normalize(Detection{
		Label:      "person",
		Confidence: 1.4,
		X:          -0.1,
		Y:          1.2,
		W:          0.5,
		H:          -0.3,
	})

	if d.Confidence != 1 {
		t.Errorf("Confidence = %v, want 1", d.Confidence)
	}
	if d.X != 0 {
		t.Errorf("X = %v, want 0", d.X)
	}
	if d.Y != 1 {
		t.Errorf("Y = %v, want 1", d.Y)
	}
	if d.W != 0.5 {
		t.Errorf("W = %v, want 0.5", d.W)
	}
	if d.H != 0 {
		t.Errorf("H = %v, want 0", d.H)
	}
}

func TestNormalize_NonPositiveDistanceBecomesUnknown(t *testing.T) {
	d := Normalize(Detection{Label: "chair", Distance: Dist(-1.0)})
	if d.HasDistance() {
		t.Error("HasDistance() = true after normalizing negative distance")
	}

	d = Normalize(Detection{Label: "chair", Distance: Dist(0)})
	if d.HasDistance() {
		t.Error("HasDistance() = true after normalizing zero distance")
	}

	d = Normalize(Detection{Label: "chair", Distance: Dist(2.5)})
	meters, ok := d.DistanceMeters()
	if !ok || meters != 2.5 {
		t.Errorf("DistanceMeters() = %v, %v, want 2.5, true", meters, ok)
	}
}

func TestNormalizeAll(t *testing.T) {
	dets := NormalizeAll([]Detection{
		{Confidence: 2.0},
		{Confidence: 0.7, Distance: Dist(-3)},
	})
	if dets[0].Confidence != 1 {
		t.Errorf("dets[0].Confidence = %v, want 1", dets[0].Confidence)
	}
	if dets[1].HasDistance() {
		t.Error("dets[1].HasDistance() = true, want false")
	}
}

func TestDetection_Edges(t *testing.T) {
	d := Detection{X: 0.5, W: 0.2, H: 0.4}
	if !floatEquals(d.Left(), 0.4) {
		t.Errorf("Left() = %v, want 0.4", d.Left())
	}
	if !floatEquals(d.Right(), 0.6) {
		t.Errorf("Right() = %v, want 0.6", d.Right())
	}
	if !floatEquals(d.Area(), 0.08) {
		t.Errorf("Area() = %v, want 0.08", d.Area())
	}
}

func TestDistanceMeters_Unknown(t *testing.T) {
	d := Detection{Label: "person"}
	if _, ok := d.DistanceMeters(); ok {
		t.Error("DistanceMeters() ok = true with no reading")
	}
}

func TestMock_SequencePlayback(t *testing.T) {
	m := &Mock{Frames: [][]Detection{
		{{Label: "person"}},
		{{Label: "chair"}, {Label: "table"}},
	}}

	first, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(first) != 1 || first[0].Label != "person" {
		t.Errorf("frame 1 = %+v, want one person", first)
	}

	second, _ := m.Detect(nil)
	if len(second) != 2 {
		t.Errorf("frame 2 len = %d, want 2", len(second))
	}

	// Past the end of the sequence the final batch repeats.
	third, _ := m.Detect(nil)
	if len(third) != 2 || third[0].Label != "chair" {
		t.Errorf("frame 3 = %+v, want final batch repeated", third)
	}

	if m.Calls() != 3 {
		t.Errorf("Calls() = %d, want 3", m.Calls())
	}
}
