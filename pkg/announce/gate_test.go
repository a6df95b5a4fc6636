package announce

import (
	"testing"
	"time"

	"github.com/waypath/go-waypath/pkg/guidance"
)

func res(d guidance.Decision, label string, dist, occ float64) *guidance.Result {
	return &guidance.Result{Decision: d, Label: label, Distance: dist, Occupancy: occ}
}

func newTestGate() (*Gate, *Manual) {
	clock := NewManual(time.Unix(0, 0))
	return NewGate(DefaultConfig(), clock), clock
}

func TestGate_FirstResultSpeaks(t *testing.T) {
	g, _ := newTestGate()

	ann, ok := g.Check(res(guidance.Stop, "person", 0.8, 0.7))
	if !ok {
		t.Fatal("Check() ok = false, want true")
	}
	if ann.Text != "Stop. person ahead" {
		t.Errorf("Text = %q, want stop phrase", ann.Text)
	}
	if !ann.Urgent {
		t.Error("Urgent = false for STOP")
	}
}

func TestGate_HardFloorAbsorbsEverything(t *testing.T) {
	g, clock := newTestGate()

	if _, ok := g.Check(res(guidance.GoStraight, "chair", 3.0, 0.1)); !ok {
		t.Fatal("first Check() suppressed")
	}

	// Even a brand new urgent situation waits out the floor.
	clock.Advance(1 * time.Second)
	if _, ok := g.Check(res(guidance.Stop, "person", 0.5, 0.8)); ok {
		t.Error("Check() within hard floor spoke")
	}

	clock.Advance(1 * time.Second)
	if _, ok := g.Check(res(guidance.Stop, "person", 0.5, 0.8)); !ok {
		t.Error("Check() after hard floor suppressed")
	}
}

func TestGate_LabelChangeSpeaks(t *testing.T) {
	g, clock := newTestGate()

	g.Check(res(guidance.StepLeft, "chair", 2.0, 0.45))
	clock.Advance(2 * time.Second)

	ann, ok := g.Check(res(guidance.StepLeft, "person", 2.0, 0.45))
	if !ok {
		t.Fatal("Check() with new label suppressed")
	}
	if ann.Text != "Step left" {
		t.Errorf("Text = %q, want %q", ann.Text, "Step left")
	}
}

func TestGate_CategoryChangeSpeaks(t *testing.T) {
	g, clock := newTestGate()

	g.Check(res(guidance.GoStraight, "person", 3.0, 0.2))
	clock.Advance(2 * time.Second)

	if _, ok := g.Check(res(guidance.StepRight, "person", 3.0, 0.2)); !ok {
		t.Error("Check() with new decision category suppressed")
	}
}

func TestGate_LateralFlipIsNotAChange(t *testing.T) {
	g, clock := newTestGate()

	g.Check(res(guidance.StepLeft, "person", 2.0, 0.45))

	// The sidestep choice flipping does not count as a new situation.
	clock.Advance(2 * time.Second)
	if _, ok := g.Check(res(guidance.StepRight, "person", 2.0, 0.45)); ok {
		t.Error("Check() spoke on lateral flip alone")
	}
}

func TestGate_RepeatNeedsIntervalAndDelta(t *testing.T) {
	g, clock := newTestGate()

	g.Check(res(guidance.StepRight, "person", 2.4, 0.45))

	// Past the repeat interval but nothing moved: stay quiet.
	clock.Advance(6 * time.Second)
	if _, ok := g.Check(res(guidance.StepRight, "person", 2.3, 0.5)); ok {
		t.Error("Check() spoke without a meaningful delta")
	}

	// A real distance change re-announces.
	if _, ok := g.Check(res(guidance.StepRight, "person", 1.8, 0.5)); !ok {
		t.Error("Check() suppressed despite distance delta")
	}
}

func TestGate_RepeatOnOccupancyDelta(t *testing.T) {
	g, clock := newTestGate()

	g.Check(res(guidance.StepRight, "person", 2.4, 0.45))
	clock.Advance(6 * time.Second)

	if _, ok := g.Check(res(guidance.StepRight, "person", 2.4, 0.65)); !ok {
		t.Error("Check() suppressed despite occupancy delta")
	}
}

func TestGate_UrgentRepeatsFaster(t *testing.T) {
	g, clock := newTestGate()

	g.Check(res(guidance.Stop, "person", 0.9, 0.7))

	// STOP repeats after 3s given a delta; other decisions wait 6s.
	clock.Advance(3 * time.Second)
	if _, ok := g.Check(res(guidance.Stop, "person", 0.4, 0.8)); !ok {
		t.Error("urgent repeat suppressed after UrgentRepeat interval")
	}
}

func TestGate_PathClearTimeline(t *testing.T) {
	g, clock := newTestGate()

	// Nine seconds of clear frames at 1 fps: spoken on the transition and
	// once more when the repeat interval elapses.
	spoken := 0
	for i := 0; i < 10; i++ {
		if _, ok := g.Clear(); ok {
			spoken++
		}
		clock.Advance(1 * time.Second)
	}
	if spoken != 2 {
		t.Errorf("clear announcements = %d, want 2", spoken)
	}
}

func TestGate_ClearText(t *testing.T) {
	g, _ := newTestGate()
	ann, ok := g.Clear()
	if !ok {
		t.Fatal("Clear() suppressed on transition")
	}
	if ann.Text != "Path clear" {
		t.Errorf("Text = %q, want %q", ann.Text, "Path clear")
	}
	if ann.Urgent {
		t.Error("Urgent = true for path clear")
	}
}

func TestGate_ObstacleAfterClearSpeaks(t *testing.T) {
	g, clock := newTestGate()

	g.Clear()
	clock.Advance(2 * time.Second)

	if _, ok := g.Check(res(guidance.GoStraight, "bench", 3.0, 0.1)); !ok {
		t.Error("Check() suppressed after clear state")
	}
}

func TestGate_ClearAfterObstacleSpeaks(t *testing.T) {
	g, clock := newTestGate()

	g.Check(res(guidance.StepLeft, "person", 2.0, 0.45))
	clock.Advance(2 * time.Second)

	if _, ok := g.Clear(); !ok {
		t.Error("Clear() suppressed on obstacle-to-clear transition")
	}
}

func TestGate_ResetReproducesSequence(t *testing.T) {
	g, clock := newTestGate()

	run := func() []bool {
		var outcomes []bool
		_, ok := g.Check(res(guidance.StepLeft, "person", 2.0, 0.45))
		outcomes = append(outcomes, ok)
		clock.Advance(1 * time.Second)
		_, ok = g.Check(res(guidance.StepLeft, "person", 2.0, 0.45))
		outcomes = append(outcomes, ok)
		clock.Advance(2 * time.Second)
		_, ok = g.Check(res(guidance.Stop, "person", 0.8, 0.7))
		outcomes = append(outcomes, ok)
		return outcomes
	}

	first := run()
	g.Reset()
	second := run()

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("outcome %d = %v after reset, want %v", i, second[i], first[i])
		}
	}
}
