package guide

import (
	"testing"
	"time"

	"github.com/waypath/go-waypath/pkg/announce"
	"github.com/waypath/go-waypath/pkg/detect"
	"github.com/waypath/go-waypath/pkg/speech"
)

func newTestGuide(mode Mode) (*Guide, *speech.MockSink, *announce.Manual) {
	clock := announce.NewManual(time.Unix(0, 0))
	sink := &speech.MockSink{}
	arbiter := speech.NewArbiter(sink, speech.WithClock(clock))

	cfg := DefaultConfig()
	cfg.Mode = mode
	return New(cfg, arbiter, clock), sink, clock
}

func blocking(label string, meters float64) detect.Detection {
	return detect.Detection{
		Label:      label,
		Confidence: 0.9,
		X:          0.5,
		Y:          0.7,
		W:          0.7,
		H:          0.5,
		Distance:   detect.Dist(meters),
	}
}

func TestGuide_StopAnnouncedUrgent(t *testing.T) {
	g, sink, _ := newTestGuide(ModePartition)

	res := g.ProcessFrame([]detect.Detection{blocking("person", 0.8)})
	if res.Decision == nil {
		t.Fatal("Decision = nil, want STOP result")
	}
	if !res.Announced {
		t.Fatal("Announced = false, want true")
	}
	if res.Tier != speech.TierUrgent {
		t.Errorf("Tier = %v, want urgent", res.Tier)
	}

	calls := sink.Calls()
	if len(calls) != 1 {
		t.Fatalf("sink calls = %d, want 1", len(calls))
	}
	if calls[0].Text != "Stop. person ahead" {
		t.Errorf("spoken = %q, want stop phrase", calls[0].Text)
	}
	if !calls[0].Interrupt {
		t.Error("Interrupt = false for urgent announcement")
	}
}

func TestGuide_PathClearAnnounced(t *testing.T) {
	g, sink, _ := newTestGuide(ModePartition)

	res := g.ProcessFrame(nil)
	if !res.PathClear {
		t.Error("PathClear = false on empty frame")
	}
	if !res.Announced || res.Spoken != "Path clear" {
		t.Errorf("Spoken = %q (announced %v), want Path clear", res.Spoken, res.Announced)
	}
	if res.Tier != speech.TierNavigation {
		t.Errorf("Tier = %v, want navigation", res.Tier)
	}

	if got := sink.Texts(); len(got) != 1 || got[0] != "Path clear" {
		t.Errorf("sink texts = %v, want [Path clear]", got)
	}
}

func TestGuide_GateSuppressesRepeats(t *testing.T) {
	g, sink, clock := newTestGuide(ModePartition)

	frame := []detect.Detection{blocking("person", 0.8)}
	g.ProcessFrame(frame)

	// Ten more frames inside the hard floor stay silent.
	for i := 0; i < 10; i++ {
		clock.Advance(100 * time.Millisecond)
		res := g.ProcessFrame(frame)
		if res.Decision == nil {
			t.Fatal("Decision = nil, want result every frame")
		}
		if res.Announced {
			t.Fatalf("frame %d announced inside cooldown", i)
		}
	}

	if got := len(sink.Calls()); got != 1 {
		t.Errorf("sink calls = %d, want 1", got)
	}
}

func TestGuide_LegacyMode(t *testing.T) {
	g, sink, _ := newTestGuide(ModeLegacy)

	res := g.ProcessFrame([]detect.Detection{blocking("person", 1.5)})
	if res.Guidance == nil {
		t.Fatal("Guidance = nil, want legacy result")
	}
	if res.Decision != nil {
		t.Error("Decision non-nil in legacy mode")
	}
	if !res.Announced {
		t.Fatal("Announced = false, want true")
	}
	if res.Spoken != "person close ahead" {
		t.Errorf("Spoken = %q, want %q", res.Spoken, "person close ahead")
	}
	if res.Tier != speech.TierNavigation {
		t.Errorf("Tier = %v, want navigation", res.Tier)
	}

	if got := len(sink.Calls()); got != 1 {
		t.Errorf("sink calls = %d, want 1", got)
	}
}

func TestGuide_LegacyVeryCloseInterrupts(t *testing.T) {
	g, sink, _ := newTestGuide(ModeLegacy)

	res := g.ProcessFrame([]detect.Detection{blocking("person", 0.5)})
	if !res.Announced {
		t.Fatal("Announced = false, want true")
	}
	if res.Tier != speech.TierUrgent {
		t.Errorf("Tier = %v, want urgent", res.Tier)
	}

	calls := sink.Calls()
	if len(calls) != 1 || !calls[0].Interrupt {
		t.Errorf("calls = %+v, want one interrupting call", calls)
	}
}

func TestGuide_NormalizesInput(t *testing.T) {
	g, _, _ := newTestGuide(ModePartition)

	// Negative distance is unknown after normalization, so the partition
	// path sees nothing rankable and reports the path clear.
	res := g.ProcessFrame([]detect.Detection{{
		Label:      "person",
		Confidence: 1.4,
		X:          0.5,
		Y:          0.7,
		W:          0.7,
		H:          0.5,
		Distance:   detect.Dist(-2),
	}})
	if !res.PathClear {
		t.Error("PathClear = false, want true for unknown distance")
	}
}

func TestGuide_OnAnnouncementHook(t *testing.T) {
	g, _, _ := newTestGuide(ModePartition)

	var gotText string
	var gotTier speech.Tier
	g.OnAnnouncement = func(text string, tier speech.Tier) {
		gotText, gotTier = text, tier
	}

	g.ProcessFrame([]detect.Detection{blocking("person", 0.8)})
	if gotText != "Stop. person ahead" || gotTier != speech.TierUrgent {
		t.Errorf("hook got %q/%v, want stop phrase at urgent", gotText, gotTier)
	}
}

func TestGuide_ResetReplayIsIdempotent(t *testing.T) {
	g, sink, clock := newTestGuide(ModePartition)

	frames := [][]detect.Detection{
		{blocking("person", 2.0)},
		{blocking("person", 1.8)},
		nil,
		nil,
		{blocking("chair", 0.9)},
	}

	replay := func() []string {
		sink.ResetCalls()
		clock.Set(time.Unix(0, 0))
		for _, f := range frames {
			g.ProcessFrame(f)
			clock.Advance(3 * time.Second)
		}
		return sink.Texts()
	}

	first := replay()
	if len(first) == 0 {
		t.Fatal("no announcements in first replay")
	}

	g.Reset()
	second := replay()

	if len(first) != len(second) {
		t.Fatalf("replay lengths differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("announcement %d = %q, want %q", i, second[i], first[i])
		}
	}
}

func TestGuide_ModeRoundTrip(t *testing.T) {
	for _, m := range []Mode{ModePartition, ModeLegacy} {
		parsed, err := ParseMode(m.String())
		if err != nil {
			t.Fatalf("ParseMode(%q) error = %v", m.String(), err)
		}
		if parsed != m {
			t.Errorf("ParseMode(%q) = %v, want %v", m.String(), parsed, m)
		}
	}

	if _, err := ParseMode("bogus"); err == nil {
		t.Error("ParseMode(bogus) error = nil, want error")
	}
}
