package speech

import (
	"errors"
	"testing"
	"time"

	"github.com/waypath/go-waypath/pkg/announce"
)

func newTestArbiter() (*Arbiter, *MockSink, *announce.Manual) {
	sink := &MockSink{}
	clock := announce.NewManual(time.Unix(0, 0))
	return NewArbiter(sink, WithClock(clock)), sink, clock
}

func TestArbiter_DeliversToSink(t *testing.T) {
	a, sink, _ := newTestArbiter()

	if !a.Request(Request{Text: "Step left", Tier: TierNavigation}) {
		t.Fatal("Request() = false, want true")
	}

	calls := sink.Calls()
	if len(calls) != 1 {
		t.Fatalf("sink calls = %d, want 1", len(calls))
	}
	if calls[0].Text != "Step left" || calls[0].Interrupt {
		t.Errorf("call = %+v, want Step left without interrupt", calls[0])
	}
}

func TestArbiter_InterruptForwarded(t *testing.T) {
	a, sink, _ := newTestArbiter()

	a.Request(Request{Text: "Stop. person ahead", Tier: TierUrgent, Interrupt: true})

	calls := sink.Calls()
	if len(calls) != 1 || !calls[0].Interrupt {
		t.Errorf("calls = %+v, want one interrupting call", calls)
	}
}

func TestArbiter_SuppressionWindowDropsInformation(t *testing.T) {
	a, sink, clock := newTestArbiter()

	a.Request(Request{Text: "Step right", Tier: TierNavigation})

	clock.Advance(1 * time.Second)
	if a.Request(Request{Text: "chair, 2.0 meters", Tier: TierInformation}) {
		t.Error("information request accepted inside suppression window")
	}

	clock.Advance(1 * time.Second)
	if !a.Request(Request{Text: "chair, 2.0 meters", Tier: TierInformation}) {
		t.Error("information request dropped after window expired")
	}

	if got := len(sink.Calls()); got != 2 {
		t.Errorf("sink calls = %d, want 2", got)
	}
}

func TestArbiter_UrgentOpensWindowAndPasses(t *testing.T) {
	a, _, clock := newTestArbiter()

	a.Request(Request{Text: "Stop", Tier: TierUrgent, Interrupt: true})

	clock.Advance(1 * time.Second)
	if a.Request(Request{Text: "ambient", Tier: TierInformation}) {
		t.Error("information accepted inside urgent suppression window")
	}

	// Higher tiers are never dropped by the window.
	if !a.Request(Request{Text: "Step left", Tier: TierNavigation}) {
		t.Error("navigation request dropped")
	}
	if !a.Request(Request{Text: "Stop", Tier: TierUrgent}) {
		t.Error("urgent request dropped")
	}
}

func TestArbiter_InformationDoesNotOpenWindow(t *testing.T) {
	a, _, _ := newTestArbiter()

	a.Request(Request{Text: "chair, 2.0 meters", Tier: TierInformation})
	if !a.Request(Request{Text: "person, 1.5 meters", Tier: TierInformation}) {
		t.Error("information dropped after information spoke")
	}
}

func TestArbiter_Suppressed(t *testing.T) {
	a, _, clock := newTestArbiter()

	if a.Suppressed(TierInformation) {
		t.Error("Suppressed(information) = true before anything spoke")
	}

	a.Request(Request{Text: "Step right", Tier: TierNavigation})
	if !a.Suppressed(TierInformation) {
		t.Error("Suppressed(information) = false inside window")
	}
	if a.Suppressed(TierNavigation) || a.Suppressed(TierUrgent) {
		t.Error("Suppressed() = true for higher tiers")
	}

	clock.Advance(DefaultSuppressionWindow)
	if a.Suppressed(TierInformation) {
		t.Error("Suppressed(information) = true after window expired")
	}
}

func TestArbiter_CustomWindow(t *testing.T) {
	sink := &MockSink{}
	clock := announce.NewManual(time.Unix(0, 0))
	a := NewArbiter(sink, WithClock(clock), WithSuppressionWindow(5*time.Second))

	a.Request(Request{Text: "Step left", Tier: TierNavigation})
	clock.Advance(3 * time.Second)
	if !a.Suppressed(TierInformation) {
		t.Error("Suppressed() = false inside widened window")
	}
	clock.Advance(2 * time.Second)
	if a.Suppressed(TierInformation) {
		t.Error("Suppressed() = true after widened window expired")
	}
}

func TestArbiter_SinkFailure(t *testing.T) {
	a, sink, _ := newTestArbiter()
	sink.SpeakFunc = func(string, bool) error { return errors.New("engine gone") }

	if a.Request(Request{Text: "Step left", Tier: TierNavigation}) {
		t.Error("Request() = true despite sink failure")
	}
}

func TestArbiter_CurrentTier(t *testing.T) {
	a, _, _ := newTestArbiter()

	if _, spoken := a.CurrentTier(); spoken {
		t.Error("CurrentTier() spoken = true before any request")
	}

	a.Request(Request{Text: "Stop", Tier: TierUrgent})
	tier, spoken := a.CurrentTier()
	if !spoken || tier != TierUrgent {
		t.Errorf("CurrentTier() = %v, %v, want urgent, true", tier, spoken)
	}
}

func TestArbiter_ResetClearsWindow(t *testing.T) {
	a, _, _ := newTestArbiter()

	a.Request(Request{Text: "Step right", Tier: TierNavigation})
	a.Reset()

	if a.Suppressed(TierInformation) {
		t.Error("Suppressed() = true after reset")
	}
	if !a.Request(Request{Text: "chair, 2.0 meters", Tier: TierInformation}) {
		t.Error("information dropped after reset")
	}
}
