package speech

import (
	"sync"
	"time"
)

// MockSink implements Sink for testing and records every call.
type MockSink struct {
	// SpeakFunc is called when Speak is invoked. If nil, Speak succeeds.
	SpeakFunc func(text string, interrupt bool) error

	mu    sync.Mutex
	calls []SinkCall
}

// SinkCall records one Speak invocation.
type SinkCall struct {
	Text      string
	Interrupt bool
	Time      time.Time
}

// Speak records the call and delegates to SpeakFunc if set.
func (m *MockSink) Speak(text string, interrupt bool) error {
	m.mu.Lock()
	m.calls = append(m.calls, SinkCall{Text: text, Interrupt: interrupt, Time: time.Now()})
	m.mu.Unlock()

	if m.SpeakFunc != nil {
		return m.SpeakFunc(text, interrupt)
	}
	return nil
}

// Close is a no-op.
func (m *MockSink) Close() error { return nil }

// Calls returns all recorded Speak invocations.
func (m *MockSink) Calls() []SinkCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SinkCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Texts returns just the spoken strings, in order.
func (m *MockSink) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.Text
	}
	return out
}

// ResetCalls clears the recorded calls.
func (m *MockSink) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
