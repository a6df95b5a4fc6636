package detect

import "sync"

// Mock implements Detector for testing.
// Frames are served in order; after the last frame the final batch repeats.
type Mock struct {
	// DetectFunc is called when Detect is invoked.
	// If nil, frames from Frames are returned in sequence.
	DetectFunc func(jpeg []byte) ([]Detection, error)

	// Frames are returned one batch per Detect call when DetectFunc is nil.
	Frames [][]Detection

	mu    sync.Mutex
	calls int
}

// Detect returns the next canned frame or delegates to DetectFunc.
func (m *Mock) Detect(jpeg []byte) ([]Detection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.DetectFunc != nil {
		return m.DetectFunc(jpeg)
	}
	if len(m.Frames) == 0 {
		return nil, nil
	}
	idx := m.calls - 1
	if idx >= len(m.Frames) {
		idx = len(m.Frames) - 1
	}
	return m.Frames[idx], nil
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }

// Calls returns how many times Detect was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Dist is a helper for building test detections with a known distance.
func Dist(meters float64) *float64 {
	return &meters
}
