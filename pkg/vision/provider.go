// Package vision provides scene description for the manual "what's around
// me" request: the user asks, a remote vision model answers, and the
// arbiter speaks the answer at the information tier.
package vision

// FrameSource provides access to the current camera frame.
type FrameSource interface {
	CaptureFrame() ([]byte, error) // Returns JPEG image data
}

// Describer turns a camera frame into a spoken-friendly scene description.
type Describer interface {
	Describe(jpeg []byte) (string, error)
}
