package guidance

// Config holds the decision thresholds for both strategies.
// The partition engine and the legacy scorer are tuned independently;
// their thresholds are deliberately not shared.
type Config struct {
	// Shared input filter
	ConfidenceThresh float64 // Minimum detection confidence
	Horizon          float64 // Ignore objects farther than this (meters)

	// Partition engine
	FullBlockThresh   float64 // Occupancy at which the path counts as blocked
	LargeObjectThresh float64 // Occupancy at which lateral avoidance kicks in
	StopDistance      float64 // Meters; STOP requires closer than this
	AlertDistance     float64 // Meters; lateral avoidance requires closer than this

	// Legacy scorer
	MinBoxWidth      float64  // Boxes narrower than this are ignored
	EdgeMargin       float64  // Boxes centered within this fraction of a frame edge are ignored
	CenterWeight     float64  // Priority weight for center-direction objects
	SideWeight       float64  // Priority weight for side-direction objects
	Stoplist         []string // Labels never navigation-relevant (small handhelds)
	VeryCloseMeters  float64  // Category boundaries from metric distance
	CloseMeters      float64
	MediumMeters     float64
	VeryCloseScore   float64 // Category boundaries from (1-width)^4 when distance is unknown
	CloseScore       float64
	MediumScore      float64
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		ConfidenceThresh: 0.5,
		Horizon:          4.0,

		FullBlockThresh:   0.60,
		LargeObjectThresh: 0.40,
		StopDistance:      1.0,
		AlertDistance:     2.5,

		MinBoxWidth:     0.08,
		EdgeMargin:      0.05,
		CenterWeight:    3.0,
		SideWeight:      1.0,
		Stoplist:        []string{"cup", "bottle", "cell phone", "book", "remote"},
		VeryCloseMeters: 1.0,
		CloseMeters:     2.0,
		MediumMeters:    4.0,
		VeryCloseScore:  0.15,
		CloseScore:      0.35,
		MediumScore:     0.65,
	}
}

// inStoplist reports whether the label is never navigation-relevant.
func (c Config) inStoplist(label string) bool {
	for _, s := range c.Stoplist {
		if s == label {
			return true
		}
	}
	return false
}
