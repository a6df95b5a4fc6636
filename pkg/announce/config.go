package announce

import "time"

// Config holds the timing and hysteresis thresholds for both gates.
type Config struct {
	// Gate (partition path)
	MinInterval     time.Duration // Hard floor between any two announcements
	UrgentRepeat    time.Duration // Repeat interval while the decision is STOP
	NonurgentRepeat time.Duration // Repeat interval for other decisions
	PathClearRepeat time.Duration // Repeat interval while the path stays clear
	DistanceDelta   float64       // Meters of change required to re-announce
	OccupancyDelta  float64       // Occupancy change required to re-announce

	// Limiter (legacy path)
	GlobalCooldown    time.Duration // Minimum gap between any two limiter announcements
	LabelCooldown     time.Duration // Minimum gap per object label
	DirectionCooldown time.Duration // Minimum gap per (label, direction)
	MediumMinPriority float64       // Medium-category objects need at least this priority
	MinWidth          float64       // Boxes narrower than this are noise
	EdgeMargin        float64       // Centers within this fraction of a frame edge are unreliable
}

// DefaultConfig returns the production gate timings.
func DefaultConfig() Config {
	return Config{
		MinInterval:     2 * time.Second,
		UrgentRepeat:    3 * time.Second,
		NonurgentRepeat: 6 * time.Second,
		PathClearRepeat: 8 * time.Second,
		DistanceDelta:   0.5,
		OccupancyDelta:  0.15,

		GlobalCooldown:    2500 * time.Millisecond,
		LabelCooldown:     5 * time.Second,
		DirectionCooldown: 3 * time.Second,
		MediumMinPriority: 10.0,
		MinWidth:          0.08,
		EdgeMargin:        0.05,
	}
}
