package movement

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-trackgeo/track"
)

const (
	// DefaultHighThreshold is the |movement| in mm at or above which a
	// position is high priority.
	DefaultHighThreshold = 20.0
	// DefaultMediumThreshold is the |movement| in mm at or above which a
	// position is medium priority.
	DefaultMediumThreshold = 10.0
)

// PriorityPolicy holds the classification thresholds in mm.
type PriorityPolicy struct {
	HighThreshold   float64
	MediumThreshold float64
}

// DefaultPriorityPolicy returns the 20 mm / 10 mm policy.
func DefaultPriorityPolicy() PriorityPolicy {
	return PriorityPolicy{HighThreshold: DefaultHighThreshold, MediumThreshold: DefaultMediumThreshold}
}

// Validate checks 0 <= MediumThreshold <= HighThreshold and HighThreshold > 0.
func (p PriorityPolicy) Validate() error {
	if !(p.HighThreshold > 0) {
		return fmt.Errorf("%w: high priority threshold must be > 0: %g", track.ErrInvalidRange, p.HighThreshold)
	}
	if p.MediumThreshold < 0 || p.MediumThreshold > p.HighThreshold {
		return fmt.Errorf("%w: priority thresholds must satisfy 0 <= medium (%g) <= high (%g)",
			track.ErrInvalidRange, p.MediumThreshold, p.HighThreshold)
	}
	return nil
}

// Classify maps a movement to a priority.
func (p PriorityPolicy) Classify(movement float64) track.Priority {
	a := math.Abs(movement)
	switch {
	case a >= p.HighThreshold:
		return track.PriorityHigh
	case a >= p.MediumThreshold:
		return track.PriorityMedium
	default:
		return track.PriorityLow
	}
}
