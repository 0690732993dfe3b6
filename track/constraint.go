package track

import (
	"fmt"
	"math"
	"sort"
)

// FixedPoint restricts movement inside [StartDistance, EndDistance] to
// ±MaxMovement, e.g. near bridges or level crossings.
type FixedPoint struct {
	StartDistance float64 `mapstructure:"start_distance"`
	EndDistance   float64 `mapstructure:"end_distance"`
	MaxMovement   float64 `mapstructure:"max_movement"`
}

// Contains reports whether distance lies inside the fixed range.
func (f FixedPoint) Contains(distance float64) bool {
	return distance >= f.StartDistance && distance <= f.EndDistance
}

// MovementConstraint carries the physical limits applied to movements.
type MovementConstraint struct {
	FixedPoints    []FixedPoint
	StandardLimit  float64
	MaximumLimit   float64
	UpwardPriority bool
}

// Validate checks limit ordering and that fixed ranges are well-formed and
// do not overlap.
func (c MovementConstraint) Validate() error {
	if c.StandardLimit < 0 || c.MaximumLimit < 0 {
		return fmt.Errorf("%w: limits must be >= 0 (standard %g, maximum %g)", ErrInvalidRange, c.StandardLimit, c.MaximumLimit)
	}
	if c.StandardLimit > c.MaximumLimit {
		return fmt.Errorf("%w: standard limit %g exceeds maximum limit %g", ErrInvalidRange, c.StandardLimit, c.MaximumLimit)
	}
	return ValidateFixedPoints(c.FixedPoints)
}

// ValidateFixedPoints checks that every range has start < end, a
// non-negative movement bound, and that no two ranges overlap.
func ValidateFixedPoints(points []FixedPoint) error {
	sorted := make([]FixedPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartDistance < sorted[j].StartDistance })
	for i, f := range sorted {
		if !(f.StartDistance < f.EndDistance) {
			return fmt.Errorf("%w: fixed point [%g, %g] is empty", ErrInvalidRange, f.StartDistance, f.EndDistance)
		}
		if f.MaxMovement < 0 || math.IsNaN(f.MaxMovement) {
			return fmt.Errorf("%w: fixed point max movement must be >= 0: %g", ErrInvalidRange, f.MaxMovement)
		}
		if i > 0 && f.StartDistance <= sorted[i-1].EndDistance {
			return fmt.Errorf("%w: fixed points [%g, %g] and [%g, %g] overlap", ErrInvalidRange,
				sorted[i-1].StartDistance, sorted[i-1].EndDistance, f.StartDistance, f.EndDistance)
		}
	}
	return nil
}

// FixedPointAt returns the fixed range covering distance, if any.
func FixedPointAt(points []FixedPoint, distance float64) (FixedPoint, bool) {
	for _, f := range points {
		if f.Contains(distance) {
			return f, true
		}
	}
	return FixedPoint{}, false
}
