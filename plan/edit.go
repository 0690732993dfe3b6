package plan

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-trackgeo/track"
)

const (
	// DefaultMaxGradient is the steepest plan-line slope, in mm/m, accepted
	// without a warning.
	DefaultMaxGradient = 5.0
	// DefaultMinCurveRadius is the smallest vertical curve radius in metres.
	DefaultMinCurveRadius = 600.0
	// DefaultSnapTolerance is how far, in metres, an edit distance may lie
	// from the nearest plan-line point.
	DefaultSnapTolerance = 1.0
)

// Limits are the physical limits applied by edit operations.
type Limits struct {
	MaxGradient    float64
	MinCurveRadius float64
	SnapTolerance  float64
}

// DefaultLimits returns the default edit limits.
func DefaultLimits() Limits {
	return Limits{
		MaxGradient:    DefaultMaxGradient,
		MinCurveRadius: DefaultMinCurveRadius,
		SnapTolerance:  DefaultSnapTolerance,
	}
}

// Direction is the sense of a vertical curve.
type Direction int

const (
	// DirectionUp bulges the line upwards (crest).
	DirectionUp Direction = iota
	// DirectionDown sags the line downwards (sag).
	DirectionDown
)

// ParseDirection maps "up" or "down" to a Direction.
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "up", "convex":
		return DirectionUp, nil
	case "down", "concave":
		return DirectionDown, nil
	}
	return 0, fmt.Errorf("%w: unknown curve direction %q", track.ErrInvalidRange, name)
}

func (d Direction) sign() float64 {
	if d == DirectionDown {
		return -1
	}
	return 1
}

// Warning reports a soft limit exceeded by an edit.
type Warning struct {
	Code    string
	Message string
	Value   float64
	Limit   float64
}

// WarningGradient is raised when a straight line is steeper than MaxGradient.
const WarningGradient = "gradient"

// snap returns the index of the point nearest distance, or ErrPointNotFound
// when it lies further than the snap tolerance.
func snap(line track.PlanLine, distance, tolerance float64) (int, error) {
	i := line.Nearest(distance)
	if i < 0 {
		return -1, fmt.Errorf("%w: plan line is empty", track.ErrPointNotFound)
	}
	if math.Abs(line[i].Distance-distance) > tolerance {
		return -1, fmt.Errorf("%w: no point within %g m of %g m (nearest %g m)",
			track.ErrPointNotFound, tolerance, distance, line[i].Distance)
	}
	return i, nil
}

func checkRange(start, end float64) error {
	if math.IsNaN(start) || math.IsNaN(end) || !(start < end) {
		return fmt.Errorf("%w: start %g must be below end %g", track.ErrInvalidRange, start, end)
	}
	return nil
}

// boundaries snaps both ends of [start, end] to existing points.
func boundaries(line track.PlanLine, start, end float64, lim Limits) (int, int, error) {
	if err := checkRange(start, end); err != nil {
		return 0, 0, err
	}
	i0, err := snap(line, start, lim.SnapTolerance)
	if err != nil {
		return 0, 0, err
	}
	i1, err := snap(line, end, lim.SnapTolerance)
	if err != nil {
		return 0, 0, err
	}
	if i0 >= i1 {
		return 0, 0, fmt.Errorf("%w: [%g, %g] spans fewer than two points", track.ErrInvalidRange, start, end)
	}
	return i0, i1, nil
}

// StraightLine replaces the section between the points nearest start and
// end with linear interpolation of their values. A slope steeper than
// lim.MaxGradient produces a warning, not an error.
func StraightLine(line track.PlanLine, start, end float64, lim Limits) (track.PlanLine, []Warning, error) {
	i0, i1, err := boundaries(line, start, end, lim)
	if err != nil {
		return nil, nil, err
	}

	out := line.Clone()
	a, b := out[i0], out[i1]
	slope := (b.Value - a.Value) / (b.Distance - a.Distance)
	for i := i0 + 1; i < i1; i++ {
		out[i].Value = a.Value + slope*(out[i].Distance-a.Distance)
	}

	var warnings []Warning
	if lim.MaxGradient > 0 && math.Abs(slope) > lim.MaxGradient {
		warnings = append(warnings, Warning{
			Code:    WarningGradient,
			Message: fmt.Sprintf("slope %.3f mm/m exceeds maximum gradient %.3f mm/m", slope, lim.MaxGradient),
			Value:   slope,
			Limit:   lim.MaxGradient,
		})
	}
	return out, warnings, nil
}

// CircularCurve fits a vertical circular curve of the given radius (m)
// between the points nearest start and end. The curve offset from the chord
// is sign·(R(1−cos θh) − R(1−cos θ)) with θ = (d − mid)/R, converted to mm,
// so it vanishes at both ends and peaks at the midpoint.
func CircularCurve(line track.PlanLine, start, end, radius float64, dir Direction, lim Limits) (track.PlanLine, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: curve radius must be > 0: %g", track.ErrInvalidRange, radius)
	}
	if radius < lim.MinCurveRadius {
		return nil, fmt.Errorf("%w: curve radius %g m is below the minimum %g m",
			track.ErrConstraintViolation, radius, lim.MinCurveRadius)
	}
	i0, i1, err := boundaries(line, start, end, lim)
	if err != nil {
		return nil, err
	}

	out := line.Clone()
	a, b := out[i0], out[i1]
	mid := (a.Distance + b.Distance) / 2
	halfAngle := (b.Distance - a.Distance) / 2 / radius
	sagitta := radius * (1 - math.Cos(halfAngle))
	slope := (b.Value - a.Value) / (b.Distance - a.Distance)
	for i := i0 + 1; i < i1; i++ {
		d := out[i].Distance
		theta := (d - mid) / radius
		offset := (sagitta - radius*(1-math.Cos(theta))) * 1000
		out[i].Value = a.Value + slope*(d-a.Distance) + dir.sign()*offset
	}
	return out, nil
}

// SmoothSection applies a centred moving average of window samples to the
// points inside [start, end], using only values from that section.
func SmoothSection(line track.PlanLine, start, end float64, window int) (track.PlanLine, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	if window < 1 {
		return nil, fmt.Errorf("%w: smoothing window must be >= 1: %d", track.ErrInvalidRange, window)
	}

	i0, i1 := -1, -1
	for i, p := range line {
		if p.Distance < start || p.Distance > end {
			continue
		}
		if i0 < 0 {
			i0 = i
		}
		i1 = i
	}
	if i0 < 0 {
		return nil, fmt.Errorf("%w: no plan-line points in [%g, %g]", track.ErrPointNotFound, start, end)
	}

	out := line.Clone()
	avg, ok := MovingAverage(line[i0:i1+1].Values(), window)
	for k := range avg {
		if ok[k] {
			out[i0+k].Value = avg[k]
		}
	}
	return out, nil
}

// EditPoint overwrites the value of the point nearest distance.
func EditPoint(line track.PlanLine, distance, value float64, lim Limits) (track.PlanLine, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: value must be finite: %g", track.ErrInvalidRange, value)
	}
	i, err := snap(line, distance, lim.SnapTolerance)
	if err != nil {
		return nil, err
	}
	out := line.Clone()
	out[i].Value = value
	return out, nil
}
