package track

import (
	"fmt"
	"math"
	"sort"
)

// uniformTolerance is the relative spacing deviation accepted before a
// series is considered non-uniformly sampled.
const uniformTolerance = 1e-3

// Point is one measured sample: distance in metres, deviation in millimetres.
type Point struct {
	Distance float64
	Value    float64
}

// Series is a MeasurementSeries: samples ordered by strictly increasing
// distance with a uniform sampling interval.
type Series []Point

// NewSeries zips distances and values into a Series.
func NewSeries(distances, values []float64) (Series, error) {
	if len(distances) != len(values) {
		return nil, fmt.Errorf("%w: %d distances for %d values", ErrInvalidRange, len(distances), len(values))
	}
	s := make(Series, len(values))
	for i := range values {
		s[i] = Point{Distance: distances[i], Value: values[i]}
	}
	return s, nil
}

// UniformSeries builds a Series starting at start with the given spacing.
func UniformSeries(start, interval float64, values []float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = Point{Distance: start + float64(i)*interval, Value: v}
	}
	return s
}

// Len returns the sample count.
func (s Series) Len() int { return len(s) }

// Values returns a copy of the sample values.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Distances returns a copy of the sample distances.
func (s Series) Distances() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Distance
	}
	return out
}

// WithValues returns a new Series on the same distances carrying values.
// values must have the same length as s.
func (s Series) WithValues(values []float64) Series {
	out := make(Series, len(s))
	for i := range s {
		out[i] = Point{Distance: s[i].Distance, Value: values[i]}
	}
	return out
}

// Span returns the distance covered by the series.
func (s Series) Span() float64 {
	if len(s) < 2 {
		return 0
	}
	return s[len(s)-1].Distance - s[0].Distance
}

// SamplingInterval infers the sampling interval from the distances and
// verifies that they are strictly increasing and uniformly spaced.
func (s Series) SamplingInterval() (float64, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples to infer spacing, got %d", ErrInsufficientData, len(s))
	}
	dx := s.Span() / float64(len(s)-1)
	if !(dx > 0) || math.IsInf(dx, 0) {
		return 0, fmt.Errorf("%w: distances must be strictly increasing", ErrInvalidRange)
	}
	for i := 1; i < len(s); i++ {
		step := s[i].Distance - s[i-1].Distance
		if step <= 0 {
			return 0, fmt.Errorf("%w: distance not increasing at index %d", ErrInvalidRange, i)
		}
		if math.Abs(step-dx) > uniformTolerance*dx {
			return 0, fmt.Errorf("%w: non-uniform spacing %g at index %d (expected %g)", ErrInvalidRange, step, i, dx)
		}
	}
	return dx, nil
}

// ValueAt linearly interpolates the series at distance, holding the end
// values outside the covered range. An empty series yields 0.
func (s Series) ValueAt(distance float64) float64 {
	n := len(s)
	if n == 0 {
		return 0
	}
	if distance <= s[0].Distance {
		return s[0].Value
	}
	if distance >= s[n-1].Distance {
		return s[n-1].Value
	}
	j := sort.Search(n, func(i int) bool { return s[i].Distance >= distance })
	x0, x1 := s[j-1].Distance, s[j].Distance
	t := (distance - x0) / (x1 - x0)
	return s[j-1].Value + t*(s[j].Value-s[j-1].Value)
}
