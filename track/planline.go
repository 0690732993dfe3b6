package track

import (
	"sort"

	"github.com/google/uuid"
)

// PlanPoint is one target-profile point. ID correlates interactive edits
// and has no meaning beyond a session.
type PlanPoint struct {
	Distance float64
	Value    float64
	ID       uuid.UUID
}

// PlanLine is the target profile ordered by increasing distance.
type PlanLine []PlanPoint

// NewPlanLine builds a plan line with fresh point identifiers.
// distances and values must have equal length.
func NewPlanLine(distances, values []float64) PlanLine {
	p := make(PlanLine, len(values))
	for i := range values {
		p[i] = PlanPoint{Distance: distances[i], Value: values[i], ID: uuid.New()}
	}
	return p
}

// PlanLineFromSeries copies a series into a plan line.
func PlanLineFromSeries(s Series) PlanLine {
	return NewPlanLine(s.Distances(), s.Values())
}

// Clone returns a deep copy that keeps point identifiers.
func (p PlanLine) Clone() PlanLine {
	if p == nil {
		return nil
	}
	out := make(PlanLine, len(p))
	copy(out, p)
	return out
}

// Values returns a copy of the point values.
func (p PlanLine) Values() []float64 {
	out := make([]float64, len(p))
	for i, pt := range p {
		out[i] = pt.Value
	}
	return out
}

// Distances returns a copy of the point distances.
func (p PlanLine) Distances() []float64 {
	out := make([]float64, len(p))
	for i, pt := range p {
		out[i] = pt.Distance
	}
	return out
}

// Nearest returns the index of the point closest to distance, or -1 for an
// empty line.
func (p PlanLine) Nearest(distance float64) int {
	if len(p) == 0 {
		return -1
	}
	j := sort.Search(len(p), func(i int) bool { return p[i].Distance >= distance })
	switch {
	case j == 0:
		return 0
	case j == len(p):
		return len(p) - 1
	}
	if distance-p[j-1].Distance <= p[j].Distance-distance {
		return j - 1
	}
	return j
}

// ValueAt linearly interpolates the line at distance, holding the end
// values outside the covered range. An empty line yields 0.
func (p PlanLine) ValueAt(distance float64) float64 {
	n := len(p)
	if n == 0 {
		return 0
	}
	if distance <= p[0].Distance {
		return p[0].Value
	}
	if distance >= p[n-1].Distance {
		return p[n-1].Value
	}
	j := sort.Search(n, func(i int) bool { return p[i].Distance >= distance })
	x0, x1 := p[j-1].Distance, p[j].Distance
	t := (distance - x0) / (x1 - x0)
	return p[j-1].Value + t*(p[j].Value-p[j-1].Value)
}

// Equal reports whether both lines hold the same points, identifiers included.
func (p PlanLine) Equal(other PlanLine) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
