package plan

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-trackgeo/track"
)

// DefaultWindowSize is the moving-average window in samples.
const DefaultWindowSize = 800

// Method selects how the initial plan line is derived.
type Method string

const (
	MethodMovingAverage Method = "moving-average"
	MethodZeroCrossing  Method = "zero-crossing"
)

// ParseMethod maps a method name to a Method. The empty string selects
// [MethodMovingAverage].
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case "", MethodMovingAverage:
		return MethodMovingAverage, nil
	case MethodZeroCrossing:
		return MethodZeroCrossing, nil
	}
	return "", fmt.Errorf("%w: unknown plan-line method %q", track.ErrInvalidRange, name)
}

// Generate dispatches to the generator for method.
func Generate(restored track.Series, method Method, windowSize int) (track.PlanLine, error) {
	switch method {
	case MethodZeroCrossing:
		return GenerateZeroCrossing(restored)
	case MethodMovingAverage, "":
		return GenerateInitial(restored, windowSize)
	}
	return nil, fmt.Errorf("%w: unknown plan-line method %q", track.ErrInvalidRange, method)
}

// GenerateInitial smooths the restored waveform with a centred moving
// average of windowSize samples (<= 0 selects [DefaultWindowSize]).
// Positions without any valid sample in their window are skipped.
func GenerateInitial(restored track.Series, windowSize int) (track.PlanLine, error) {
	if len(restored) == 0 {
		return nil, fmt.Errorf("%w: empty restored waveform", track.ErrInsufficientData)
	}
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}

	avg, ok := MovingAverage(restored.Values(), windowSize)
	line := make(track.PlanLine, 0, len(restored))
	for i, p := range restored {
		if !ok[i] {
			continue
		}
		line = append(line, track.PlanPoint{Distance: p.Distance, Value: avg[i], ID: uuid.New()})
	}
	if len(line) == 0 {
		return nil, fmt.Errorf("%w: restored waveform has no valid samples", track.ErrInsufficientData)
	}
	return line, nil
}

// anchor is a plan-line control point.
type anchor struct {
	distance float64
	value    float64
}

// GenerateZeroCrossing anchors the plan line at every zero crossing of the
// restored waveform, valued at the mean of the full wave around it (the two
// adjacent half-waves), and interpolates linearly between anchors. Without
// any crossing the line is the waveform mean.
func GenerateZeroCrossing(restored track.Series) (track.PlanLine, error) {
	var valid track.Series
	for _, p := range restored {
		if !math.IsNaN(p.Value) {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: restored waveform has no valid samples", track.ErrInsufficientData)
	}

	segments := halfWaves(valid)
	var anchors []anchor
	for k := 1; k < len(segments); k++ {
		prev, cur := segments[k-1], segments[k]
		sum, n := 0.0, 0
		for _, p := range valid[prev.start:cur.end] {
			sum += p.Value
			n++
		}
		anchors = append(anchors, anchor{
			distance: (valid[cur.start-1].Distance + valid[cur.start].Distance) / 2,
			value:    sum / float64(n),
		})
	}
	if len(anchors) == 0 {
		mean := 0.0
		for _, p := range valid {
			mean += p.Value
		}
		anchors = []anchor{{distance: valid[0].Distance, value: mean / float64(len(valid))}}
	}

	line := make(track.PlanLine, len(valid))
	for i, p := range valid {
		line[i] = track.PlanPoint{Distance: p.Distance, Value: interpolateAnchors(anchors, p.Distance), ID: uuid.New()}
	}
	return line, nil
}

type segment struct {
	start, end int
}

// halfWaves splits s at sign changes. Exact zeros join the current segment.
func halfWaves(s track.Series) []segment {
	var segs []segment
	start := 0
	sign := 0.0
	for i, p := range s {
		if p.Value == 0 {
			continue
		}
		cur := math.Copysign(1, p.Value)
		if sign != 0 && cur != sign {
			segs = append(segs, segment{start: start, end: i})
			start = i
		}
		sign = cur
	}
	return append(segs, segment{start: start, end: len(s)})
}

func interpolateAnchors(anchors []anchor, distance float64) float64 {
	n := len(anchors)
	if distance <= anchors[0].distance {
		return anchors[0].value
	}
	if distance >= anchors[n-1].distance {
		return anchors[n-1].value
	}
	for k := 1; k < n; k++ {
		if distance <= anchors[k].distance {
			a, b := anchors[k-1], anchors[k]
			t := (distance - a.distance) / (b.distance - a.distance)
			return a.value + t*(b.value-a.value)
		}
	}
	return anchors[n-1].value
}
