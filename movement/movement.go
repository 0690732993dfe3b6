package movement

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-trackgeo/dsp/core"
	"github.com/cwbudde/algo-trackgeo/stats/series"
	"github.com/cwbudde/algo-trackgeo/track"
)

// Option configures a calculation.
type Option func(*config)

type config struct {
	policy PriorityPolicy
}

// WithPriorityPolicy replaces the default classification thresholds.
// Invalid policies are ignored.
func WithPriorityPolicy(p PriorityPolicy) Option {
	return func(cfg *config) {
		if p.Validate() == nil {
			cfg.policy = p
		}
	}
}

// Calculate returns one result per restored-waveform position.
func Calculate(line track.PlanLine, restored track.Series, c track.MovementConstraint, opts ...Option) ([]track.MovementResult, error) {
	if len(line) == 0 || len(restored) == 0 {
		return nil, fmt.Errorf("%w: movement needs a plan line and a restored waveform", track.ErrInsufficientData)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg := config{policy: DefaultPriorityPolicy()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]track.MovementResult, len(restored))
	for i, p := range restored {
		raw := line.ValueAt(p.Distance) - p.Value

		var (
			m       float64
			clamped bool
		)
		fp, inFixed := track.FixedPointAt(c.FixedPoints, p.Distance)
		switch {
		case inFixed:
			m, clamped = core.ClampSymmetric(raw, fp.MaxMovement)
		case c.UpwardPriority && raw < 0:
			m, clamped = core.ClampSymmetric(raw, c.StandardLimit)
		default:
			m, clamped = core.ClampSymmetric(raw, c.MaximumLimit)
		}

		priority := cfg.policy.Classify(m)
		if clamped {
			priority = track.PriorityHigh
		}
		out[i] = track.MovementResult{
			Distance:        p.Distance,
			CurrentValue:    p.Value,
			TargetValue:     p.Value + m,
			Movement:        m,
			Priority:        priority,
			Clamped:         clamped,
			InFixedPoint:    inFixed,
			ExceedsStandard: math.Abs(m) > c.StandardLimit,
		}
	}
	return out, nil
}

// Summary aggregates movement results.
type Summary struct {
	Count           int
	High            int
	Medium          int
	Low             int
	Clamped         int
	ExceedsStandard int
	UpwardRatio     float64
	MaxLift         float64
	MaxLowering     float64
	Stats           series.Stats
}

// Summarize counts priorities and reports the movement extremes.
func Summarize(results []track.MovementResult) Summary {
	s := Summary{Count: len(results)}
	if len(results) == 0 {
		return s
	}
	m := make([]float64, len(results))
	for i, r := range results {
		m[i] = r.Movement
		switch r.Priority {
		case track.PriorityHigh:
			s.High++
		case track.PriorityMedium:
			s.Medium++
		default:
			s.Low++
		}
		if r.Clamped {
			s.Clamped++
		}
		if r.ExceedsStandard {
			s.ExceedsStandard++
		}
	}
	s.Stats = series.Calculate(m)
	s.UpwardRatio = series.RatioAtLeast(m, 0)
	s.MaxLift = math.Max(0, s.Stats.Max)
	s.MaxLowering = math.Max(0, -s.Stats.Min)
	return s
}
