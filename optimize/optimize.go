package optimize

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-trackgeo/dsp/core"
	"github.com/cwbudde/algo-trackgeo/plan"
	"github.com/cwbudde/algo-trackgeo/stats/series"
	"github.com/cwbudde/algo-trackgeo/track"
)

// Config controls an optimization run. Movements are in mm.
type Config struct {
	MaxUpward         float64
	MaxDownward       float64
	TargetUpwardRatio float64
	IterationLimit    int
	Tolerance         float64
	StablePatience    int
	StepFactor        float64
	Margin            float64
	SmoothingWindow   int
	FixedPoints       []track.FixedPoint

	// OnIteration, if set, is called after every iteration.
	OnIteration func(iteration int, upwardRatio float64)
}

// DefaultConfig returns the default optimizer settings.
func DefaultConfig() Config {
	return Config{
		MaxUpward:         50,
		MaxDownward:       30,
		TargetUpwardRatio: 0.8,
		IterationLimit:    100,
		Tolerance:         1e-4,
		StablePatience:    3,
		StepFactor:        0.5,
		Margin:            0.1,
		SmoothingWindow:   40,
	}
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	switch {
	case c.MaxUpward < 0 || c.MaxDownward < 0 || math.IsNaN(c.MaxUpward) || math.IsNaN(c.MaxDownward):
		return fmt.Errorf("%w: movement bounds must be >= 0 (up %g, down %g)", track.ErrInvalidRange, c.MaxUpward, c.MaxDownward)
	case !(c.TargetUpwardRatio > 0 && c.TargetUpwardRatio <= 1):
		return fmt.Errorf("%w: target upward ratio must be in (0, 1]: %g", track.ErrInvalidRange, c.TargetUpwardRatio)
	case c.IterationLimit < 0:
		return fmt.Errorf("%w: iteration limit must be >= 0: %d", track.ErrInvalidRange, c.IterationLimit)
	case !(c.StepFactor > 0 && c.StepFactor <= 1):
		return fmt.Errorf("%w: step factor must be in (0, 1]: %g", track.ErrInvalidRange, c.StepFactor)
	case c.Margin < 0 || c.Tolerance < 0:
		return fmt.Errorf("%w: margin and tolerance must be >= 0", track.ErrInvalidRange)
	}
	return track.ValidateFixedPoints(c.FixedPoints)
}

// Statistics summarises an optimization run.
type Statistics struct {
	InitialUpwardRatio float64
	FinalUpwardRatio   float64
	RatioHistory       []float64
	MeanMovement       float64
	MovementRMS        float64
	MaxLift            float64
	MaxLowering        float64
}

// Result is the outcome of [Optimize].
type Result struct {
	PlanLine   track.PlanLine
	Iterations int
	Converged  bool
	Statistics Statistics
}

// Optimize raises line towards upward-only correction of restored.
func Optimize(restored track.Series, line track.PlanLine, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if len(restored) == 0 || len(line) == 0 {
		return Result{}, fmt.Errorf("%w: optimizer needs a restored waveform and a plan line", track.ErrInsufficientData)
	}
	if cfg.StablePatience < 1 {
		cfg.StablePatience = 1
	}
	if cfg.SmoothingWindow < 1 {
		cfg.SmoothingWindow = 1
	}

	out := line.Clone()
	current := make([]float64, len(out))
	for i, p := range out {
		current[i] = restored.ValueAt(p.Distance)
	}

	enforce(out, current, cfg)
	ratio := upwardRatio(out, current)
	st := Statistics{InitialUpwardRatio: ratio, RatioHistory: []float64{ratio}}

	converged := ratio >= cfg.TargetUpwardRatio
	iterations := 0
	stable := 0
	deficit := make([]float64, len(out))
	for !converged && iterations < cfg.IterationLimit {
		iterations++

		for i, p := range out {
			deficit[i] = math.Max(0, current[i]-p.Value+cfg.Margin)
		}
		lift, _ := plan.MovingAverage(deficit, cfg.SmoothingWindow)
		for i := range out {
			out[i].Value += cfg.StepFactor * lift[i]
		}
		enforce(out, current, cfg)

		next := upwardRatio(out, current)
		st.RatioHistory = append(st.RatioHistory, next)
		if cfg.OnIteration != nil {
			cfg.OnIteration(iterations, next)
		}

		if math.Abs(next-ratio) <= cfg.Tolerance {
			stable++
		} else {
			stable = 0
		}
		ratio = next
		converged = ratio >= cfg.TargetUpwardRatio || stable >= cfg.StablePatience
	}

	movements := make([]float64, len(out))
	for i, p := range out {
		movements[i] = p.Value - current[i]
	}
	ms := series.Calculate(movements)
	st.FinalUpwardRatio = ratio
	st.MeanMovement = ms.Mean
	st.MovementRMS = ms.RMS
	st.MaxLift = math.Max(0, ms.Max)
	st.MaxLowering = math.Max(0, -ms.Min)

	return Result{PlanLine: out, Iterations: iterations, Converged: converged, Statistics: st}, nil
}

// enforce clamps movements to the global bounds, then applies fixed points,
// which take precedence.
func enforce(line track.PlanLine, current []float64, cfg Config) {
	for i := range line {
		m := core.Clamp(line[i].Value-current[i], -cfg.MaxDownward, cfg.MaxUpward)
		if fp, ok := track.FixedPointAt(cfg.FixedPoints, line[i].Distance); ok {
			m, _ = core.ClampSymmetric(m, fp.MaxMovement)
		}
		line[i].Value = current[i] + m
	}
}

func upwardRatio(line track.PlanLine, current []float64) float64 {
	movements := make([]float64, len(line))
	for i, p := range line {
		movements[i] = p.Value - current[i]
	}
	return series.RatioAtLeast(movements, 0)
}
