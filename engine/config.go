package engine

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-trackgeo/dsp/restore"
	"github.com/cwbudde/algo-trackgeo/dsp/waveband"
	"github.com/cwbudde/algo-trackgeo/movement"
	"github.com/cwbudde/algo-trackgeo/optimize"
	"github.com/cwbudde/algo-trackgeo/plan"
	"github.com/cwbudde/algo-trackgeo/track"
)

const (
	// DefaultMinWavelength and DefaultMaxWavelength bound the default
	// restoration window in metres.
	DefaultMinWavelength = 6.0
	DefaultMaxWavelength = 40.0

	// DefaultStandardLimit and DefaultMaximumLimit are the default
	// movement limits in mm.
	DefaultStandardLimit = 30.0
	DefaultMaximumLimit  = 50.0
)

// RestoreConfig parameterises RestoreWaveform. A zero SamplingInterval
// is inferred from the series. ExactLength skips the power-of-two padding
// so that restoring the result again leaves it unchanged.
type RestoreConfig struct {
	MinWavelength    float64 `mapstructure:"min_wavelength"`
	MaxWavelength    float64 `mapstructure:"max_wavelength"`
	SamplingInterval float64 `mapstructure:"sampling_interval"`
	ExactLength      bool    `mapstructure:"exact_length"`
}

// DefaultRestoreConfig returns the 6-40 m window with inferred interval.
func DefaultRestoreConfig() RestoreConfig {
	return RestoreConfig{MinWavelength: DefaultMinWavelength, MaxWavelength: DefaultMaxWavelength}
}

// Validate checks the wavelength window and interval.
func (c RestoreConfig) Validate() error {
	if err := restore.ValidateBand(c.MinWavelength, c.MaxWavelength); err != nil {
		return err
	}
	return validateInterval(c.SamplingInterval)
}

// WavebandConfig parameterises AnalyzeWavebands. Empty Bands selects
// [waveband.DefaultBands]. A zero effective range selects 1-200 m.
type WavebandConfig struct {
	SamplingInterval float64         `mapstructure:"sampling_interval"`
	Bands            []waveband.Band `mapstructure:"bands"`
	EffectiveMin     float64         `mapstructure:"effective_min"`
	EffectiveMax     float64         `mapstructure:"effective_max"`
}

// DefaultWavebandConfig returns the default band set.
func DefaultWavebandConfig() WavebandConfig {
	return WavebandConfig{Bands: waveband.DefaultBands()}
}

// Validate checks the band set and interval.
func (c WavebandConfig) Validate() error {
	if err := validateInterval(c.SamplingInterval); err != nil {
		return err
	}
	if len(c.Bands) > 0 {
		return waveband.ValidateBands(c.Bands)
	}
	return nil
}

func (c WavebandConfig) bands() []waveband.Band {
	if len(c.Bands) == 0 {
		return waveband.DefaultBands()
	}
	return c.Bands
}

// PlanLineConfig parameterises GenerateInitialPlanLine. MaxGradient and
// MaximumLimit only feed the validation report.
type PlanLineConfig struct {
	Method       string  `mapstructure:"method"`
	WindowSize   int     `mapstructure:"window_size"`
	MaxGradient  float64 `mapstructure:"max_gradient"`
	MaximumLimit float64 `mapstructure:"maximum_limit"`
}

// DefaultPlanLineConfig returns the moving-average generator settings.
func DefaultPlanLineConfig() PlanLineConfig {
	return PlanLineConfig{
		Method:       string(plan.MethodMovingAverage),
		WindowSize:   plan.DefaultWindowSize,
		MaxGradient:  plan.DefaultMaxGradient,
		MaximumLimit: DefaultMaximumLimit,
	}
}

// Validate checks the method name and limits.
func (c PlanLineConfig) Validate() error {
	if _, err := plan.ParseMethod(c.Method); err != nil {
		return err
	}
	if c.WindowSize < 0 {
		return fmt.Errorf("%w: window size must be >= 0: %d", track.ErrInvalidRange, c.WindowSize)
	}
	if c.MaxGradient < 0 || c.MaximumLimit < 0 {
		return fmt.Errorf("%w: gradient and movement limits must be >= 0", track.ErrInvalidRange)
	}
	return nil
}

// OptimizeConfig parameterises OptimizePlanLine. The band comparison in the
// returned improvement uses Bands (default: complete bands for the
// interval) and ImprovementThreshold in percent.
type OptimizeConfig struct {
	TargetUpwardRatio    float64            `mapstructure:"target_upward_ratio"`
	MaxUpward            float64            `mapstructure:"max_upward"`
	MaxDownward          float64            `mapstructure:"max_downward"`
	IterationLimit       int                `mapstructure:"iteration_limit"`
	Tolerance            float64            `mapstructure:"tolerance"`
	StablePatience       int                `mapstructure:"stable_patience"`
	StepFactor           float64            `mapstructure:"step_factor"`
	Margin               float64            `mapstructure:"margin"`
	SmoothingWindow      int                `mapstructure:"smoothing_window"`
	FixedPoints          []track.FixedPoint `mapstructure:"fixed_points"`
	SamplingInterval     float64            `mapstructure:"sampling_interval"`
	Bands                []waveband.Band    `mapstructure:"bands"`
	ImprovementThreshold float64            `mapstructure:"improvement_threshold"`
}

// DefaultOptimizeConfig mirrors [optimize.DefaultConfig].
func DefaultOptimizeConfig() OptimizeConfig {
	d := optimize.DefaultConfig()
	return OptimizeConfig{
		TargetUpwardRatio:    d.TargetUpwardRatio,
		MaxUpward:            d.MaxUpward,
		MaxDownward:          d.MaxDownward,
		IterationLimit:       d.IterationLimit,
		Tolerance:            d.Tolerance,
		StablePatience:       d.StablePatience,
		StepFactor:           d.StepFactor,
		Margin:               d.Margin,
		SmoothingWindow:      d.SmoothingWindow,
		ImprovementThreshold: waveband.DefaultImprovementThreshold,
	}
}

func (c OptimizeConfig) optimizer() optimize.Config {
	return optimize.Config{
		MaxUpward:         c.MaxUpward,
		MaxDownward:       c.MaxDownward,
		TargetUpwardRatio: c.TargetUpwardRatio,
		IterationLimit:    c.IterationLimit,
		Tolerance:         c.Tolerance,
		StablePatience:    c.StablePatience,
		StepFactor:        c.StepFactor,
		Margin:            c.Margin,
		SmoothingWindow:   c.SmoothingWindow,
		FixedPoints:       c.FixedPoints,
	}
}

// Validate checks optimizer bounds, bands and threshold.
func (c OptimizeConfig) Validate() error {
	if err := c.optimizer().Validate(); err != nil {
		return err
	}
	if err := validateInterval(c.SamplingInterval); err != nil {
		return err
	}
	if c.ImprovementThreshold < 0 || c.ImprovementThreshold > 100 {
		return fmt.Errorf("%w: improvement threshold must be in [0, 100]: %g", track.ErrInvalidRange, c.ImprovementThreshold)
	}
	if len(c.Bands) > 0 {
		return waveband.ValidateBands(c.Bands)
	}
	return nil
}

// MovementConfig parameterises CalculateMovement.
type MovementConfig struct {
	FixedPoints     []track.FixedPoint `mapstructure:"fixed_points"`
	StandardLimit   float64            `mapstructure:"standard_limit"`
	MaximumLimit    float64            `mapstructure:"maximum_limit"`
	UpwardPriority  bool               `mapstructure:"upward_priority"`
	HighThreshold   float64            `mapstructure:"high_threshold"`
	MediumThreshold float64            `mapstructure:"medium_threshold"`
}

// DefaultMovementConfig returns 30/50 mm limits and the 10/20 mm policy.
// UpwardPriority is off, so lowering is bounded by MaximumLimit like lifting.
func DefaultMovementConfig() MovementConfig {
	p := movement.DefaultPriorityPolicy()
	return MovementConfig{
		StandardLimit:   DefaultStandardLimit,
		MaximumLimit:    DefaultMaximumLimit,
		HighThreshold:   p.HighThreshold,
		MediumThreshold: p.MediumThreshold,
	}
}

func (c MovementConfig) constraint() track.MovementConstraint {
	return track.MovementConstraint{
		FixedPoints:    c.FixedPoints,
		StandardLimit:  c.StandardLimit,
		MaximumLimit:   c.MaximumLimit,
		UpwardPriority: c.UpwardPriority,
	}
}

// policy returns the configured thresholds, or the default policy when
// neither threshold is set.
func (c MovementConfig) policy() movement.PriorityPolicy {
	if c.HighThreshold == 0 && c.MediumThreshold == 0 {
		return movement.DefaultPriorityPolicy()
	}
	return movement.PriorityPolicy{HighThreshold: c.HighThreshold, MediumThreshold: c.MediumThreshold}
}

// Validate checks limits, fixed points and the priority thresholds.
func (c MovementConfig) Validate() error {
	if err := c.constraint().Validate(); err != nil {
		return err
	}
	return c.policy().Validate()
}

// ImprovementConfig parameterises CompareImprovement.
type ImprovementConfig struct {
	SamplingInterval float64         `mapstructure:"sampling_interval"`
	Bands            []waveband.Band `mapstructure:"bands"`
	Threshold        float64         `mapstructure:"threshold"`
}

// DefaultImprovementConfig returns the default bands and 30% threshold.
func DefaultImprovementConfig() ImprovementConfig {
	return ImprovementConfig{Bands: waveband.DefaultBands(), Threshold: waveband.DefaultImprovementThreshold}
}

// Validate checks bands, interval and threshold.
func (c ImprovementConfig) Validate() error {
	if err := validateInterval(c.SamplingInterval); err != nil {
		return err
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("%w: improvement threshold must be in [0, 100]: %g", track.ErrInvalidRange, c.Threshold)
	}
	if len(c.Bands) > 0 {
		return waveband.ValidateBands(c.Bands)
	}
	return nil
}

// EditorConfig parameterises NewEditor. Zero fields keep the editor defaults.
type EditorConfig struct {
	MaxGradient    float64 `mapstructure:"max_gradient"`
	MinCurveRadius float64 `mapstructure:"min_curve_radius"`
	SnapTolerance  float64 `mapstructure:"snap_tolerance"`
	HistoryCap     int     `mapstructure:"history_cap"`
}

func validateInterval(interval float64) error {
	if interval < 0 || math.IsNaN(interval) || math.IsInf(interval, 0) {
		return fmt.Errorf("%w: sampling interval must be >= 0 (0 = infer): %g", track.ErrInvalidRange, interval)
	}
	return nil
}
