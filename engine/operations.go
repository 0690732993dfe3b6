package engine

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-trackgeo/dsp/core"
	"github.com/cwbudde/algo-trackgeo/dsp/restore"
	"github.com/cwbudde/algo-trackgeo/dsp/waveband"
	"github.com/cwbudde/algo-trackgeo/movement"
	"github.com/cwbudde/algo-trackgeo/optimize"
	"github.com/cwbudde/algo-trackgeo/plan"
	"github.com/cwbudde/algo-trackgeo/stats/frequency"
	"github.com/cwbudde/algo-trackgeo/stats/series"
	"github.com/cwbudde/algo-trackgeo/track"
)

const pointSize = 16

// RestoreResult is the output of RestoreWaveform.
type RestoreResult struct {
	Restored         track.Series
	Statistics       series.Stats
	SamplingInterval float64
}

// SizeBytes implements cache.Sizer.
func (r RestoreResult) SizeBytes() int64 {
	return int64(len(r.Restored))*pointSize + 128
}

// RestoreWaveform band-limits s to the configured wavelength window.
func (e *Engine) RestoreWaveform(s track.Series, cfg RestoreConfig) (RestoreResult, error) {
	if err := cfg.Validate(); err != nil {
		return RestoreResult{}, err
	}
	interval, err := resolveInterval(s, cfg.SamplingInterval)
	if err != nil {
		return RestoreResult{}, err
	}

	const op = "restore"
	key := fingerprint(op, params{
		"min_wavelength":    cfg.MinWavelength,
		"max_wavelength":    cfg.MaxWavelength,
		"sampling_interval": interval,
		"exact_length":      cfg.ExactLength,
	}, s)
	if v, ok := e.lookup(op, key); ok {
		return v.(RestoreResult), nil
	}

	opts := []restore.Option{restore.WithSamplingInterval(interval)}
	if cfg.ExactLength {
		opts = append(opts, restore.WithExactLength())
	}
	restored, err := restore.Restore(s, cfg.MinWavelength, cfg.MaxWavelength, opts...)
	if err != nil {
		return RestoreResult{}, err
	}
	res := RestoreResult{
		Restored:         restored,
		Statistics:       series.Calculate(restored.Values()),
		SamplingInterval: interval,
	}
	e.store(op, key, res)
	return res, nil
}

// WavebandResult is the output of AnalyzeWavebands.
type WavebandResult struct {
	Wavebands           []waveband.BandResult
	DominantWavelength  float64
	EffectiveWavelength float64
	TotalEnergy         float64
	Shape               frequency.Shape
	Statistics          series.Stats
	SamplingInterval    float64
}

// AnalyzeWavebands decomposes s over the configured bands.
func (e *Engine) AnalyzeWavebands(s track.Series, cfg WavebandConfig) (WavebandResult, error) {
	if err := cfg.Validate(); err != nil {
		return WavebandResult{}, err
	}
	interval, err := resolveInterval(s, cfg.SamplingInterval)
	if err != nil {
		return WavebandResult{}, err
	}
	bands := cfg.bands()

	const op = "wavebands"
	key := fingerprint(op, params{
		"bands":             bands,
		"effective_min":     cfg.EffectiveMin,
		"effective_max":     cfg.EffectiveMax,
		"sampling_interval": interval,
	}, s)
	if v, ok := e.lookup(op, key); ok {
		return v.(WavebandResult), nil
	}

	values := s.Values()
	var opts []waveband.Option
	if cfg.EffectiveMin > 0 || cfg.EffectiveMax > 0 {
		opts = append(opts, waveband.WithEffectiveRange(cfg.EffectiveMin, cfg.EffectiveMax))
	}
	d, err := waveband.Decompose(values, interval, bands, opts...)
	if err != nil {
		return WavebandResult{}, err
	}
	res := WavebandResult{
		Wavebands:           d.Bands,
		DominantWavelength:  d.DominantWavelength,
		EffectiveWavelength: d.EffectiveWavelength,
		TotalEnergy:         d.TotalEnergy,
		Shape:               d.Shape,
		Statistics:          series.Calculate(values),
		SamplingInterval:    interval,
	}
	e.store(op, key, res)
	return res, nil
}

// Validation reports how a plan line relates to the editing and movement
// limits. Valid is true when there are no warnings.
type Validation struct {
	Valid       bool
	MaxGradient float64
	MaxMovement float64
	Warnings    []string
}

// PlanLineResult is the output of GenerateInitialPlanLine.
type PlanLineResult struct {
	PlanLine   track.PlanLine
	Method     plan.Method
	Statistics series.Stats
	Validation Validation
}

// GenerateInitialPlanLine derives the baseline plan line from restored.
func (e *Engine) GenerateInitialPlanLine(restored track.Series, cfg PlanLineConfig) (PlanLineResult, error) {
	if err := cfg.Validate(); err != nil {
		return PlanLineResult{}, err
	}
	method, _ := plan.ParseMethod(cfg.Method)
	window := cfg.WindowSize
	if window == 0 {
		window = plan.DefaultWindowSize
	}

	const op = "plan"
	key := fingerprint(op, params{
		"method":        string(method),
		"window_size":   window,
		"max_gradient":  cfg.MaxGradient,
		"maximum_limit": cfg.MaximumLimit,
	}, restored)
	if v, ok := e.lookup(op, key); ok {
		return v.(PlanLineResult), nil
	}

	line, err := plan.Generate(restored, method, window)
	if err != nil {
		return PlanLineResult{}, err
	}
	res := PlanLineResult{
		PlanLine:   line,
		Method:     method,
		Statistics: series.Calculate(line.Values()),
		Validation: validatePlanLine(line, restored, cfg),
	}
	for _, w := range res.Validation.Warnings {
		e.logger.Warn("plan line validation", zap.String("warning", w))
	}
	e.store(op, key, res)
	return res, nil
}

func validatePlanLine(line track.PlanLine, restored track.Series, cfg PlanLineConfig) Validation {
	var v Validation
	for i := 1; i < len(line); i++ {
		dd := line[i].Distance - line[i-1].Distance
		if dd <= 0 {
			continue
		}
		v.MaxGradient = math.Max(v.MaxGradient, math.Abs(line[i].Value-line[i-1].Value)/dd)
	}
	for _, p := range line {
		v.MaxMovement = math.Max(v.MaxMovement, math.Abs(p.Value-restored.ValueAt(p.Distance)))
	}
	if cfg.MaxGradient > 0 && v.MaxGradient > cfg.MaxGradient {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("gradient %.3g mm/m exceeds maximum %.3g mm/m", v.MaxGradient, cfg.MaxGradient))
	}
	if cfg.MaximumLimit > 0 && v.MaxMovement > cfg.MaximumLimit {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("movement %.3g mm exceeds maximum limit %.3g mm", v.MaxMovement, cfg.MaximumLimit))
	}
	v.Valid = len(v.Warnings) == 0
	return v
}

// OptimizeImprovement summarises what the optimizer achieved.
type OptimizeImprovement struct {
	InitialUpwardRatio float64
	FinalUpwardRatio   float64
	RatioGain          float64
	// Bands compares the restored waveform with the geometry left after
	// the optimized movements. It is empty for series too short or too
	// irregular to decompose.
	Bands waveband.Improvement
}

// OptimizeResult is the output of OptimizePlanLine.
type OptimizeResult struct {
	PlanLine    track.PlanLine
	Iterations  int
	Converged   bool
	Statistics  optimize.Statistics
	Improvement OptimizeImprovement
}

// OptimizePlanLine biases line towards upward correction of restored.
// Non-convergence is reported through Converged, never as an error.
func (e *Engine) OptimizePlanLine(restored track.Series, line track.PlanLine, cfg OptimizeConfig) (OptimizeResult, error) {
	if err := cfg.Validate(); err != nil {
		return OptimizeResult{}, err
	}

	const op = "optimize"
	key := fingerprint(op, params{
		"target_upward_ratio":   cfg.TargetUpwardRatio,
		"max_upward":            cfg.MaxUpward,
		"max_downward":          cfg.MaxDownward,
		"iteration_limit":       cfg.IterationLimit,
		"tolerance":             cfg.Tolerance,
		"stable_patience":       cfg.StablePatience,
		"step_factor":           cfg.StepFactor,
		"margin":                cfg.Margin,
		"smoothing_window":      cfg.SmoothingWindow,
		"fixed_points":          cfg.FixedPoints,
		"sampling_interval":     cfg.SamplingInterval,
		"bands":                 cfg.Bands,
		"improvement_threshold": cfg.ImprovementThreshold,
	}, restored, planPoints(line))
	if v, ok := e.lookup(op, key); ok {
		return v.(OptimizeResult), nil
	}

	oc := cfg.optimizer()
	oc.OnIteration = func(i int, ratio float64) {
		e.logger.Debug("optimizer iteration", zap.Int("iteration", i), zap.Float64("upward_ratio", ratio))
	}
	r, err := optimize.Optimize(restored, line, oc)
	if err != nil {
		return OptimizeResult{}, err
	}

	res := OptimizeResult{
		PlanLine:   r.PlanLine,
		Iterations: r.Iterations,
		Converged:  r.Converged,
		Statistics: r.Statistics,
		Improvement: OptimizeImprovement{
			InitialUpwardRatio: r.Statistics.InitialUpwardRatio,
			FinalUpwardRatio:   r.Statistics.FinalUpwardRatio,
			RatioGain:          r.Statistics.FinalUpwardRatio - r.Statistics.InitialUpwardRatio,
		},
	}
	if bands, ok := e.correctionImprovement(restored, r.PlanLine, cfg); ok {
		res.Improvement.Bands = bands
	}
	e.logger.Info("plan line optimized",
		zap.Int("iterations", r.Iterations),
		zap.Bool("converged", r.Converged),
		zap.Float64("upward_ratio", r.Statistics.FinalUpwardRatio))
	e.store(op, key, res)
	return res, nil
}

// correctionImprovement decomposes the restored waveform and the geometry
// it would have after moving each position towards the plan within the
// optimizer bounds.
func (e *Engine) correctionImprovement(restored track.Series, line track.PlanLine, cfg OptimizeConfig) (waveband.Improvement, bool) {
	if len(restored) < 2 {
		return waveband.Improvement{}, false
	}
	interval, err := resolveInterval(restored, cfg.SamplingInterval)
	if err != nil {
		e.logger.Debug("skipping band improvement", zap.Error(err))
		return waveband.Improvement{}, false
	}
	bands := cfg.Bands
	if len(bands) == 0 {
		bands = waveband.CompleteBands(interval)
	}

	before := restored.Values()
	after := make([]float64, len(restored))
	for i, p := range restored {
		m := core.Clamp(line.ValueAt(p.Distance)-p.Value, -cfg.MaxDownward, cfg.MaxUpward)
		after[i] = p.Value + m
	}
	im, err := waveband.Compare(before, after, interval, bands, cfg.ImprovementThreshold)
	if err != nil {
		e.logger.Debug("skipping band improvement", zap.Error(err))
		return waveband.Improvement{}, false
	}
	return im, true
}

// MovementOutput is the output of CalculateMovement.
type MovementOutput struct {
	Movements []track.MovementResult
	Summary   movement.Summary
}

// SizeBytes implements cache.Sizer.
func (m MovementOutput) SizeBytes() int64 {
	const resultSize = 64
	return int64(len(m.Movements))*resultSize + 256
}

// CalculateMovement computes the constrained per-position movements.
func (e *Engine) CalculateMovement(line track.PlanLine, restored track.Series, cfg MovementConfig) (MovementOutput, error) {
	if err := cfg.Validate(); err != nil {
		return MovementOutput{}, err
	}

	policy := cfg.policy()
	const op = "movement"
	key := fingerprint(op, params{
		"fixed_points":     cfg.FixedPoints,
		"standard_limit":   cfg.StandardLimit,
		"maximum_limit":    cfg.MaximumLimit,
		"upward_priority":  cfg.UpwardPriority,
		"high_threshold":   policy.HighThreshold,
		"medium_threshold": policy.MediumThreshold,
	}, planPoints(line), restored)
	if v, ok := e.lookup(op, key); ok {
		return v.(MovementOutput), nil
	}

	results, err := movement.Calculate(line, restored, cfg.constraint(), movement.WithPriorityPolicy(policy))
	if err != nil {
		return MovementOutput{}, err
	}
	out := MovementOutput{Movements: results, Summary: movement.Summarize(results)}
	if out.Summary.Clamped > 0 {
		e.logger.Warn("movements clamped to limits",
			zap.Int("clamped", out.Summary.Clamped),
			zap.Int("positions", out.Summary.Count))
	}
	e.store(op, key, out)
	return out, nil
}

// CompareImprovement reports the per-band power reduction from before to
// after. Both series must share their sampling positions.
func (e *Engine) CompareImprovement(before, after track.Series, cfg ImprovementConfig) (waveband.Improvement, error) {
	if err := cfg.Validate(); err != nil {
		return waveband.Improvement{}, err
	}
	if len(before) != len(after) {
		return waveband.Improvement{}, fmt.Errorf("%w: before has %d samples, after has %d",
			track.ErrInvalidRange, len(before), len(after))
	}
	interval, err := resolveInterval(before, cfg.SamplingInterval)
	if err != nil {
		return waveband.Improvement{}, err
	}
	bands := cfg.Bands
	if len(bands) == 0 {
		bands = waveband.DefaultBands()
	}

	im, err := waveband.Compare(before.Values(), after.Values(), interval, bands, cfg.Threshold)
	if err != nil {
		return waveband.Improvement{}, err
	}
	if names := im.NeedingCorrection(); len(names) > 0 {
		e.logger.Warn("bands need further correction",
			zap.Strings("bands", names),
			zap.Float64("threshold", im.Threshold))
	}
	return im, nil
}

func resolveInterval(s track.Series, configured float64) (float64, error) {
	if configured > 0 {
		return configured, nil
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples to infer the sampling interval, got %d",
			track.ErrInsufficientData, len(s))
	}
	return s.SamplingInterval()
}
