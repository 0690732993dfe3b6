// Package engine is the operation boundary of the track-geometry engine.
//
// Each operation takes plain series plus an explicit config struct,
// validates it, and runs the numeric packages in order:
//
//	RestoreWaveform → GenerateInitialPlanLine → OptimizePlanLine → CalculateMovement
//
// AnalyzeWavebands and CompareImprovement are diagnostic side paths.
//
// When an Engine carries a [cache.Cache], results are memoized under a
// fingerprint of the operation name, the config fields in sorted key order
// and the input samples. Cached results are shared between callers and
// must be treated as read-only.
package engine
