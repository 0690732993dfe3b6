// Package restore reconstructs a band-limited "restored waveform" from a
// measured track-irregularity series.
//
// The series is transformed with the spectrum package, every bin whose
// wavelength falls outside [minWavelength, maxWavelength] is zeroed together
// with its Hermitian mirror N-i, and the result is inverse-transformed and
// trimmed back to the original length. Zeroing mirror pairs keeps the
// inverse real-valued.
//
// The DC bin (infinite wavelength) survives only when maxWavelength is
// +Inf, so a finite band always removes the series mean.
//
//	restored, err := restore.Restore(series, 6, 40)
package restore
