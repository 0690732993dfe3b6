// Package series computes descriptive statistics of track-irregularity
// value series: mean, sigma (population standard deviation), RMS, extrema
// and zero crossings. These are the quality metrics reported next to every
// restored waveform, plan line and waveband.
package series
