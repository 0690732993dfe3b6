package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-trackgeo/track"
)

// TrackSine generates a sinusoidal irregularity of the given wavelength (m)
// and amplitude (mm) sampled every interval metres.
func TrackSine(wavelength, amplitude, interval float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * interval / wavelength
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Sum adds equally long signals sample by sample.
func Sum(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i := range out {
			out[i] += s[i]
		}
	}
	return out
}

// Series wraps values into a track series starting at 0 m.
func Series(interval float64, values []float64) track.Series {
	return track.UniformSeries(0, interval, values)
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
