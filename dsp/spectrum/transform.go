package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-trackgeo/dsp/core"
	"github.com/cwbudde/algo-trackgeo/track"
)

// Forward zero-pads series to the next power of two and returns all N
// complex bins.
func Forward(series []float64) ([]complex128, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: empty series", track.ErrInsufficientData)
	}

	n := core.NextPowerOfTwo(len(series))
	in := make([]complex128, n)
	for i, v := range series {
		in[i] = complex(v, 0)
	}
	if n == 1 {
		return in, nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}
	return out, nil
}

// Inverse transforms N complex bins back to the time domain and returns the
// real part of the first length samples. The bins are not modified.
func Inverse(bins []complex128, length int) ([]float64, error) {
	n := len(bins)
	if !core.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("spectrum: inverse size must be a power of two: %d", n)
	}
	if length < 0 || length > n {
		return nil, fmt.Errorf("%w: cannot trim %d bins to %d samples", track.ErrInvalidRange, n, length)
	}

	timeData := make([]complex128, n)
	if n == 1 {
		copy(timeData, bins)
	} else {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
		}
		if err := plan.Inverse(timeData, bins); err != nil {
			return nil, fmt.Errorf("spectrum: inverse FFT failed: %w", err)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = real(timeData[i])
	}
	return out, nil
}

// ForwardExact returns the len(series) complex bins of series without
// padding. Lengths that are not a power of two go through a Bluestein
// transform.
func ForwardExact(series []float64) ([]complex128, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: empty series", track.ErrInsufficientData)
	}
	return fft.FFTReal(series), nil
}

// InverseExact is the inverse of [ForwardExact]. It returns the real part of
// all len(bins) samples.
func InverseExact(bins []complex128) ([]float64, error) {
	if len(bins) == 0 {
		return nil, fmt.Errorf("%w: no bins to invert", track.ErrInsufficientData)
	}
	timeData := fft.IFFT(bins)
	out := make([]float64, len(timeData))
	for i, v := range timeData {
		out[i] = real(v)
	}
	return out, nil
}

// BinWavelength returns the wavelength in metres of bin i for an N-point
// transform. Bin 0 has infinite wavelength. Bins above N/2 are mapped onto
// their Hermitian mirror.
func BinWavelength(i, n int, samplingInterval float64) float64 {
	if i > n/2 {
		i = n - i
	}
	if i <= 0 {
		return math.Inf(1)
	}
	return float64(n) * samplingInterval / float64(i)
}

// Transform computes the wavelength-indexed power spectrum of series.
func Transform(series []float64, samplingInterval float64) (PowerSpectrum, error) {
	if !(samplingInterval > 0) || math.IsInf(samplingInterval, 0) {
		return PowerSpectrum{}, fmt.Errorf("%w: sampling interval must be > 0: %g", track.ErrInvalidRange, samplingInterval)
	}

	bins, err := Forward(series)
	if err != nil {
		return PowerSpectrum{}, err
	}

	n := len(bins)
	half := bins[:n/2]
	mag := Magnitude(half)
	phase := Phase(half)

	points := make([]Point, len(half))
	scale := 1 / float64(n)
	for i := range half {
		freq := float64(i) / (float64(n) * samplingInterval)
		wl := math.Inf(1)
		if i > 0 {
			wl = 1 / freq
		}
		p := mag[i] * scale
		ph := phase[i]
		if p == 0 {
			ph = 0
		}
		points[i] = Point{Frequency: freq, Wavelength: wl, Power: p, Phase: ph}
	}

	return PowerSpectrum{
		Points:           points,
		PaddedLength:     n,
		OriginalLength:   len(series),
		SamplingInterval: samplingInterval,
	}, nil
}
