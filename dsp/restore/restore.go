package restore

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-trackgeo/dsp/spectrum"
	"github.com/cwbudde/algo-trackgeo/track"
)

// Option configures a restoration.
type Option func(*config)

type config struct {
	samplingInterval float64
	exactLength      bool
	halfOpen         bool
}

// WithSamplingInterval fixes the sampling interval in metres instead of
// inferring it from the series distances.
func WithSamplingInterval(interval float64) Option {
	return func(cfg *config) {
		if interval > 0 && !math.IsInf(interval, 0) {
			cfg.samplingInterval = interval
		}
	}
}

// WithExactLength transforms at the series length instead of zero-padding
// to the next power of two. The band mask is then an exact projection, so
// restoring a restored series returns it unchanged at any length.
func WithExactLength() Option {
	return func(cfg *config) {
		cfg.exactLength = true
	}
}

// WithHalfOpenBand keeps [minWavelength, maxWavelength) instead of the
// closed band. Bands sharing a boundary then split the bins between them.
func WithHalfOpenBand() Option {
	return func(cfg *config) {
		cfg.halfOpen = true
	}
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// ValidateBand checks a wavelength window. maxWavelength may be +Inf.
func ValidateBand(minWavelength, maxWavelength float64) error {
	if math.IsNaN(minWavelength) || math.IsNaN(maxWavelength) {
		return fmt.Errorf("%w: wavelength bounds must not be NaN", track.ErrInvalidRange)
	}
	if minWavelength <= 0 {
		return fmt.Errorf("%w: min wavelength must be > 0: %g", track.ErrInvalidRange, minWavelength)
	}
	if minWavelength >= maxWavelength {
		return fmt.Errorf("%w: min wavelength %g must be below max wavelength %g", track.ErrInvalidRange, minWavelength, maxWavelength)
	}
	return nil
}

// Restore returns the band-limited reconstruction of series on the same
// distances.
func Restore(series track.Series, minWavelength, maxWavelength float64, opts ...Option) (track.Series, error) {
	if err := ValidateBand(minWavelength, maxWavelength); err != nil {
		return nil, err
	}
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: restoration needs at least 2 samples, got %d", track.ErrInsufficientData, len(series))
	}

	cfg := newConfig(opts)
	interval := cfg.samplingInterval
	if interval == 0 {
		var err error
		interval, err = series.SamplingInterval()
		if err != nil {
			return nil, err
		}
	}

	values, err := Values(series.Values(), interval, minWavelength, maxWavelength, opts...)
	if err != nil {
		return nil, err
	}
	return series.WithValues(values), nil
}

// Values band-limits raw samples taken every interval metres.
//
// By default the samples are zero-padded to the next power of two and the
// result is truncated back. For lengths that are not a power of two the
// truncation leaks out-of-band energy, so a second pass still changes the
// result; use [WithExactLength] where repeat restoration must be stable.
func Values(values []float64, interval, minWavelength, maxWavelength float64, opts ...Option) ([]float64, error) {
	if err := ValidateBand(minWavelength, maxWavelength); err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: restoration needs at least 2 samples, got %d", track.ErrInsufficientData, len(values))
	}
	if !(interval > 0) || math.IsInf(interval, 0) {
		return nil, fmt.Errorf("%w: sampling interval must be > 0: %g", track.ErrInvalidRange, interval)
	}

	cfg := newConfig(opts)
	contains := spectrum.Contains
	if cfg.halfOpen {
		contains = spectrum.ContainsHalfOpen
	}

	if cfg.exactLength {
		bins, err := spectrum.ForwardExact(values)
		if err != nil {
			return nil, err
		}
		suppressBins(bins, interval, minWavelength, maxWavelength, contains)
		return spectrum.InverseExact(bins)
	}

	bins, err := spectrum.Forward(values)
	if err != nil {
		return nil, err
	}
	suppressBins(bins, interval, minWavelength, maxWavelength, contains)
	return spectrum.Inverse(bins, len(values))
}

// suppressBins zeroes every bin outside the band together with its mirror.
func suppressBins(bins []complex128, interval, minWavelength, maxWavelength float64, contains func(wl, lo, hi float64) bool) {
	n := len(bins)
	for i := 0; i <= n/2; i++ {
		wl := spectrum.BinWavelength(i, n, interval)
		if contains(wl, minWavelength, maxWavelength) {
			continue
		}
		bins[i] = 0
		if mirror := (n - i) % n; mirror != i {
			bins[mirror] = 0
		}
	}
}
