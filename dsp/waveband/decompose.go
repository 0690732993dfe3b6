package waveband

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-trackgeo/dsp/restore"
	"github.com/cwbudde/algo-trackgeo/dsp/spectrum"
	"github.com/cwbudde/algo-trackgeo/stats/frequency"
	"github.com/cwbudde/algo-trackgeo/stats/series"
	"github.com/cwbudde/algo-trackgeo/track"
)

const (
	defaultEffectiveMin = 1.0
	defaultEffectiveMax = 200.0
)

// BandResult is the decomposition of one band. Restored and Energy both use
// the half-open band [min, max), so the Restored series of bands that tile
// the spectrum add up to the input.
type BandResult struct {
	Band                Band
	Restored            []float64
	Power               float64
	Energy              float64
	ContributionPercent float64
	BinCount            int
	Stats               series.Stats
}

// Result is the decomposition of a series over a band set.
type Result struct {
	Bands               []BandResult
	DominantWavelength  float64
	EffectiveWavelength float64
	TotalEnergy         float64
	Shape               frequency.Shape
	Spectrum            spectrum.PowerSpectrum
}

// Band returns the result for the named band.
func (r Result) Band(name string) (BandResult, bool) {
	for _, b := range r.Bands {
		if b.Band.Name == name {
			return b, true
		}
	}
	return BandResult{}, false
}

// Option configures a decomposition.
type Option func(*config)

type config struct {
	effectiveMin float64
	effectiveMax float64
}

// WithEffectiveRange sets the wavelength window used for the power-weighted
// effective wavelength. Defaults to 1-200 m.
func WithEffectiveRange(minWavelength, maxWavelength float64) Option {
	return func(cfg *config) {
		if minWavelength > 0 && maxWavelength > minWavelength {
			cfg.effectiveMin = minWavelength
			cfg.effectiveMax = maxWavelength
		}
	}
}

// Decompose band-limits values for every band and aggregates per-band energy.
func Decompose(values []float64, interval float64, bands []Band, opts ...Option) (Result, error) {
	if err := ValidateBands(bands); err != nil {
		return Result{}, err
	}
	if len(values) < 2 {
		return Result{}, fmt.Errorf("%w: decomposition needs at least 2 samples, got %d", track.ErrInsufficientData, len(values))
	}

	cfg := config{effectiveMin: defaultEffectiveMin, effectiveMax: defaultEffectiveMax}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	ps, err := spectrum.Transform(values, interval)
	if err != nil {
		return Result{}, err
	}
	total := ps.TotalEnergy()

	res := Result{
		Bands:               make([]BandResult, 0, len(bands)),
		DominantWavelength:  ps.DominantWavelength(),
		EffectiveWavelength: ps.EffectiveWavelength(cfg.effectiveMin, cfg.effectiveMax),
		TotalEnergy:         total,
		Shape:               frequency.Calculate(ps),
		Spectrum:            ps,
	}

	for _, b := range bands {
		restored, err := restore.Values(values, interval, b.MinWavelength, b.MaxWavelength, restore.WithHalfOpenBand())
		if err != nil {
			return Result{}, fmt.Errorf("waveband %q: %w", b.Name, err)
		}

		powers := bandPowers(ps, b)
		energy := floats.Dot(powers, powers)
		br := BandResult{
			Band:     b,
			Restored: restored,
			Energy:   energy,
			BinCount: len(powers),
			Stats:    series.Calculate(restored),
		}
		if len(powers) > 0 {
			br.Power = math.Sqrt(energy / float64(len(powers)))
		}
		if total > 0 {
			br.ContributionPercent = energy / total * 100
		}
		res.Bands = append(res.Bands, br)
	}
	return res, nil
}

// bandPowers returns the power of every non-DC point in the half-open band.
func bandPowers(ps spectrum.PowerSpectrum, b Band) []float64 {
	var out []float64
	for i := 1; i < len(ps.Points); i++ {
		p := ps.Points[i]
		if spectrum.ContainsHalfOpen(p.Wavelength, b.MinWavelength, b.MaxWavelength) {
			out = append(out, p.Power)
		}
	}
	return out
}
