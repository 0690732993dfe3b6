package spectrum

import "math"

// Point is one spectral bin. Frequency is in cycles per metre and
// Wavelength in metres.
type Point struct {
	Frequency  float64
	Wavelength float64
	Power      float64
	Phase      float64
}

// PowerSpectrum is the one-sided spectrum of a zero-padded series.
// It holds PaddedLength/2 points; OriginalLength records the pre-padding
// sample count.
type PowerSpectrum struct {
	Points           []Point
	PaddedLength     int
	OriginalLength   int
	SamplingInterval float64
}

// Contains reports whether wavelength lies in the closed band
// [minWavelength, maxWavelength]. The infinite DC wavelength only belongs to
// a band whose upper bound is +Inf.
func Contains(wavelength, minWavelength, maxWavelength float64) bool {
	if math.IsInf(wavelength, 1) {
		return math.IsInf(maxWavelength, 1)
	}
	return wavelength >= minWavelength && wavelength <= maxWavelength
}

// ContainsHalfOpen is like [Contains] but excludes the upper bound unless it
// is +Inf, so that bands sharing a boundary partition the bins.
func ContainsHalfOpen(wavelength, minWavelength, maxWavelength float64) bool {
	if math.IsInf(wavelength, 1) {
		return math.IsInf(maxWavelength, 1)
	}
	if math.IsInf(maxWavelength, 1) {
		return wavelength >= minWavelength
	}
	return wavelength >= minWavelength && wavelength < maxWavelength
}

// InBand returns the points whose wavelength lies in the closed band.
func (ps PowerSpectrum) InBand(minWavelength, maxWavelength float64) []Point {
	var out []Point
	for _, p := range ps.Points {
		if Contains(p.Wavelength, minWavelength, maxWavelength) {
			out = append(out, p)
		}
	}
	return out
}

// TotalEnergy returns the sum of squared power over all non-DC points.
func (ps PowerSpectrum) TotalEnergy() float64 {
	var e float64
	for i := 1; i < len(ps.Points); i++ {
		e += ps.Points[i].Power * ps.Points[i].Power
	}
	return e
}

// DominantWavelength returns the wavelength of the strongest non-DC bin, or
// 0 when the spectrum has no non-DC energy.
func (ps PowerSpectrum) DominantWavelength() float64 {
	best := 0.0
	wl := 0.0
	for i := 1; i < len(ps.Points); i++ {
		if ps.Points[i].Power > best {
			best = ps.Points[i].Power
			wl = ps.Points[i].Wavelength
		}
	}
	return wl
}

// EffectiveWavelength returns the power-weighted mean wavelength over bins
// whose wavelength lies in [minWavelength, maxWavelength], or 0 when those
// bins carry no power.
func (ps PowerSpectrum) EffectiveWavelength(minWavelength, maxWavelength float64) float64 {
	var num, den float64
	for i := 1; i < len(ps.Points); i++ {
		p := ps.Points[i]
		if !Contains(p.Wavelength, minWavelength, maxWavelength) {
			continue
		}
		num += p.Wavelength * p.Power
		den += p.Power
	}
	if den == 0 {
		return 0
	}
	return num / den
}
