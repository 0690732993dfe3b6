// Package frequency computes shape descriptors of a track irregularity
// spectrum. Frequencies are in cycles per metre; the DC bin is ignored
// throughout.
package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-trackgeo/dsp/spectrum"
)

// DefaultRolloff is the energy fraction used by [Calculate] for the
// rolloff wavelength.
const DefaultRolloff = 0.85

// Shape holds spectral shape descriptors.
type Shape struct {
	BinCount int
	Energy   float64 // sum of squared power

	PeakWavelength     float64 // m
	Centroid           float64 // power-weighted mean frequency, cycles/m
	CentroidWavelength float64 // 1/Centroid, m
	Spread             float64 // cycles/m
	Flatness           float64 // 0..1, 1 for white irregularity
	RolloffWavelength  float64 // m; DefaultRolloff of the energy lies at longer wavelengths
	Bandwidth          float64 // -3 dB width around the peak, cycles/m
}

// Calculate returns every descriptor of ps.
func Calculate(ps spectrum.PowerSpectrum) Shape {
	pts := nonDC(ps)
	s := Shape{BinCount: len(pts)}
	if len(pts) == 0 {
		return s
	}
	powers := powersOf(pts)
	s.Energy = floats.Dot(powers, powers)
	peak := floats.MaxIdx(powers)
	if powers[peak] > 0 {
		s.PeakWavelength = pts[peak].Wavelength
	}

	sum := floats.Sum(powers)
	s.Centroid = centroid(pts, sum)
	if s.Centroid > 0 {
		s.CentroidWavelength = 1 / s.Centroid
	}
	s.Spread = spread(pts, s.Centroid, sum)
	s.Flatness = flatness(powers)
	s.RolloffWavelength = rolloff(pts, DefaultRolloff, s.Energy)
	s.Bandwidth = bandwidth(pts, powers, peak)
	return s
}

// Centroid returns the power-weighted mean frequency in cycles/m.
func Centroid(ps spectrum.PowerSpectrum) float64 {
	pts := nonDC(ps)
	return centroid(pts, floats.Sum(powersOf(pts)))
}

// Flatness returns the geometric over the arithmetic mean of the power,
// in 0..1. Any empty bin makes the geometric mean, and so the result, 0.
func Flatness(ps spectrum.PowerSpectrum) float64 {
	return flatness(powersOf(nonDC(ps)))
}

// RolloffWavelength returns the wavelength above which fraction of the
// spectral energy lies.
func RolloffWavelength(ps spectrum.PowerSpectrum, fraction float64) float64 {
	pts := nonDC(ps)
	p := powersOf(pts)
	return rolloff(pts, fraction, floats.Dot(p, p))
}

func nonDC(ps spectrum.PowerSpectrum) []spectrum.Point {
	if len(ps.Points) < 2 {
		return nil
	}
	return ps.Points[1:]
}

func powersOf(pts []spectrum.Point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Power
	}
	return out
}

func centroid(pts []spectrum.Point, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	var weighted float64
	for _, p := range pts {
		weighted += p.Frequency * p.Power
	}
	return weighted / sum
}

func spread(pts []spectrum.Point, cent, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	var sq float64
	for _, p := range pts {
		d := p.Frequency - cent
		sq += d * d * p.Power
	}
	return math.Sqrt(sq / sum)
}

func flatness(powers []float64) float64 {
	if len(powers) == 0 {
		return 0
	}
	var sumLin, sumLog float64
	for _, v := range powers {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	n := float64(len(powers))
	return math.Exp(sumLog/n) / (sumLin / n)
}

func rolloff(pts []spectrum.Point, fraction, energy float64) float64 {
	if len(pts) == 0 || energy == 0 {
		return 0
	}
	threshold := fraction * energy
	var cum float64
	for _, p := range pts {
		cum += p.Power * p.Power
		if cum >= threshold {
			return p.Wavelength
		}
	}
	return pts[len(pts)-1].Wavelength
}

func bandwidth(pts []spectrum.Point, powers []float64, peak int) float64 {
	if len(pts) < 2 || powers[peak] == 0 {
		return 0
	}
	threshold := powers[peak] / math.Sqrt2

	lower := pts[0].Frequency
	for i := peak; i >= 1; i-- {
		if powers[i-1] <= threshold && powers[i] > threshold {
			lower = crossing(pts[i-1].Frequency, pts[i].Frequency, powers[i-1], powers[i], threshold)
			break
		}
	}
	upper := pts[len(pts)-1].Frequency
	for i := peak; i < len(pts)-1; i++ {
		if powers[i+1] <= threshold && powers[i] > threshold {
			upper = crossing(pts[i].Frequency, pts[i+1].Frequency, powers[i], powers[i+1], threshold)
			break
		}
	}
	return math.Max(0, upper-lower)
}

// crossing interpolates the frequency where the power passes threshold.
func crossing(fLow, fHigh, pLow, pHigh, threshold float64) float64 {
	d := pHigh - pLow
	if d == 0 {
		return (fLow + fHigh) / 2
	}
	return fLow + (threshold-pLow)/d*(fHigh-fLow)
}
