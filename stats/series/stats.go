package series

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds descriptive statistics of a value series.
type Stats struct {
	Count         int
	Mean          float64
	Sigma         float64 // population standard deviation
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	ZeroCrossings int
}

// Calculate computes all statistics. NaN samples are ignored; an empty or
// all-NaN input yields the zero Stats.
func Calculate(values []float64) Stats {
	clean := finite(values)
	n := len(clean)
	if n == 0 {
		return Stats{}
	}

	mean, variance := stat.MeanVariance(clean, nil)
	if n > 1 {
		variance = variance * float64(n-1) / float64(n)
	} else {
		variance = 0
	}

	maxPos := floats.MaxIdx(clean)
	minPos := floats.MinIdx(clean)

	return Stats{
		Count:         n,
		Mean:          mean,
		Sigma:         math.Sqrt(variance),
		RMS:           math.Sqrt(floats.Dot(clean, clean) / float64(n)),
		Max:           clean[maxPos],
		MaxPos:        maxPos,
		Min:           clean[minPos],
		MinPos:        minPos,
		Peak:          math.Max(math.Abs(clean[maxPos]), math.Abs(clean[minPos])),
		ZeroCrossings: ZeroCrossings(clean),
	}
}

// RMS returns the root-mean-square of values.
func RMS(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(values, values) / float64(len(values)))
}

// ZeroCrossings counts sign changes between consecutive samples. Samples
// that are exactly zero do not start or end a crossing.
func ZeroCrossings(values []float64) int {
	count := 0
	for i := 1; i < len(values); i++ {
		if values[i-1]*values[i] < 0 {
			count++
		}
	}
	return count
}

// RatioAtLeast returns the fraction of values >= threshold.
func RatioAtLeast(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v >= threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func finite(values []float64) []float64 {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out := make([]float64, 0, len(values))
			for _, w := range values {
				if !math.IsNaN(w) && !math.IsInf(w, 0) {
					out = append(out, w)
				}
			}
			return out
		}
	}
	return values
}
