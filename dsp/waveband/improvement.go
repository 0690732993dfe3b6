package waveband

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-trackgeo/track"
)

// DefaultImprovementThreshold is the power reduction, in percent, below
// which a band is flagged as needing further correction.
const DefaultImprovementThreshold = 30.0

// negligiblePower is treated as "no content" when comparing bands.
const negligiblePower = 1e-9

// BandImprovement compares one band before and after correction.
type BandImprovement struct {
	Name             string
	BeforePower      float64
	AfterPower       float64
	ReductionPercent float64
	NeedsCorrection  bool
}

// Improvement is the band-by-band comparison of two series.
type Improvement struct {
	Bands                   []BandImprovement
	OverallReductionPercent float64
	Threshold               float64
}

// NeedingCorrection returns the names of flagged bands.
func (im Improvement) NeedingCorrection() []string {
	var out []string
	for _, b := range im.Bands {
		if b.NeedsCorrection {
			out = append(out, b.Name)
		}
	}
	return out
}

// Compare decomposes before and after over bands and reports the power
// reduction of each band. A threshold <= 0 selects
// [DefaultImprovementThreshold]. Bands with negligible power before correction have
// nothing to reduce and are never flagged.
func Compare(before, after []float64, interval float64, bands []Band, threshold float64) (Improvement, error) {
	if len(before) != len(after) {
		return Improvement{}, fmt.Errorf("%w: before/after length mismatch: %d != %d", track.ErrInvalidRange, len(before), len(after))
	}
	if threshold <= 0 {
		threshold = DefaultImprovementThreshold
	}

	b, err := Decompose(before, interval, bands)
	if err != nil {
		return Improvement{}, fmt.Errorf("before: %w", err)
	}
	a, err := Decompose(after, interval, bands)
	if err != nil {
		return Improvement{}, fmt.Errorf("after: %w", err)
	}

	im := Improvement{Bands: make([]BandImprovement, len(bands)), Threshold: threshold}
	for i := range bands {
		bi := BandImprovement{
			Name:        bands[i].Name,
			BeforePower: b.Bands[i].Power,
			AfterPower:  a.Bands[i].Power,
		}
		if bi.BeforePower > negligiblePower {
			bi.ReductionPercent = reduction(bi.BeforePower, bi.AfterPower)
			bi.NeedsCorrection = bi.ReductionPercent < threshold
		}
		im.Bands[i] = bi
	}
	if b.TotalEnergy > 0 {
		im.OverallReductionPercent = reduction(math.Sqrt(b.TotalEnergy), math.Sqrt(a.TotalEnergy))
	}
	return im, nil
}

func reduction(before, after float64) float64 {
	return (before - after) / before * 100
}
