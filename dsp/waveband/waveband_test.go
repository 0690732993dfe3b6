package waveband

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-trackgeo/internal/testutil"
	"github.com/cwbudde/algo-trackgeo/track"
)

const interval = 0.25

func TestDecomposeEnergyConservation(t *testing.T) {
	values := testutil.DeterministicNoise(21, 4, 1000)
	res, err := Decompose(values, interval, CompleteBands(interval))
	if err != nil {
		t.Fatal(err)
	}

	var energy, percent float64
	for _, b := range res.Bands {
		energy += b.Energy
		percent += b.ContributionPercent
	}
	if math.Abs(energy-res.TotalEnergy) > 1e-9*res.TotalEnergy {
		t.Fatalf("band energy %v, total %v", energy, res.TotalEnergy)
	}
	testutil.RequireNear(t, "contribution sum", percent, 100, 1e-6)
}

func TestDecomposeRestoredBandsPartitionInput(t *testing.T) {
	values := testutil.DeterministicNoise(8, 4, 1000)
	res, err := Decompose(values, interval, CompleteBands(interval))
	if err != nil {
		t.Fatal(err)
	}

	sum := make([]float64, len(values))
	for _, b := range res.Bands {
		for i, v := range b.Restored {
			sum[i] += v
		}
	}
	testutil.RequireSliceNearlyEqual(t, sum, values, 1e-8)
}

func TestDecomposeSharedBoundaryBelongsToUpperBand(t *testing.T) {
	// 16 m is bin 16 of a 256-point transform at 1 m spacing.
	values := testutil.TrackSine(16, 5, 1, 256)
	bands := []Band{
		{Name: "below", MinWavelength: 4, MaxWavelength: 16},
		{Name: "above", MinWavelength: 16, MaxWavelength: 64},
	}
	res, err := Decompose(values, 1, bands)
	if err != nil {
		t.Fatal(err)
	}

	below, _ := res.Band("below")
	above, _ := res.Band("above")
	if below.Stats.Peak > 1e-9 || below.BinCount != 48 {
		t.Fatalf("below: peak %v bins %d, want no boundary content", below.Stats.Peak, below.BinCount)
	}
	testutil.RequireSliceNearlyEqual(t, above.Restored, values, 1e-9)
}

func TestDecomposeSingleComponent(t *testing.T) {
	values := testutil.TrackSine(16, 5, interval, 1024)
	res, err := Decompose(values, interval, DefaultBands())
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireNear(t, "dominant", res.DominantWavelength, 16, 1e-9)
	testutil.RequireNear(t, "effective", res.EffectiveWavelength, 16, 1e-6)

	medium, ok := res.Band("medium")
	if !ok {
		t.Fatal("medium band missing")
	}
	if medium.ContributionPercent < 99.9 {
		t.Fatalf("medium contribution = %v, want ~100", medium.ContributionPercent)
	}
	testutil.RequireNear(t, "medium rms", medium.Stats.RMS, 5/math.Sqrt2, 1e-6)

	short, _ := res.Band("short")
	if short.Stats.Peak > 1e-6 {
		t.Fatalf("short band peak = %v, want ~0", short.Stats.Peak)
	}
	if len(medium.Restored) != len(values) {
		t.Fatalf("restored length = %d, want %d", len(medium.Restored), len(values))
	}
}

func TestValidateBands(t *testing.T) {
	tests := []struct {
		name  string
		bands []Band
		ok    bool
	}{
		{name: "defaults", bands: DefaultBands(), ok: true},
		{name: "touching", bands: []Band{{"a", 1, 5}, {"b", 5, 10}}, ok: true},
		{name: "overlap", bands: []Band{{"a", 1, 6}, {"b", 5, 10}}},
		{name: "empty", bands: nil},
		{name: "duplicate name", bands: []Band{{"a", 1, 5}, {"a", 5, 10}}},
		{name: "inverted", bands: []Band{{"a", 5, 1}}},
		{name: "unnamed", bands: []Band{{"", 1, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBands(tt.bands)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, track.ErrInvalidRange) {
				t.Fatalf("err = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestDecomposeInsufficientData(t *testing.T) {
	if _, err := Decompose([]float64{1}, interval, DefaultBands()); !errors.Is(err, track.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestCompareFlagsWeakReduction(t *testing.T) {
	const n = 1024
	before := testutil.Sum(testutil.TrackSine(4, 5, interval, n), testutil.TrackSine(32, 5, interval, n))
	after := testutil.Sum(testutil.TrackSine(4, 1, interval, n), testutil.TrackSine(32, 4.5, interval, n))

	im, err := Compare(before, after, interval, DefaultBands(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if im.Threshold != DefaultImprovementThreshold {
		t.Fatalf("threshold = %v, want default", im.Threshold)
	}

	byName := map[string]BandImprovement{}
	for _, b := range im.Bands {
		byName[b.Name] = b
	}
	testutil.RequireNear(t, "short reduction", byName["short"].ReductionPercent, 80, 1e-6)
	testutil.RequireNear(t, "long reduction", byName["long"].ReductionPercent, 10, 1e-6)
	if byName["short"].NeedsCorrection {
		t.Fatal("short band reduced by 80% should not be flagged")
	}
	if !byName["long"].NeedsCorrection {
		t.Fatal("long band reduced by 10% should be flagged")
	}
	if byName["medium"].NeedsCorrection {
		t.Fatal("empty medium band should not be flagged")
	}

	flagged := im.NeedingCorrection()
	if len(flagged) != 1 || flagged[0] != "long" {
		t.Fatalf("NeedingCorrection = %v, want [long]", flagged)
	}
	if im.OverallReductionPercent <= 0 {
		t.Fatalf("overall reduction = %v, want > 0", im.OverallReductionPercent)
	}
}

func TestCompareLengthMismatch(t *testing.T) {
	_, err := Compare([]float64{1, 2}, []float64{1}, interval, DefaultBands(), 30)
	if !errors.Is(err, track.ErrInvalidRange) {
		t.Fatalf("err = %v, want %v", err, track.ErrInvalidRange)
	}
}
