package testutil

import (
	"math"
	"testing"
)

func TestTrackSine(t *testing.T) {
	s := TrackSine(4, 5, 0.25, 32)
	if len(s) != 32 {
		t.Fatalf("len = %d, want 32", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// Quarter wavelength (1 m = 4 samples) is the crest.
	if math.Abs(s[4]-5) > 1e-12 {
		t.Fatalf("s[4] = %v, want 5", s[4])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestSumAndSeries(t *testing.T) {
	s := Sum([]float64{1, 2}, []float64{3, 4})
	if s[0] != 4 || s[1] != 6 {
		t.Fatalf("Sum = %v", s)
	}
	series := Series(0.5, s)
	if series[1].Distance != 0.5 || series[1].Value != 6 {
		t.Fatalf("Series[1] = %+v", series[1])
	}
}
