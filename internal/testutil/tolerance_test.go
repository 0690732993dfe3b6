package testutil

import "testing"

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff = %v, want 1", d)
	}
	if _, err := MaxAbsDiff([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestMaxAbs(t *testing.T) {
	if got := MaxAbs([]float64{-3, 2}); got != 3 {
		t.Fatalf("MaxAbs = %v, want 3", got)
	}
}
