package restore

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-trackgeo/dsp/spectrum"
	"github.com/cwbudde/algo-trackgeo/internal/testutil"
	"github.com/cwbudde/algo-trackgeo/stats/series"
	"github.com/cwbudde/algo-trackgeo/track"
)

func sineSeries() track.Series {
	return track.Series{{Distance: 0, Value: 0}, {Distance: 1, Value: 5}, {Distance: 2, Value: 0}, {Distance: 3, Value: -5}, {Distance: 4, Value: 0}}
}

func TestRestoreKeepsInBandWave(t *testing.T) {
	out, err := Restore(sineSeries(), 2, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 5 {
		t.Fatalf("len = %d, want 5", len(out))
	}
	if peak := testutil.MaxAbs(out.Values()); peak < 2.5 {
		t.Fatalf("peak = %v, want most of the 5 mm amplitude retained", peak)
	}
	if out[1].Distance != 1 || out[3].Distance != 3 {
		t.Fatalf("distances not preserved: %+v", out)
	}
	// The 4 m component keeps its sign.
	if out[1].Value <= 0 || out[3].Value >= 0 {
		t.Fatalf("restored wave lost its phase: %v", out.Values())
	}
}

func TestRestoreOutOfBandCollapses(t *testing.T) {
	out, err := Restore(sineSeries(), 10, 20)
	if err != nil {
		t.Fatal(err)
	}
	if peak := testutil.MaxAbs(out.Values()); peak > 1e-9 {
		t.Fatalf("peak = %v, want ~0", peak)
	}
}

func idempotenceInput(n int) []float64 {
	const interval = 0.25
	return testutil.Sum(
		testutil.TrackSine(4, 3, interval, n),
		testutil.TrackSine(16, 5, interval, n),
		testutil.DeterministicNoise(3, 1, n),
	)
}

func restoreTwice(t *testing.T, values []float64, opts ...Option) (once, twice []float64) {
	t.Helper()
	once, err := Values(values, 0.25, 3, 25, opts...)
	if err != nil {
		t.Fatal(err)
	}
	twice, err = Values(once, 0.25, 3, 25, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return once, twice
}

func TestRestoreIdempotent(t *testing.T) {
	once, twice := restoreTwice(t, idempotenceInput(256))
	testutil.RequireSliceNearlyEqual(t, twice, once, 1e-9)
}

func TestRestoreExactLengthIdempotent(t *testing.T) {
	for _, n := range []int{256, 300, 1000, 4001} {
		once, twice := restoreTwice(t, idempotenceInput(n), WithExactLength())
		if len(once) != n {
			t.Fatalf("n=%d: len = %d", n, len(once))
		}
		testutil.RequireSliceNearlyEqual(t, twice, once, 1e-8)
	}
}

// Zero-padding to a power of two and truncating back is only a projection
// when no padding happens. Otherwise the second pass drifts, bounded well
// below the signal amplitude.
func TestRestorePaddedRepeatDrift(t *testing.T) {
	for _, n := range []int{300, 1000, 4001} {
		once, twice := restoreTwice(t, idempotenceInput(n))
		diff, err := testutil.MaxAbsDiff(twice, once)
		if err != nil {
			t.Fatal(err)
		}
		if limit := 0.25 * testutil.MaxAbs(once); diff > limit {
			t.Fatalf("n=%d: repeat restoration drift %v exceeds %v", n, diff, limit)
		}
	}
}

func TestRestoreExactLengthMatchesPaddedAtPowerOfTwo(t *testing.T) {
	values := idempotenceInput(512)
	padded, err := Values(values, 0.25, 3, 25)
	if err != nil {
		t.Fatal(err)
	}
	exact, err := Values(values, 0.25, 3, 25, WithExactLength())
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, exact, padded, 1e-8)
}

func TestRestoreHalfOpenDropsUpperBoundary(t *testing.T) {
	// 16 m sits exactly on bin 16 of a 256-point transform at 1 m spacing.
	values := testutil.TrackSine(16, 5, 1, 256)

	closed, err := Values(values, 1, 4, 16)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, closed, values, 1e-9)

	open, err := Values(values, 1, 4, 16, WithHalfOpenBand())
	if err != nil {
		t.Fatal(err)
	}
	if peak := testutil.MaxAbs(open); peak > 1e-9 {
		t.Fatalf("half-open band kept its upper boundary: peak %v", peak)
	}
}

func TestRestoreSeparatesComponents(t *testing.T) {
	const interval = 0.25
	short := testutil.TrackSine(4, 3, interval, 512)
	long := testutil.TrackSine(32, 8, interval, 512)

	out, err := Values(testutil.Sum(short, long), interval, 20, 40)
	if err != nil {
		t.Fatal(err)
	}
	diff, err := testutil.MaxAbsDiff(out, long)
	if err != nil {
		t.Fatal(err)
	}
	if diff > 1e-6 {
		t.Fatalf("long component not isolated: max diff %v", diff)
	}
}

func TestRestoreUnboundedUpperKeepsMean(t *testing.T) {
	values := []float64{3, 3, 3, 3, 3, 3, 3, 3}
	out, err := Values(values, 1, 2, math.Inf(1))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, values, 1e-9)

	out, err = Values(values, 1, 2, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if mean := series.Calculate(out).Mean; math.Abs(mean) > 1e-9 {
		t.Fatalf("finite band kept DC: mean %v", mean)
	}
}

func TestRestoreMatchesSpectrumBand(t *testing.T) {
	const interval = 0.25
	values := testutil.DeterministicNoise(5, 4, 512)
	out, err := Values(values, interval, 5, 30)
	if err != nil {
		t.Fatal(err)
	}
	ps, err := spectrum.Transform(out, interval)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range ps.Points {
		if !spectrum.Contains(p.Wavelength, 5, 30) && p.Power > 1e-9 {
			t.Fatalf("out-of-band power %v at wavelength %v", p.Power, p.Wavelength)
		}
	}
}

func TestRestoreErrors(t *testing.T) {
	tests := []struct {
		name   string
		series track.Series
		lo, hi float64
		want   error
	}{
		{name: "min not positive", series: sineSeries(), lo: 0, hi: 5, want: track.ErrInvalidRange},
		{name: "min above max", series: sineSeries(), lo: 6, hi: 2, want: track.ErrInvalidRange},
		{name: "equal bounds", series: sineSeries(), lo: 3, hi: 3, want: track.ErrInvalidRange},
		{name: "single sample", series: track.Series{{Distance: 0, Value: 1}}, lo: 1, hi: 5, want: track.ErrInsufficientData},
		{name: "non uniform", series: track.Series{{Distance: 0, Value: 1}, {Distance: 1, Value: 2}, {Distance: 5, Value: 3}}, lo: 1, hi: 5, want: track.ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Restore(tt.series, tt.lo, tt.hi); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRestoreWithSamplingInterval(t *testing.T) {
	// Distances are ignored when the interval is given explicitly.
	s := track.Series{{Distance: 0, Value: 0}, {Distance: 0.1, Value: 5}, {Distance: 0.2, Value: 0}, {Distance: 0.3, Value: -5}, {Distance: 0.4, Value: 0}}
	out, err := Restore(s, 2, 6, WithSamplingInterval(1))
	if err != nil {
		t.Fatal(err)
	}
	if testutil.MaxAbs(out.Values()) < 2.5 {
		t.Fatalf("expected band kept with 1 m interval, got %v", out.Values())
	}
}
