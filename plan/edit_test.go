package plan

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-trackgeo/internal/testutil"
	"github.com/cwbudde/algo-trackgeo/track"
)

// flatLine returns n points spaced 1 m apart, all at value.
func flatLine(n int, value float64) track.PlanLine {
	d := make([]float64, n)
	v := make([]float64, n)
	for i := range d {
		d[i] = float64(i)
		v[i] = value
	}
	return track.NewPlanLine(d, v)
}

func TestStraightLine(t *testing.T) {
	line := flatLine(11, 0)
	line[2].Value = 2
	line[8].Value = 8
	line[5].Value = -30

	out, warnings, err := StraightLine(line, 2, 8, DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	for i := 2; i <= 8; i++ {
		if math.Abs(out[i].Value-float64(i)) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %d", i, out[i].Value, i)
		}
	}
	if out[9].Value != 0 || line[5].Value != -30 {
		t.Fatal("edit leaked outside its range or mutated the input")
	}
	if out[5].ID != line[5].ID {
		t.Fatal("edit must keep point identifiers")
	}
}

func TestStraightLineGradientWarning(t *testing.T) {
	line := flatLine(11, 0)
	line[10].Value = 100

	out, warnings, err := StraightLine(line, 0, 10, DefaultLimits())
	if err != nil {
		t.Fatalf("steep slope must warn, not fail: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Code != WarningGradient {
		t.Fatalf("warnings = %v, want one gradient warning", warnings)
	}
	testutil.RequireNear(t, "midpoint", out[5].Value, 50, 1e-12)
}

func TestStraightLineErrors(t *testing.T) {
	line := flatLine(11, 0)
	if _, _, err := StraightLine(line, 8, 2, DefaultLimits()); !errors.Is(err, track.ErrInvalidRange) {
		t.Fatalf("reversed: err = %v, want ErrInvalidRange", err)
	}
	if _, _, err := StraightLine(line, 2, 50, DefaultLimits()); !errors.Is(err, track.ErrPointNotFound) {
		t.Fatalf("outside: err = %v, want ErrPointNotFound", err)
	}
	if _, _, err := StraightLine(nil, 2, 5, DefaultLimits()); !errors.Is(err, track.ErrPointNotFound) {
		t.Fatalf("empty: err = %v, want ErrPointNotFound", err)
	}
}

func TestCircularCurveRejectsTightRadius(t *testing.T) {
	lim := DefaultLimits()
	lim.MinCurveRadius = 600
	_, err := CircularCurve(flatLine(11, 0), 0, 10, 100, DirectionUp, lim)
	if !errors.Is(err, track.ErrConstraintViolation) {
		t.Fatalf("err = %v, want ErrConstraintViolation", err)
	}
}

func TestCircularCurveShape(t *testing.T) {
	const radius = 2000.0
	line := flatLine(101, 0)

	up, err := CircularCurve(line, 0, 100, radius, DirectionUp, DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	down, err := CircularCurve(line, 0, 100, radius, DirectionDown, DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}

	// Sagitta of a 100 m chord: R(1-cos(50/R)) m, about 625 mm for R = 2000 m.
	want := radius * (1 - math.Cos(50/radius)) * 1000
	testutil.RequireNear(t, "crest", up[50].Value, want, 1e-9)
	testutil.RequireNear(t, "sag", down[50].Value, -want, 1e-9)
	testutil.RequireNear(t, "start", up[0].Value, 0, 1e-12)
	testutil.RequireNear(t, "end", up[100].Value, 0, 1e-12)
	if up[25].Value <= 0 || up[25].Value >= up[50].Value {
		t.Fatalf("crest not monotonic towards the midpoint: %v vs %v", up[25].Value, up[50].Value)
	}
}

func TestSmoothSection(t *testing.T) {
	line := flatLine(11, 0)
	line[5].Value = 9
	line[0].Value = 100

	out, err := SmoothSection(line, 3, 7, 3)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireNear(t, "peak", out[5].Value, 3, 1e-12)
	testutil.RequireNear(t, "shoulder", out[4].Value, 3, 1e-12)
	if out[0].Value != 100 {
		t.Fatal("points outside the section must be untouched")
	}

	if _, err := SmoothSection(line, 20, 30, 3); !errors.Is(err, track.ErrPointNotFound) {
		t.Fatalf("err = %v, want ErrPointNotFound", err)
	}
	if _, err := SmoothSection(line, 3, 7, 0); !errors.Is(err, track.ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestEditPoint(t *testing.T) {
	line := flatLine(5, 0)
	out, err := EditPoint(line, 2.3, 7, DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	if out[2].Value != 7 {
		t.Fatalf("out[2] = %v, want 7", out[2].Value)
	}
	if _, err := EditPoint(line, 42, 7, DefaultLimits()); !errors.Is(err, track.ErrPointNotFound) {
		t.Fatalf("err = %v, want ErrPointNotFound", err)
	}
	if _, err := EditPoint(line, 2, math.NaN(), DefaultLimits()); !errors.Is(err, track.ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("down"); err != nil || d != DirectionDown {
		t.Fatalf("ParseDirection(down) = %v, %v", d, err)
	}
	if _, err := ParseDirection("sideways"); !errors.Is(err, track.ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}
