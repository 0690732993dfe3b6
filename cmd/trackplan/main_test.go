package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSeries(t *testing.T, n int, interval, wavelength, amplitude float64) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("# distance value\n")
	for i := range n {
		d := float64(i) * interval
		fmt.Fprintf(&b, "%g %g\n", d, amplitude*math.Sin(2*math.Pi*d/wavelength))
	}
	path := filepath.Join(t.TempDir(), "series.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRestoreCommand(t *testing.T) {
	path := writeSeries(t, 512, 0.25, 20, 5)
	out, err := run(t, "restore", "--min-wavelength", "10", "--max-wavelength", "30", path)
	if err != nil {
		t.Fatalf("restore: %v\n%s", err, out)
	}
	if !strings.Contains(out, "window 10-30 m, interval 0.25 m") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "sigma") {
		t.Fatalf("missing statistics:\n%s", out)
	}
}

func TestRestoreCommandExactLength(t *testing.T) {
	path := writeSeries(t, 300, 0.25, 20, 5)
	out, err := run(t, "restore", "--exact-length", path)
	if err != nil {
		t.Fatalf("restore: %v\n%s", err, out)
	}
	if !strings.Contains(out, "interval 0.25 m, exact length") {
		t.Fatalf("exact length not applied:\n%s", out)
	}
}

func TestWavebandsCommand(t *testing.T) {
	path := writeSeries(t, 1024, 0.25, 32, 10)
	out, err := run(t, "wavebands", path)
	if err != nil {
		t.Fatalf("wavebands: %v\n%s", err, out)
	}
	for _, want := range []string{"dominant wavelength 32 m", "short", "medium", "long", "very-long"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlanCommand(t *testing.T) {
	path := writeSeries(t, 1024, 0.25, 16, 8)
	out, err := run(t, "plan", "--window", "64", "--print-movements", path)
	if err != nil {
		t.Fatalf("plan: %v\n%s", err, out)
	}
	for _, want := range []string{"plan line: moving-average", "optimizer:", "movements: high", "priority"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlanCommandParamsFile(t *testing.T) {
	path := writeSeries(t, 512, 0.25, 16, 8)
	params := filepath.Join(t.TempDir(), "site.yaml")
	yaml := `
plan_line:
  method: zero-crossing
movement:
  maximum_limit: 40
  standard_limit: 20
  fixed_points:
    - start_distance: 10
      end_distance: 20
      max_movement: 2
`
	if err := os.WriteFile(params, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "plan", "--params", params, path)
	if err != nil {
		t.Fatalf("plan: %v\n%s", err, out)
	}
	if !strings.Contains(out, "plan line: zero-crossing") {
		t.Fatalf("parameter file not applied:\n%s", out)
	}
}

func TestLoadParamsFlagOverridesFile(t *testing.T) {
	params := filepath.Join(t.TempDir(), "p.json")
	if err := os.WriteFile(params, []byte(`{"restore": {"min_wavelength": 3, "max_wavelength": 70}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	path := writeSeries(t, 256, 0.25, 20, 5)
	out, err := run(t, "restore", "--params", params, "--max-wavelength", "50", path)
	if err != nil {
		t.Fatalf("restore: %v\n%s", err, out)
	}
	if !strings.Contains(out, "window 3-50 m") {
		t.Fatalf("want file min and flag max:\n%s", out)
	}
}

func TestRestoreCommandRejectsBadWindow(t *testing.T) {
	path := writeSeries(t, 64, 0.25, 20, 5)
	if _, err := run(t, "restore", "--min-wavelength", "30", "--max-wavelength", "10", path); err == nil {
		t.Fatal("expected an error for an inverted window")
	}
}

func TestReadSeries(t *testing.T) {
	s, err := readSeries(strings.NewReader("# header\n0 1.5\n0.25,2\n\n0.5\t-1 # trailing\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 3 || s[1].Value != 2 || s[2].Distance != 0.5 {
		t.Fatalf("series = %+v", s)
	}

	for _, bad := range []string{"0\n", "a 1\n", "0 b\n"} {
		if _, err := readSeries(strings.NewReader(bad)); err == nil {
			t.Fatalf("readSeries(%q) should fail", bad)
		}
	}
}
