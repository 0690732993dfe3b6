package track

import (
	"errors"
	"math"
	"testing"
)

func TestNewSeriesLengthMismatch(t *testing.T) {
	if _, err := NewSeries([]float64{0, 1}, []float64{1}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestSamplingInterval(t *testing.T) {
	tests := []struct {
		name      string
		distances []float64
		want      float64
		wantErr   error
	}{
		{name: "uniform", distances: []float64{10, 10.25, 10.5, 10.75}, want: 0.25},
		{name: "jitter within tolerance", distances: []float64{0, 1, 2.0005, 3}, want: 1},
		{name: "single", distances: []float64{0}, wantErr: ErrInsufficientData},
		{name: "decreasing", distances: []float64{3, 2, 1}, wantErr: ErrInvalidRange},
		{name: "repeated", distances: []float64{0, 0, 1, 2}, wantErr: ErrInvalidRange},
		{name: "non-uniform", distances: []float64{0, 1, 3, 4}, wantErr: ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSeries(tt.distances, make([]float64, len(tt.distances)))
			if err != nil {
				t.Fatal(err)
			}
			got, err := s.SamplingInterval()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("interval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeriesValueAt(t *testing.T) {
	s := UniformSeries(0, 2, []float64{0, 10, -10})
	tests := []struct {
		d, want float64
	}{
		{d: -5, want: 0},
		{d: 0, want: 0},
		{d: 1, want: 5},
		{d: 2, want: 10},
		{d: 3, want: 0},
		{d: 4, want: -10},
		{d: 9, want: -10},
	}
	for _, tt := range tests {
		if got := s.ValueAt(tt.d); got != tt.want {
			t.Errorf("ValueAt(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
	if (Series{}).ValueAt(1) != 0 {
		t.Fatal("empty series should interpolate to 0")
	}
}

func TestSeriesCopies(t *testing.T) {
	s := UniformSeries(5, 0.5, []float64{1, 2, 3})
	v := s.Values()
	v[0] = 99
	if s[0].Value != 1 {
		t.Fatal("Values must return a copy")
	}
	w := s.WithValues([]float64{7, 8, 9})
	if w[2].Distance != 6 || w[2].Value != 9 || s[2].Value != 3 {
		t.Fatalf("WithValues = %+v, original %+v", w, s)
	}
	if s.Span() != 1 || s.Len() != 3 {
		t.Fatalf("span=%v len=%d", s.Span(), s.Len())
	}
}
