package track

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewPlanLineAssignsIDs(t *testing.T) {
	p := NewPlanLine([]float64{0, 1, 2}, []float64{1, 2, 3})
	seen := map[uuid.UUID]bool{}
	for _, pt := range p {
		if pt.ID == uuid.Nil || seen[pt.ID] {
			t.Fatalf("point ID %v is nil or duplicated", pt.ID)
		}
		seen[pt.ID] = true
	}
}

func TestPlanLineCloneAndEqual(t *testing.T) {
	p := PlanLineFromSeries(UniformSeries(0, 1, []float64{1, 2, 3}))
	c := p.Clone()
	if !p.Equal(c) {
		t.Fatal("clone should equal the original")
	}
	c[1].Value = 42
	if p[1].Value != 2 || p.Equal(c) {
		t.Fatal("clone must not alias the original")
	}
	if PlanLine(nil).Clone() != nil {
		t.Fatal("nil clone should stay nil")
	}

	fresh := NewPlanLine(p.Distances(), p.Values())
	if p.Equal(fresh) {
		t.Fatal("lines with different IDs should not be equal")
	}
}

func TestPlanLineNearest(t *testing.T) {
	p := NewPlanLine([]float64{0, 1, 2, 4}, make([]float64, 4))
	tests := []struct {
		d    float64
		want int
	}{
		{d: -1, want: 0},
		{d: 0.4, want: 0},
		{d: 0.5, want: 0},
		{d: 0.6, want: 1},
		{d: 3, want: 2},
		{d: 3.1, want: 3},
		{d: 10, want: 3},
	}
	for _, tt := range tests {
		if got := p.Nearest(tt.d); got != tt.want {
			t.Errorf("Nearest(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
	if (PlanLine{}).Nearest(1) != -1 {
		t.Fatal("empty line should return -1")
	}
}

func TestPlanLineValueAt(t *testing.T) {
	p := NewPlanLine([]float64{0, 10}, []float64{0, 20})
	if got := p.ValueAt(2.5); got != 5 {
		t.Fatalf("ValueAt(2.5) = %v, want 5", got)
	}
	if p.ValueAt(-1) != 0 || p.ValueAt(11) != 20 {
		t.Fatal("ends should be held")
	}
}
