package rank

import (
	"math"
	"testing"
)

func TestSigmoidTableAtZero(t *testing.T) {
	tbl := NewSigmoidTable(1.0)
	got := tbl.Lookup(0)
	if math.Abs(got-1.0) > 1e-3 {
		t.Errorf("Lookup(0) = %v, want ~1.0 (sigmoid midpoint)", got)
	}
}

func TestSigmoidTableSymmetry(t *testing.T) {
	tbl := NewSigmoidTable(1.0)
	x := 0.5
	pos := tbl.Lookup(x)
	neg := tbl.Lookup(-x)
	if math.Abs(pos+neg-2) > 1e-2 {
		t.Errorf("Lookup(%v) = %v, Lookup(%v) = %v; |lambda| should be point-symmetric about (0, 1), so the two sum to 2", x, pos, -x, neg)
	}
}

func TestSigmoidTableMonotonicDecreasing(t *testing.T) {
	tbl := NewSigmoidTable(1.0)
	prev := tbl.Lookup(tbl.MinScore())
	for _, x := range []float64{-2, -1, 0, 1, 2} {
		v := tbl.Lookup(x)
		if v > prev+1e-9 {
			t.Errorf("|lambda| should be non-increasing as x grows: Lookup at step gave %v after %v", v, prev)
		}
		prev = v
	}
}

func TestSigmoidTableSaturatesOutsideRange(t *testing.T) {
	tbl := NewSigmoidTable(1.0)
	belowMin := tbl.Lookup(tbl.MinScore() - 1000)
	aboveMax := tbl.Lookup(tbl.MaxScore() + 1000)
	if belowMin != tbl.Lookup(tbl.MinScore()) {
		t.Error("Lookup below minScore should saturate to the first table entry")
	}
	if aboveMax != tbl.Lookup(tbl.MaxScore()) {
		t.Error("Lookup above maxScore should saturate to the last table entry")
	}
}

func TestSigmoidTableSigma(t *testing.T) {
	tbl := NewSigmoidTable(2.5)
	if tbl.Sigma() != 2.5 {
		t.Errorf("Sigma() = %v, want 2.5", tbl.Sigma())
	}
}
