package chart

import (
	"math"
	"testing"
)

const tol = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestNiceCeil(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		// 1800 = 1.8e3, mantissa 1.8 snaps to 2 -> 2000
		{1800, 2000},
		// 9000 = 9e3, mantissa 9 snaps to 10 -> 10000
		{9000, 10000},
		{180, 200},
		{100, 100},
		{101, 200},
		{1000, 1000},
		{1, 1},
		{5, 5},
		{6, 10},
		{10, 10},
		// 0.23 = 2.3e-1, mantissa 2.3 snaps to 5 -> 0.5
		{0.23, 0.5},
		{0.05, 0.05},
		// degenerate inputs fall back to 1
		{0, 1},
		{-5, 1},
		{math.NaN(), 1},
		{math.Inf(1), 1},
	}
	for _, c := range cases {
		got := NiceCeil(c.in)
		if !almostEqual(got, c.want) {
			t.Errorf("NiceCeil(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPickTicks(t *testing.T) {
	cases := []struct {
		min, max float64
		target   int
		want     []float64
	}{
		// span 9000 / 5 = 1800 -> step 2000, runs through NiceCeil(9000) = 10000
		{0, 9000, 5, []float64{0, 2000, 4000, 6000, 8000, 10000}},
		// span 100 / 5 = 20 -> step 20, top 100
		{0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
		// span 900 / 5 = 180 -> step 200, top NiceCeil(900) = 1000
		{0, 900, 5, []float64{0, 200, 400, 600, 800, 1000}},
		// span 73 / 5 = 14.6 -> step 20, top 100
		{0, 73, 5, []float64{0, 20, 40, 60, 80, 100}},
		// targetCount < 1 falls back to 5
		{0, 100, 0, []float64{0, 20, 40, 60, 80, 100}},
	}
	for _, c := range cases {
		got := PickTicks(c.min, c.max, c.target)
		if len(got) != len(c.want) {
			t.Errorf("PickTicks(%v, %v, %d) = %v, want %v", c.min, c.max, c.target, got, c.want)
			continue
		}
		for i := range got {
			if !almostEqual(got[i], c.want[i]) {
				t.Errorf("PickTicks(%v, %v, %d)[%d] = %v, want %v", c.min, c.max, c.target, i, got[i], c.want[i])
			}
		}
	}
}

func TestPickTicks_DegenerateSpan(t *testing.T) {
	for _, c := range []struct{ min, max float64 }{
		{5, 5},
		{0, 0},
		{3, 1},
		{0, math.NaN()},
		{0, math.Inf(1)},
	} {
		if got := PickTicks(c.min, c.max, 5); got != nil {
			t.Errorf("PickTicks(%v, %v, 5) = %v, want nil", c.min, c.max, got)
		}
	}
}

func TestMakeLogTicks(t *testing.T) {
	cases := []struct {
		max  float64
		want []float64
	}{
		// 1/2/5 per decade through 50 plus 0 and max is exactly seven entries
		{50, []float64{0, 1, 2, 5, 10, 20, 50}},
		// eleven raw candidates thin once: keep ends, drop every other interior
		{1000, []float64{0, 1, 5, 20, 100, 500, 1000}},
		// thirteen raw candidates need two thinning passes
		{2500, []float64{0, 1, 20, 500, 2500}},
		// no whole decade fits below max
		{0.5, []float64{0, 0.5}},
		{1, []float64{0, 1}},
		// degenerate max collapses to the origin tick
		{0, []float64{0}},
		{-10, []float64{0}},
		{math.NaN(), []float64{0}},
	}
	for _, c := range cases {
		got := MakeLogTicks(c.max)
		if len(got) != len(c.want) {
			t.Errorf("MakeLogTicks(%v) = %v, want %v", c.max, got, c.want)
			continue
		}
		for i := range got {
			if !almostEqual(got[i], c.want[i]) {
				t.Errorf("MakeLogTicks(%v)[%d] = %v, want %v", c.max, i, got[i], c.want[i])
			}
		}
	}
}

func TestMakeLogTicks_CountBound(t *testing.T) {
	// Across a wide range of maxima the list stays within the cap, ascending,
	// and anchored at 0 and max.
	for _, max := range []float64{3, 42, 777, 12345, 9.9e6, 1.23e9} {
		got := MakeLogTicks(max)
		if len(got) < 2 || len(got) > MaxLogTicks {
			t.Fatalf("MakeLogTicks(%v) has %d ticks, want 2..%d", max, len(got), MaxLogTicks)
		}
		if got[0] != 0 {
			t.Errorf("MakeLogTicks(%v) starts at %v, want 0", max, got[0])
		}
		if !almostEqual(got[len(got)-1], max) {
			t.Errorf("MakeLogTicks(%v) ends at %v, want %v", max, got[len(got)-1], max)
		}
		for i := 1; i < len(got); i++ {
			if got[i] <= got[i-1] {
				t.Errorf("MakeLogTicks(%v) not ascending at %d: %v", max, i, got)
			}
		}
	}
}

func TestLogT(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{-5, 0}, // negatives floor to zero before the transform
		{9, 1},
		{99, 2},
		{999, 3},
	}
	for _, c := range cases {
		if got := LogT(c.in); !almostEqual(got, c.want) {
			t.Errorf("LogT(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLogFraction(t *testing.T) {
	// LogT(99) / LogT(999) = 2/3
	if got := LogFraction(99, 999); !almostEqual(got, 2.0/3.0) {
		t.Errorf("LogFraction(99, 999) = %v, want 2/3", got)
	}
	if got := LogFraction(999, 999); !almostEqual(got, 1) {
		t.Errorf("LogFraction(999, 999) = %v, want 1", got)
	}
	if got := LogFraction(0, 999); got != 0 {
		t.Errorf("LogFraction(0, 999) = %v, want 0", got)
	}
	// degenerate maximum uses a unit denominator instead of dividing by zero
	if got := LogFraction(9, 0); !almostEqual(got, 1) {
		t.Errorf("LogFraction(9, 0) = %v, want 1", got)
	}
}
