package chart

import (
	"math"
	"testing"
)

func TestScaleRoundTrip(t *testing.T) {
	l := NewLinearScale(10, 20, 0, 500)
	type testcase struct {
		domain float64
		pixel  float64
	}
	for _, tc := range []testcase{
		{domain: 10, pixel: 0},
		{domain: 15, pixel: 250},
		{domain: 20, pixel: 500},
		{domain: 12.5, pixel: 125},
		// Values outside the domain extrapolate linearly.
		{domain: 25, pixel: 750},
		{domain: 5, pixel: -250},
	} {
		if got := l.Scale(tc.domain); got != tc.pixel {
			t.Errorf("Scale(%v): expected %v, got %v", tc.domain, tc.pixel, got)
		}
		if got := l.Invert(tc.pixel); got != tc.domain {
			t.Errorf("Invert(%v): expected %v, got %v", tc.pixel, tc.domain, got)
		}
	}
}

func TestScaleSetDomain(t *testing.T) {
	l := NewLinearScale(0, 100, 0, 800)
	l.SetDomain(50, 100)
	if got := l.Scale(50); got != 0 {
		t.Errorf("expected new domain minimum at pixel 0, got %v", got)
	}
	if got := l.Scale(75); got != 400 {
		t.Errorf("expected domain midpoint at pixel 400, got %v", got)
	}
	lo, hi := l.Range()
	if lo != 0 || hi != 800 {
		t.Errorf("SetDomain should not disturb the range, got [%v, %v]", lo, hi)
	}
}

func TestScaleDegenerate(t *testing.T) {
	// A collapsed domain must not yield NaN or infinity from either mapping.
	l := NewLinearScale(5, 5, 0, 100)
	if got := l.Scale(5); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("collapsed domain produced non-finite pixel %v", got)
	}
	if got := l.Invert(50); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("collapsed domain produced non-finite inversion %v", got)
	}
	// Same for a collapsed range.
	l = NewLinearScale(0, 10, 100, 100)
	if got := l.Invert(100); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("collapsed range produced non-finite inversion %v", got)
	}
}

func TestScaleTicks(t *testing.T) {
	l := NewLinearScale(0, 10, 0, 100)
	ticks := l.Ticks(5)
	want := []float64{0, 2, 4, 6, 8, 10}
	if len(ticks) != len(want) {
		t.Fatalf("expected %d ticks, got %d", len(want), len(ticks))
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Errorf("tick %d: expected %v, got %v", i, want[i], ticks[i])
		}
	}
	if got := l.Ticks(0); len(got) != 2 {
		t.Errorf("expected a degenerate tick count to clamp to the endpoints, got %d ticks", len(got))
	}
}
