package chart

import (
	"math"
	"testing"
)

func TestWindowZoom(t *testing.T) {
	const rangeMax = 800.0
	type testcase struct {
		name   string
		start  Window
		factor float64
		want   Window
	}
	for _, tc := range []testcase{
		{
			name:   "zoom in shrinks the window",
			start:  Window{Offset: 100, Length: 200},
			factor: 0.999, // amplifies to 0.9
			want:   Window{Offset: 100, Length: 180},
		},
		{
			name:   "zoom out grows the window",
			start:  Window{Offset: 100, Length: 200},
			factor: 1.001, // amplifies to 1.1
			want:   Window{Offset: 100, Length: 220},
		},
		{
			name:   "zoom out pins the right edge at the range maximum",
			start:  Window{Offset: 700, Length: 90},
			factor: 1.01,
			want:   Window{Offset: 700, Length: 100},
		},
		{
			name:   "extreme zoom in floors the length at one pixel",
			start:  Window{Offset: 100, Length: 200},
			factor: 0.99, // amplifies to 0, which would collapse the window
			want:   Window{Offset: 100, Length: 1},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.start.zoom(tc.factor, rangeMax)
			// Amplifying the factor's deviation from 1.0 multiplies its
			// float64 representation error as well, so lengths are compared
			// within a tolerance rather than exactly.
			if got.Offset != tc.want.Offset || math.Abs(got.Length-tc.want.Length) > 1e-9 {
				t.Errorf("expected window %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestWindowZoomClampProperty(t *testing.T) {
	const rangeMax = 640.0
	windows := []Window{
		{Offset: 0, Length: rangeMax},
		{Offset: 0, Length: 1},
		{Offset: 320, Length: 100},
		{Offset: 639, Length: 1},
	}
	factors := []float64{0.9, 0.99, 0.999, 1, 1.001, 1.01, 1.1, 2}
	for _, w := range windows {
		for _, f := range factors {
			got := w.zoom(f, rangeMax)
			if got.Length < 1 {
				t.Errorf("window %+v factor %v: length %v below one pixel", w, f, got.Length)
			}
			if got.Offset < 0 {
				t.Errorf("window %+v factor %v: offset %v negative", w, f, got.Offset)
			}
			if got.Right() > rangeMax {
				t.Errorf("window %+v factor %v: right edge %v past range maximum", w, f, got.Right())
			}
		}
	}
}

func TestWindowRepeatedZoomOutPins(t *testing.T) {
	const rangeMax = 800.0
	w := Window{Offset: 200, Length: 100}
	for i := 0; i < 50; i++ {
		w = w.zoom(1.05, rangeMax)
	}
	if w.Right() != rangeMax {
		t.Errorf("expected right edge pinned at %v, got %v", rangeMax, w.Right())
	}
	// Further zoom-out attempts must leave the right edge where it is.
	pinned := w.zoom(1.05, rangeMax)
	if pinned.Right() != rangeMax {
		t.Errorf("expected right edge to stay at %v, got %v", rangeMax, pinned.Right())
	}
}

func TestWindowPan(t *testing.T) {
	const rangeMax = 800.0
	w := Window{Offset: 100, Length: 200}
	w = w.pan(50, rangeMax)
	if w.Offset != 150 || w.Length != 200 {
		t.Errorf("expected pan to shift the offset only, got %+v", w)
	}
	w = w.pan(-1000, rangeMax)
	if w.Offset != 0 {
		t.Errorf("expected pan to clamp at the left edge, got offset %v", w.Offset)
	}
	w = w.pan(1000, rangeMax)
	if w.Right() > rangeMax {
		t.Errorf("expected pan to clamp at the right edge, got right %v", w.Right())
	}
	if w.Length < 1 {
		t.Errorf("pan must preserve the one-pixel floor, got length %v", w.Length)
	}
}
