package chart

import (
	"math"
	"testing"
)

func TestSetPoints(t *testing.T) {
	type testcase struct {
		name    string
		points  []Point
		wantErr bool
	}
	for _, tc := range []testcase{
		{
			name:   "sorted",
			points: []Point{{0, 0}, {1, 5}, {2, 3}},
		},
		{
			name:   "duplicate x values",
			points: []Point{{0, 0}, {1, 5}, {1, 3}, {2, 1}},
		},
		{
			name:   "empty",
			points: nil,
		},
		{
			name:    "decreasing x",
			points:  []Point{{0, 0}, {2, 5}, {1, 3}},
			wantErr: true,
		},
		{
			name:    "NaN coordinate",
			points:  []Point{{0, 0}, {1, math.NaN()}},
			wantErr: true,
		},
		{
			name:    "infinite coordinate",
			points:  []Point{{0, 0}, {math.Inf(1), 1}},
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSeries("test")
			err := s.SetPoints(tc.points)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected SetPoints to fail, got nil error")
				}
				if s.Len() != 0 {
					t.Errorf("failed SetPoints should not mutate the series, found %d points", s.Len())
				}
				return
			}
			if err != nil {
				t.Errorf("expected SetPoints to succeed, got: %v", err)
			}
			if s.Len() != len(tc.points) {
				t.Errorf("expected %d points, got %d", len(tc.points), s.Len())
			}
		})
	}
}

func TestAppend(t *testing.T) {
	s := NewSeries("test")
	if err := s.Append(Point{1, 1}); err != nil {
		t.Errorf("appending to empty series should succeed, got: %v", err)
	}
	if err := s.Append(Point{1, 2}); err != nil {
		t.Errorf("appending at the tail x should succeed, got: %v", err)
	}
	if err := s.Append(Point{0.5, 2}); err == nil {
		t.Errorf("appending before the tail should fail")
	}
	if err := s.Append(Point{2, math.NaN()}); err == nil {
		t.Errorf("appending a NaN value should fail")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 points after rejected appends, got %d", s.Len())
	}
}

func TestSearch(t *testing.T) {
	s := NewSeries("test")
	if err := s.SetPoints([]Point{{0, 0}, {1, 5}, {2, 3}, {3, 9}, {4, 2}}); err != nil {
		t.Fatalf("failed setting points: %v", err)
	}
	type testcase struct {
		query     float64
		wantIndex int
		wantFound bool
	}
	for _, tc := range []testcase{
		{query: -1, wantIndex: 0},
		{query: 0, wantIndex: 0, wantFound: true},
		{query: 0.5, wantIndex: 1},
		{query: 2, wantIndex: 2, wantFound: true},
		{query: 2.4, wantIndex: 3},
		{query: 4, wantIndex: 4, wantFound: true},
		{query: 5, wantIndex: 5},
	} {
		res := s.Search(tc.query)
		if res.Index != tc.wantIndex {
			t.Errorf("query %v: expected index %d, got %d", tc.query, tc.wantIndex, res.Index)
		}
		if res.Found != tc.wantFound {
			t.Errorf("query %v: expected found %v, got %v", tc.query, tc.wantFound, res.Found)
		}
		// The insertion index must satisfy points[i-1].X < query <= points[i].X.
		pts := s.Points()
		if res.Index > 0 && pts[res.Index-1].X >= tc.query {
			t.Errorf("query %v: predecessor %v not below query", tc.query, pts[res.Index-1].X)
		}
		if res.Index < len(pts) && pts[res.Index].X < tc.query {
			t.Errorf("query %v: point at insertion index %v is below query", tc.query, pts[res.Index].X)
		}
	}
}

func TestAttach(t *testing.T) {
	s := NewSeries("test")
	if err := s.Attach(Annotation{X: 1, Title: "too early"}); err == nil {
		t.Errorf("attaching before points are set should fail")
	}
	if err := s.SetPoints([]Point{{0, 0}, {1, 5}, {2, 3}, {3, 9}, {4, 2}}); err != nil {
		t.Fatalf("failed setting points: %v", err)
	}
	type testcase struct {
		x       float64
		wantY   float64
		wantErr bool
	}
	for _, tc := range []testcase{
		{x: 0, wantY: 0},
		{x: 1, wantY: 5},
		{x: 2.4, wantY: 3},
		{x: 3.9, wantY: 9},
		{x: 10, wantY: 2},
		{x: -0.5, wantErr: true},
	} {
		err := s.Attach(Annotation{X: tc.x, Title: "note"})
		if tc.wantErr {
			if err == nil {
				t.Errorf("x=%v: expected attach to fail", tc.x)
			}
			continue
		}
		if err != nil {
			t.Errorf("x=%v: expected attach to succeed, got: %v", tc.x, err)
			continue
		}
		notes := s.Annotations()
		var got *Annotation
		for i := range notes {
			if notes[i].X == tc.x {
				got = &notes[i]
			}
		}
		if got == nil {
			t.Errorf("x=%v: annotation not recorded", tc.x)
		} else if got.Y != tc.wantY {
			t.Errorf("x=%v: expected resolved y %v, got %v", tc.x, tc.wantY, got.Y)
		}
	}
	notes := s.Annotations()
	for i := 1; i < len(notes); i++ {
		if notes[i].X < notes[i-1].X {
			t.Errorf("annotations out of order at %d: %v after %v", i, notes[i].X, notes[i-1].X)
		}
	}
}

func TestSetPointsReresolvesAnnotations(t *testing.T) {
	s := NewSeries("test")
	if err := s.SetPoints([]Point{{0, 1}, {2, 2}}); err != nil {
		t.Fatalf("failed setting points: %v", err)
	}
	if err := s.Attach(Annotation{X: 2, Title: "note"}); err != nil {
		t.Fatalf("failed attaching: %v", err)
	}
	if err := s.SetPoints([]Point{{0, 10}, {2, 20}}); err != nil {
		t.Fatalf("failed replacing points: %v", err)
	}
	if got := s.Annotations()[0].Y; got != 20 {
		t.Errorf("expected re-resolved y 20, got %v", got)
	}
}
