package chart

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"
)

// SearchResult reports the outcome of a lower-bound search. Index is the
// smallest index whose point has X >= the query, or the length of the
// searched data when no such point exists. Found reports whether the point at
// Index matches the query exactly.
type SearchResult struct {
	Found bool
	Index int
}

// Series is one named, ordered sequence of points plus its annotations.
type Series struct {
	name        string
	points      []Point
	annotations []Annotation
	style       Style
	styled      bool
}

func NewSeries(name string) *Series {
	return &Series{name: name}
}

// NewStyledSeries constructs a series with an explicit style override,
// exempting it from the store's unstyled-series cap.
func NewStyledSeries(name string, style Style) *Series {
	return &Series{name: name, style: style, styled: true}
}

func (s *Series) Name() string { return s.name }

func (s *Series) Style() Style { return s.style }

// Styled reports whether the series carries an explicit style override.
func (s *Series) Styled() bool { return s.styled }

func (s *Series) SetStyle(style Style) {
	s.style = style
	s.styled = true
}

// Points returns the ordered point data. The returned slice is shared with
// the series; callers must not modify it.
func (s *Series) Points() []Point { return s.points }

func (s *Series) Len() int { return len(s.points) }

// Annotations returns the attached annotations ordered by X.
func (s *Series) Annotations() []Annotation { return s.annotations }

// SetPoints replaces the series data. The points must be ordered by
// non-decreasing X and every coordinate must be finite; the series is
// unchanged when validation fails. Previously attached annotations are
// re-resolved against the new data, or dropped if no data remains.
func (s *Series) SetPoints(points []Point) error {
	for i, p := range points {
		if !finite(p) {
			return fmt.Errorf("series %q: point %d is not finite: (%v, %v)", s.name, i, p.X, p.Y)
		}
		if i > 0 && p.X < points[i-1].X {
			return fmt.Errorf("series %q: point %d breaks x ordering: %v < %v", s.name, i, p.X, points[i-1].X)
		}
	}
	s.points = points
	if len(s.points) == 0 {
		s.annotations = nil
		return nil
	}
	for i := range s.annotations {
		s.annotations[i].Y = s.resolveY(s.annotations[i].X)
	}
	return nil
}

// Append admits a single point at or after the current tail. Out-of-order and
// non-finite points are rejected without mutating the series.
func (s *Series) Append(p Point) error {
	if !finite(p) {
		return fmt.Errorf("series %q: appended point is not finite: (%v, %v)", s.name, p.X, p.Y)
	}
	if n := len(s.points); n > 0 && p.X < s.points[n-1].X {
		return fmt.Errorf("series %q: appended point at x=%v precedes tail x=%v", s.name, p.X, s.points[n-1].X)
	}
	s.points = append(s.points, p)
	return nil
}

// Search locates x within the series points.
func (s *Series) Search(x float64) SearchResult {
	return searchPoints(s.points, x)
}

// Attach resolves and records an annotation, keeping the annotation sequence
// ordered by X. The series must already have points, and the annotation must
// not precede the first point.
func (s *Series) Attach(a Annotation) error {
	if len(s.points) == 0 {
		return fmt.Errorf("series %q: cannot attach annotation %q before points are set", s.name, a.Title)
	}
	res := searchPoints(s.points, a.X)
	idx := res.Index
	if !res.Found {
		idx--
	}
	if idx < 0 {
		return fmt.Errorf("series %q: annotation %q at x=%v precedes all points", s.name, a.Title, a.X)
	}
	a.Y = s.points[idx].Y
	at, _ := slices.BinarySearchFunc(s.annotations, a, func(a, b Annotation) int {
		return cmp.Compare(a.X, b.X)
	})
	s.annotations = slices.Insert(s.annotations, at, a)
	return nil
}

// resolveY returns the y value of the nearest point at or before x, clamped
// to the series ends.
func (s *Series) resolveY(x float64) float64 {
	res := searchPoints(s.points, x)
	idx := res.Index
	if !res.Found && idx > 0 {
		idx--
	}
	if idx >= len(s.points) {
		idx = len(s.points) - 1
	}
	return s.points[idx].Y
}

// searchPoints performs a lower-bound binary search by X: the returned index
// is the first point with X >= x.
func searchPoints(points []Point, x float64) SearchResult {
	idx := sort.Search(len(points), func(i int) bool {
		return points[i].X >= x
	})
	return SearchResult{
		Found: idx < len(points) && points[idx].X == x,
		Index: idx,
	}
}

// searchPointsAfter returns the index of the first point with X strictly
// greater than x, or the length of points when no such point exists.
func searchPointsAfter(points []Point, x float64) int {
	return sort.Search(len(points), func(i int) bool {
		return points[i].X > x
	})
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
