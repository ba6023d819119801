package chart

import "image/color"

// Point is one datum in a series. Within a series, points are ordered by
// non-decreasing X.
type Point struct {
	X float64
	Y float64
}

// Annotation marks a position of interest along a series. Y is not supplied
// by callers; it is resolved when the annotation is attached, from the
// nearest series point at or before X.
type Annotation struct {
	X           float64
	Title       string
	Description string
	Y           float64
}

// Style describes how a rendering collaborator should paint a series. The
// windowing core never interprets these colors.
type Style struct {
	Stroke    color.NRGBA
	Fill      color.NRGBA
	ErrorBand color.NRGBA
}
