package chart

// Bounds are the global extents across every series in a store.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// ComputeBounds derives the global extents in a single pass over every
// series' points. The x extent is taken from each series' first and last
// points, relying on the sorted-by-x invariant. When exactly one populated
// series is present and none of its values are negative, MinY clamps to zero
// so the chart keeps its baseline. ok is false when no series has points.
func ComputeBounds(series []*Series) (Bounds, bool) {
	var b Bounds
	ok := false
	populated := 0
	for _, s := range series {
		pts := s.points
		if len(pts) == 0 {
			continue
		}
		populated++
		if !ok {
			b.MinX = pts[0].X
			b.MaxX = pts[len(pts)-1].X
			b.MinY = pts[0].Y
			b.MaxY = pts[0].Y
			ok = true
		} else {
			b.MinX = min(b.MinX, pts[0].X)
			b.MaxX = max(b.MaxX, pts[len(pts)-1].X)
		}
		for _, p := range pts {
			b.MinY = min(b.MinY, p.Y)
			b.MaxY = max(b.MaxY, p.Y)
		}
	}
	if populated == 1 && b.MinY >= 0 {
		b.MinY = 0
	}
	return b, ok
}
