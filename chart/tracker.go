package chart

// NoSelection is the tracker's selected index while the pointer is outside
// the interactive region.
const NoSelection = -1

// Tracker resolves pointer positions in the focus panel to the nearest point
// of the active slice. It only ever reads the slice and detail scale that the
// chart publishes to it after each window change; recomputing its own slice
// is how hover labels drift out of sync with the plot.
type Tracker struct {
	slice    []Point
	detail   *LinearScale
	selected int
}

func newTracker() Tracker {
	return Tracker{selected: NoSelection}
}

// publish hands the tracker a freshly computed slice and detail scale. A
// selection that no longer fits the new slice resets; otherwise it stands
// until the next pointer event refines it.
func (t *Tracker) publish(slice []Point, detail *LinearScale) {
	t.slice = slice
	t.detail = detail
	if t.selected >= len(slice) {
		t.selected = NoSelection
	}
}

// Move resolves a raw focus-panel pixel position: the pixel inverts through
// the detail scale into a data x, and a lower-bound search over the slice
// yields the insertion index, clamped to the slice ends.
func (t *Tracker) Move(px float64) int {
	if len(t.slice) == 0 || t.detail == nil {
		t.selected = NoSelection
		return t.selected
	}
	x := t.detail.Invert(px)
	res := searchPoints(t.slice, x)
	idx := res.Index
	if idx >= len(t.slice) {
		idx = len(t.slice) - 1
	}
	t.selected = idx
	return idx
}

// Leave resets the selection to NoSelection.
func (t *Tracker) Leave() {
	t.selected = NoSelection
}

// Selected returns the current index into the active slice, or NoSelection.
func (t *Tracker) Selected() int { return t.selected }
