package chart

// Window is the user-selected sub-range of the overview scale currently shown
// in the focus panel, expressed in overview-scale pixels.
type Window struct {
	Offset float64
	Length float64
}

// zoomAmplification scales a wheel gesture's deviation from 1.0 before it is
// applied to the window length. Raw wheel deltas are far too small to feel
// responsive on their own.
const zoomAmplification = 100

// Right returns the window's right edge in overview pixels.
func (w Window) Right() float64 { return w.Offset + w.Length }

// zoom applies a multiplicative factor to the window length and re-clamps.
func (w Window) zoom(factor, rangeMax float64) Window {
	factor = 1 + (factor-1)*zoomAmplification
	w.Length *= factor
	return w.clamp(rangeMax)
}

// pan shifts the window by delta overview pixels. Unlike zoom, pan preserves
// the window length, sliding the offset back inside the range instead.
func (w Window) pan(delta, rangeMax float64) Window {
	w.Offset += delta
	if w.Right() > rangeMax {
		w.Offset = rangeMax - w.Length
	}
	if w.Offset < 0 {
		w.Offset = 0
	}
	return w.clamp(rangeMax)
}

// clamp enforces the window invariants: at least one pixel long (a zero-width
// window would make inverting it through the overview scale meaningless), the
// left edge at or after zero, and the right edge at or before rangeMax.
func (w Window) clamp(rangeMax float64) Window {
	if w.Length < 1 {
		w.Length = 1
	}
	if w.Offset < 0 {
		w.Offset = 0
	}
	if w.Right() > rangeMax {
		w.Length = rangeMax - w.Offset
		if w.Length < 1 {
			w.Length = 1
			w.Offset = max(rangeMax-1, 0)
		}
	}
	return w
}
