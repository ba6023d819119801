package chart

// LinearScale maps a numeric domain onto a pixel range. The overview scale of
// a chart spans the full data extent, while the detail scale spans only the
// current window; both share this implementation.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

func NewLinearScale(domainLo, domainHi, rangeLo, rangeHi float64) *LinearScale {
	return &LinearScale{d0: domainLo, d1: domainHi, r0: rangeLo, r1: rangeHi}
}

func (l *LinearScale) Domain() (lo, hi float64) { return l.d0, l.d1 }

func (l *LinearScale) Range() (lo, hi float64) { return l.r0, l.r1 }

// SetDomain remaps the scale onto a new domain, keeping its range.
func (l *LinearScale) SetDomain(lo, hi float64) {
	l.d0, l.d1 = lo, hi
}

// SetRange remaps the scale onto a new pixel range, keeping its domain.
func (l *LinearScale) SetRange(lo, hi float64) {
	l.r0, l.r1 = lo, hi
}

// Scale maps a domain value to a pixel position.
func (l *LinearScale) Scale(v float64) float64 {
	return l.r0 + (v-l.d0)/l.domainSpan()*(l.r1-l.r0)
}

// Invert maps a pixel position back into the domain.
func (l *LinearScale) Invert(px float64) float64 {
	return l.d0 + (px-l.r0)/l.rangeSpan()*(l.d1-l.d0)
}

// A collapsed domain or range arises from normal UI transients (a resize
// mid-drag, a single-point series), so it behaves as one unit wide rather
// than dividing by zero.
func (l *LinearScale) domainSpan() float64 {
	if s := l.d1 - l.d0; s != 0 {
		return s
	}
	return 1
}

func (l *LinearScale) rangeSpan() float64 {
	if s := l.r1 - l.r0; s != 0 {
		return s
	}
	return 1
}

// Ticks returns count+1 evenly spaced domain values covering the domain,
// endpoints included.
func (l *LinearScale) Ticks(count int) []float64 {
	if count < 1 {
		count = 1
	}
	out := make([]float64, 0, count+1)
	step := (l.d1 - l.d0) / float64(count)
	for i := 0; i <= count; i++ {
		out = append(out, l.d0+step*float64(i))
	}
	return out
}
