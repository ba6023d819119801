package chart

// Chart owns all windowing state for one two-panel visualization: the series
// store, the global bounds, the overview and detail scales, the selection
// window, and the cached active slice. A Chart is confined to a single
// logical thread; every mutation happens synchronously inside the caller's
// event handlers, and a redraw triggered after a mutation always observes
// that mutation's result.
type Chart struct {
	cfg   Config
	store Store

	bounds    Bounds
	hasBounds bool
	overview  *LinearScale
	detail    *LinearScale

	win        Window
	slice      []Point
	sliceStart int
	domainLo   float64
	domainHi   float64

	selecting        bool
	selStart, selEnd float64

	tracker Tracker
}

func New(cfg Config) *Chart {
	cfg = cfg.withDefaults()
	width := float64(cfg.Width)
	return &Chart{
		cfg:      cfg,
		overview: NewLinearScale(0, 1, 0, width),
		detail:   NewLinearScale(0, 1, 0, width),
		win:      Window{Offset: 0, Length: width},
		tracker:  newTracker(),
	}
}

func (c *Chart) Config() Config { return c.cfg }

// AddSeries registers a series with the chart. The first series added becomes
// the primary series driving the shared window. Bounds and scales recompute
// on every series-set change rather than freezing after the first render.
func (c *Chart) AddSeries(s *Series) error {
	if err := c.store.Add(s); err != nil {
		return err
	}
	c.RecomputeBounds()
	return nil
}

// RemoveSeries drops every series with the given name.
func (c *Chart) RemoveSeries(name string) {
	c.store.Remove(name)
	c.RecomputeBounds()
}

// Series returns every series in insertion order.
func (c *Chart) Series() []*Series { return c.store.List() }

// Primary returns the series driving shared window computations, or nil.
func (c *Chart) Primary() *Series { return c.store.Primary() }

// Bounds returns the current global extents. ok is false until some series
// has points.
func (c *Chart) Bounds() (Bounds, bool) { return c.bounds, c.hasBounds }

// RecomputeBounds rescans every series and rebuilds the overview scale's
// domain. AddSeries and RemoveSeries call it implicitly; callers must invoke
// it themselves after mutating series data in place, such as appending points
// to a live trace.
func (c *Chart) RecomputeBounds() {
	b, ok := ComputeBounds(c.store.List())
	c.bounds = b
	c.hasBounds = ok
	if !ok {
		c.refresh()
		return
	}
	c.overview.SetDomain(b.MinX, b.MaxX)
	c.win = c.win.clamp(c.overviewMax())
	c.refresh()
}

// Window returns the current selection window in overview pixels.
func (c *Chart) Window() Window { return c.win }

// SetWindow replaces the window, as a context-panel brush does, and reruns
// the windowing engine.
func (c *Chart) SetWindow(offset, length float64) {
	c.win = Window{Offset: offset, Length: length}.clamp(c.overviewMax())
	c.refresh()
}

// Zoom applies a wheel-zoom factor to the window length. The factor's
// deviation from 1.0 is amplified before use; see Window.zoom.
func (c *Chart) Zoom(factor float64) {
	c.win = c.win.zoom(factor, c.overviewMax())
	c.refresh()
}

// Pan shifts the window by delta overview pixels.
func (c *Chart) Pan(delta float64) {
	c.win = c.win.pan(delta, c.overviewMax())
	c.refresh()
}

// StartSelection begins a transient focus-panel selection box at the given
// focus pixel. The window itself does not move until the drag completes.
func (c *Chart) StartSelection(px float64) {
	c.selecting = true
	c.selStart = px
	c.selEnd = px
}

// DragSelection extends an in-progress selection box.
func (c *Chart) DragSelection(px float64) {
	if !c.selecting {
		return
	}
	c.selEnd = px
}

// Selection reports the in-progress selection box in focus pixels, ordered
// low to high. ok is false when no drag is underway.
func (c *Chart) Selection() (lo, hi float64, ok bool) {
	if !c.selecting {
		return 0, 0, false
	}
	lo, hi = c.selStart, c.selEnd
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// EndSelection completes the drag: the selected focus-pixel interval inverts
// through the detail scale into the domain and maps back through the overview
// scale into the new window. Drags narrower than a pixel cancel instead.
func (c *Chart) EndSelection() {
	if !c.selecting {
		return
	}
	c.selecting = false
	lo, hi := c.selStart, c.selEnd
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi-lo < 1 {
		return
	}
	d1 := c.detail.Invert(lo)
	d2 := c.detail.Invert(hi)
	pxLo := c.overview.Scale(d1)
	pxHi := c.overview.Scale(d2)
	c.SetWindow(pxLo, pxHi-pxLo)
}

// CancelSelection abandons an in-progress drag without moving the window.
func (c *Chart) CancelSelection() {
	c.selecting = false
}

// Resize updates the shared panel width, preserving the window's relative
// coverage. Widths below one pixel clamp rather than corrupting the scales,
// since zero-size panels occur as normal layout transients.
func (c *Chart) Resize(width int) {
	if width < 1 {
		width = 1
	}
	if width == c.cfg.Width {
		return
	}
	oldMax := c.overviewMax()
	c.cfg.Width = width
	c.overview.SetRange(0, float64(width))
	c.detail.SetRange(0, float64(width))
	if oldMax > 0 {
		ratio := float64(width) / oldMax
		c.win.Offset *= ratio
		c.win.Length *= ratio
	}
	c.win = c.win.clamp(float64(width))
	c.refresh()
}

// refresh is the windowing engine: it inverts the window through the overview
// scale into a domain interval, binary-searches the primary series for the
// slice boundaries, pads the slice by one point per side so the rendered line
// extends past the visible edges, updates the detail scale's domain, and
// publishes the result to the pointer tracker. Re-running it with an
// unchanged window yields an identical slice and domain.
func (c *Chart) refresh() {
	primary := c.store.Primary()
	if primary == nil || len(primary.points) == 0 || !c.hasBounds {
		c.slice = nil
		c.sliceStart = 0
		c.domainLo, c.domainHi = 0, 0
		c.tracker.publish(nil, c.detail)
		return
	}
	d1 := c.overview.Invert(c.win.Offset)
	d2 := c.overview.Invert(c.win.Right())
	// One padding point per side: the point just before d1 and the point
	// just after d2, when they exist.
	lo := max(primary.Search(d1).Index-1, 0)
	hi := min(searchPointsAfter(primary.points, d2), len(primary.points)-1)
	c.slice = primary.points[lo : hi+1]
	c.sliceStart = lo
	c.domainLo, c.domainHi = d1, d2
	c.detail.SetDomain(d1, d2)
	c.tracker.publish(c.slice, c.detail)
}

// ActiveSlice returns the padded points within the current window. The slice
// aliases the primary series' backing array and remains valid until the next
// window or data change.
func (c *Chart) ActiveSlice() []Point { return c.slice }

// SliceStart returns the index of ActiveSlice's first point within the
// primary series.
func (c *Chart) SliceStart() int { return c.sliceStart }

// DetailDomain returns the data interval implied by the current window.
func (c *Chart) DetailDomain() (lo, hi float64) { return c.domainLo, c.domainHi }

// DetailScale returns the focus panel's pixel mapping. Collaborators should
// only read the returned scale; the chart mutates it as the window moves.
func (c *Chart) DetailScale() *LinearScale { return c.detail }

// OverviewScale returns the context panel's pixel mapping.
func (c *Chart) OverviewScale() *LinearScale { return c.overview }

// PointerMoved resolves a focus-panel pixel position to the nearest slice
// index, which becomes the selected index.
func (c *Chart) PointerMoved(px float64) {
	c.tracker.Move(px)
}

// PointerLeft clears the selected index.
func (c *Chart) PointerLeft() {
	c.tracker.Leave()
}

// SelectedIndex returns the hovered index into ActiveSlice, or NoSelection.
func (c *Chart) SelectedIndex() int { return c.tracker.Selected() }

// SelectedPoint returns the hovered point, if any.
func (c *Chart) SelectedPoint() (Point, bool) {
	idx := c.tracker.Selected()
	if idx == NoSelection || idx >= len(c.slice) {
		return Point{}, false
	}
	return c.slice[idx], true
}

func (c *Chart) overviewMax() float64 {
	_, hi := c.overview.Range()
	return hi
}
