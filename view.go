package main

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/trace-lens/chart"
	"golang.org/x/exp/constraints"
)

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

// seriesPalette colors unstyled series by store position. It has one entry
// per unstyled slot the store accepts.
var seriesPalette = []color.NRGBA{
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff},
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff}, //#857625
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff}, //#51854d
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff}, //#2b7fa8
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff}, //#726cae
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff}, //975f91
	{R: 0xff, A: 0xff},
	{G: 0xff, A: 0xff},
	{B: 0xff, A: 0xff},
	{R: 0xf0, G: 0xf0, A: 0xff},
}

// brushMode tracks what a press in the context panel started.
type brushMode uint8

const (
	brushNone brushMode = iota
	// brushNew sweeps out a fresh window.
	brushNew
	// brushMove slides the existing window.
	brushMove
)

// ChartView renders a chart as a context panel above a focus panel and
// translates Gio input into chart operations. All windowing math lives in
// the chart package; the view only scales y values and paints.
type ChartView struct {
	chart *chart.Chart

	zoom gesture.Scroll
	pan  gesture.Scroll

	focusTag   struct{}
	contextTag struct{}

	brush      brushMode
	brushStart float64
	brushGrab  float64
}

func NewChartView(c *chart.Chart) *ChartView {
	return &ChartView{chart: c}
}

// Update drains this frame's pointer events for both panels. Scroll gestures
// are handled in layoutFocus, where the panel height is known.
func (v *ChartView) Update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: &v.focusTag,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Move | pointer.Leave,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		x := float64(pe.Position.X)
		switch pe.Kind {
		case pointer.Press:
			v.chart.StartSelection(x)
		case pointer.Drag:
			v.chart.DragSelection(x)
		case pointer.Release:
			v.chart.EndSelection()
		case pointer.Cancel:
			v.chart.CancelSelection()
		case pointer.Move:
			v.chart.PointerMoved(x)
		case pointer.Leave:
			v.chart.PointerLeft()
		}
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: &v.contextTag,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		x := float64(pe.Position.X)
		win := v.chart.Window()
		switch pe.Kind {
		case pointer.Press:
			if x >= win.Offset && x <= win.Right() {
				v.brush = brushMove
				v.brushGrab = x - win.Offset
			} else {
				v.brush = brushNew
				v.brushStart = x
				v.chart.SetWindow(x, 1)
			}
		case pointer.Drag:
			switch v.brush {
			case brushNew:
				lo := min(v.brushStart, x)
				v.chart.SetWindow(lo, max(v.brushStart, x)-lo)
			case brushMove:
				v.chart.SetWindow(x-v.brushGrab, win.Length)
			}
		case pointer.Release, pointer.Cancel:
			v.brush = brushNone
		}
	}
}

func (v *ChartView) Layout(gtx C, th *material.Theme) D {
	v.Update(gtx)
	v.chart.Resize(gtx.Constraints.Max.X)
	cfg := v.chart.Config()
	lo, hi := v.chart.DetailDomain()
	minDomainLabel := material.Body2(th, strconv.FormatFloat(lo, 'f', 3, 64))
	maxDomainLabel := material.Body2(th, strconv.FormatFloat(hi, 'f', 3, 64))
	maxDomainLabel.Alignment = text.End
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints = layout.Exact(image.Pt(gtx.Constraints.Max.X, cfg.ContextHeight))
			return v.layoutContext(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: 4}.Layout),
		layout.Flexed(1, func(gtx C) D {
			return v.layoutFocus(gtx, th)
		}),
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(minDomainLabel.Layout),
				layout.Rigid(maxDomainLabel.Layout),
			)
		}),
	)
}

// layoutContext draws every series across the full data extent with the
// current window rectangle on top. Presses and drags here brush the window.
func (v *ChartView) layoutContext(gtx C) D {
	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, &v.contextTag)
	bounds, ok := v.chart.Bounds()
	if !ok {
		return D{Size: size}
	}
	ys := chart.NewLinearScale(bounds.MinY, bounds.MaxY, float64(size.Y-1), 0)
	for i, s := range v.chart.Series() {
		v.strokeLine(gtx, s.Points(), v.chart.OverviewScale(), ys, v.seriesColor(i, s))
	}
	cfg := v.chart.Config()
	win := v.chart.Window()
	// Floor the left edge and ceil the right so the overlay always covers
	// the full window, even at fractional offsets.
	winRect := clip.Rect{
		Min: image.Pt(int(floor(win.Offset)), 0),
		Max: image.Pt(int(ceil(win.Right())), size.Y),
	}
	paint.FillShape(gtx.Ops, cfg.WindowFill, winRect.Op())
	frame := gtx.Dp(1)
	paint.FillShape(gtx.Ops, cfg.WindowFrame, clip.Rect{
		Min: winRect.Min,
		Max: image.Pt(winRect.Min.X+frame, size.Y),
	}.Op())
	paint.FillShape(gtx.Ops, cfg.WindowFrame, clip.Rect{
		Min: image.Pt(winRect.Max.X-frame, 0),
		Max: winRect.Max,
	}.Op())
	return D{Size: size}
}

// layoutFocus draws the windowed region of every series along with tick
// gridlines, annotations, the in-progress selection, and the hover ruler.
func (v *ChartView) layoutFocus(gtx C, th *material.Theme) D {
	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, &v.focusTag)
	v.zoom.Add(gtx.Ops)
	v.pan.Add(gtx.Ops)

	if dist := v.zoom.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6)); dist != 0 {
		v.chart.Zoom(1 + float64(dist)/float64(size.Y*100))
	}
	if dist := v.pan.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Horizontal, image.Rect(-1e6, 0, 1e6, 0)); dist != 0 {
		win := v.chart.Window()
		v.chart.Pan(float64(dist) * win.Length / float64(size.X))
	}

	bounds, ok := v.chart.Bounds()
	if !ok {
		return D{Size: size}
	}
	cfg := v.chart.Config()
	xs := v.chart.DetailScale()
	ys := chart.NewLinearScale(bounds.MinY, bounds.MaxY, float64(size.Y-1), 0)
	lo, hi := v.chart.DetailDomain()

	oneDp := gtx.Dp(1)
	for _, tick := range xs.Ticks(4) {
		px := int(xs.Scale(tick))
		paint.FillShape(gtx.Ops, color.NRGBA{A: 40}, clip.Rect{
			Min: image.Pt(px, 0),
			Max: image.Pt(px+oneDp, size.Y),
		}.Op())
	}

	primary := v.chart.Primary()
	for i, s := range v.chart.Series() {
		pts := s.Points()
		if s == primary {
			pts = v.chart.ActiveSlice()
		} else {
			pts = visiblePoints(s, lo, hi)
		}
		col := v.seriesColor(i, s)
		v.strokeLine(gtx, pts, xs, ys, col)
		v.layoutAnnotations(gtx, th, s, xs, ys, lo, hi, col)
	}

	if selLo, selHi, selecting := v.chart.Selection(); selecting {
		paint.FillShape(gtx.Ops, cfg.Selection, clip.Rect{
			Min: image.Pt(int(selLo), 0),
			Max: image.Pt(int(selHi), size.Y),
		}.Op())
	}

	if pt, hovered := v.chart.SelectedPoint(); hovered {
		px := int(xs.Scale(pt.X))
		paint.FillShape(gtx.Ops, cfg.Ruler, clip.Rect{
			Min: image.Pt(px, 0),
			Max: image.Pt(px+oneDp, size.Y),
		}.Op())
		marker := gtx.Dp(3)
		center := image.Pt(px, int(ys.Scale(pt.Y)))
		paint.FillShape(gtx.Ops, cfg.Ruler, clip.Ellipse{
			Min: center.Sub(image.Pt(marker, marker)),
			Max: center.Add(image.Pt(marker, marker)),
		}.Op(gtx.Ops))
		v.layoutHoverLabel(gtx, th, pt, center, size)
	}
	return D{Size: size}
}

// layoutHoverLabel places the hovered point's values beside the ruler,
// flipping sides near the right edge so the label stays visible.
func (v *ChartView) layoutHoverLabel(gtx C, th *material.Theme, pt chart.Point, center image.Point, size image.Point) {
	label := material.Body2(th,
		strconv.FormatFloat(pt.X, 'f', 3, 64)+", "+strconv.FormatFloat(pt.Y, 'f', 3, 64))
	gtx.Constraints.Min = image.Point{}
	macro := op.Record(gtx.Ops)
	dims := label.Layout(gtx)
	call := macro.Stop()
	pos := image.Pt(center.X+gtx.Dp(6), max(center.Y-dims.Size.Y, 0))
	if pos.X+dims.Size.X > size.X {
		pos.X = center.X - gtx.Dp(6) - dims.Size.X
	}
	transform := op.Offset(pos).Push(gtx.Ops)
	call.Add(gtx.Ops)
	transform.Pop()
}

func (v *ChartView) layoutAnnotations(gtx C, th *material.Theme, s *chart.Series, xs, ys *chart.LinearScale, lo, hi float64, col color.NRGBA) {
	marker := gtx.Dp(3)
	for _, a := range s.Annotations() {
		if a.X < lo || a.X > hi {
			continue
		}
		center := image.Pt(int(xs.Scale(a.X)), int(ys.Scale(a.Y)))
		paint.FillShape(gtx.Ops, col, clip.Ellipse{
			Min: center.Sub(image.Pt(marker, marker)),
			Max: center.Add(image.Pt(marker, marker)),
		}.Op(gtx.Ops))
		label := material.Body2(th, a.Title)
		label.Color = col
		gtx.Constraints.Min = image.Point{}
		transform := op.Offset(image.Pt(center.X+marker*2, max(center.Y-gtx.Sp(16), 0))).Push(gtx.Ops)
		label.Layout(gtx)
		transform.Pop()
	}
}

func (v *ChartView) strokeLine(gtx C, pts []chart.Point, xs, ys *chart.LinearScale, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(float32(xs.Scale(pts[0].X)), float32(ys.Scale(pts[0].Y))))
	for _, pt := range pts[1:] {
		p.LineTo(f32.Pt(float32(xs.Scale(pt.X)), float32(ys.Scale(pt.Y))))
	}
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  p.End(),
		Width: float32(gtx.Dp(1)),
	}.Op())
}

func (v *ChartView) seriesColor(i int, s *chart.Series) color.NRGBA {
	if s.Styled() {
		return s.Style().Stroke
	}
	return seriesPalette[i%len(seriesPalette)]
}

// visiblePoints trims a secondary series to the focus domain, keeping one
// point beyond each edge so its line reaches the panel borders.
func visiblePoints(s *chart.Series, lo, hi float64) []chart.Point {
	pts := s.Points()
	start := s.Search(lo).Index
	if start > 0 {
		start--
	}
	end := start
	for end < len(pts) && pts[end].X <= hi {
		end++
	}
	if end < len(pts) {
		end++
	}
	return pts[start:end]
}
