package main

import (
	"image"
	"image/color"
	"log"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/trace-lens/backend"
	"git.sr.ht/~whereswaldon/trace-lens/chart"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
// It moves newly ingested trace rows into the chart each frame, so the chart
// itself is only ever touched from the UI event loop.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	chart *chart.Chart
	view  *ChartView

	sessionStream *stream.Stream[backend.Session]
	session       backend.Session
	// fed counts the points per trace column already appended to the chart,
	// and series holds the chart series backing each column (nil when the
	// store rejected the column).
	fed          []int
	series       []*chart.Series
	fedVersion   uint64
	pendingNotes []backend.SeriesAnnotation

	follow    bool
	followBtn widget.Clickable
	openBtn   widget.Clickable
	loadErr   string

	th *material.Theme
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:            ws,
		th:            th,
		expl:          expl,
		sessionStream: stream.New(ws.Controller, ws.Bundle.Datasource.Sessions),
	}
	ui.resetChart()
	return ui
}

// resetChart discards all per-session chart state.
func (ui *UI) resetChart() {
	ui.chart = chart.New(chart.Config{})
	ui.view = NewChartView(ui.chart)
	ui.fed = nil
	ui.series = nil
	ui.fedVersion = 0
	ui.pendingNotes = nil
}

// Update the state of the UI and generate events. Must be called once at the
// start of each frame.
func (ui *UI) Update(gtx C) {
	prevID := ui.session.ID
	ui.sessionStream.ReadInto(gtx, &ui.session, backend.Session{})
	if ui.session.ID != prevID {
		ui.resetChart()
		ui.pendingNotes = append(ui.pendingNotes, ui.session.Annotations...)
		ui.follow = ui.session.Mode == backend.ModeFollowing
		ui.loadErr = ""
	}
	if ui.session.Err != nil {
		ui.loadErr = ui.session.Err.Error()
	}
	ui.ingest()
	if ui.followBtn.Clicked(gtx) {
		ui.follow = !ui.follow
	}
	if ui.openBtn.Clicked(gtx) {
		if _, err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl); err != nil {
			ui.loadErr = err.Error()
		}
	}
}

// ingest appends any trace rows parsed since the last frame to the chart.
func (ui *UI) ingest() {
	data := ui.session.Data
	if data == nil || data.Version() == ui.fedVersion {
		return
	}
	ui.fedVersion = data.Version()
	for i, name := range data.Columns() {
		if i >= len(ui.series) {
			s := chart.NewSeries(name)
			if err := ui.chart.AddSeries(s); err != nil {
				log.Printf("not charting column %q: %v", name, err)
				s = nil
			}
			ui.series = append(ui.series, s)
			ui.fed = append(ui.fed, 0)
		}
		s := ui.series[i]
		if s == nil {
			continue
		}
		fresh := data.PointsSince(i, ui.fed[i])
		for _, p := range fresh {
			if err := s.Append(p); err != nil {
				log.Printf("dropping point %+v from %q: %v", p, name, err)
			}
		}
		ui.fed[i] += len(fresh)
	}
	ui.chart.RecomputeBounds()
	ui.attachPending()
	if ui.follow && ui.session.Mode == backend.ModeFollowing {
		win := ui.chart.Window()
		_, rangeMax := ui.chart.OverviewScale().Range()
		ui.chart.SetWindow(rangeMax-win.Length, win.Length)
	}
}

// attachPending resolves annotations onto their series once those series
// have data to resolve against.
func (ui *UI) attachPending() {
	remaining := ui.pendingNotes[:0]
	for _, note := range ui.pendingNotes {
		var target *chart.Series
		for _, s := range ui.chart.Series() {
			if s.Name() == note.Series {
				target = s
				break
			}
		}
		if target == nil || target.Len() == 0 {
			remaining = append(remaining, note)
			continue
		}
		err := target.Attach(chart.Annotation{
			X:           note.X,
			Title:       note.Title,
			Description: note.Description,
		})
		if err != nil {
			log.Printf("dropping annotation %q on %q: %v", note.Title, note.Series, err)
		}
	}
	ui.pendingNotes = remaining
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					if ui.session.Mode != backend.ModeFollowing {
						return D{}
					}
					gtx.Constraints = layout.Exact(image.Pt(gtx.Sp(24), gtx.Sp(24)))
					icon := pauseIcon
					if !ui.follow {
						icon = playIcon
					}
					return material.Clickable(gtx, &ui.followBtn, func(gtx C) D {
						return icon.Layout(gtx, ui.th.Fg)
					})
				}),
				layout.Flexed(1, func(gtx C) D {
					if len(ui.loadErr) == 0 {
						return D{}
					}
					l := material.Body2(ui.th, ui.loadErr)
					l.Color = color.NRGBA{R: 150, A: 255}
					return l.Layout(gtx)
				}),
			)
		}),
		layout.Flexed(1, func(gtx C) D {
			return ui.view.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No trace loaded.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Trace").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.session.ID != "" && ui.chart.Primary() != nil {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
