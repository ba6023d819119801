package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/trace-lens/backend"
)

func main() {
	tracePath := flag.String("trace", "", "CSV trace file to load at startup")
	follow := flag.Bool("follow", false, "keep reading the trace file as it grows")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bundle, err := backend.NewBundle(ctx)
	if err != nil {
		log.Fatalf("failed initializing backend: %v", err)
	}
	if *tracePath != "" {
		if _, err := bundle.Datasource.LoadFromPath(*tracePath, *follow); err != nil {
			log.Fatalf("failed loading trace: %v", err)
		}
	} else if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		// Piped input streams as long as the writer keeps the pipe open.
		bundle.Datasource.LoadFromStream(backend.ModeStatic, os.Stdin, nil)
	}

	go func() {
		w := app.NewWindow(app.Title("Trace Lens"))
		expl := explorer.NewExplorer(w)
		ws := backend.NewWindowState(ctx, bundle, w)
		ui := NewUI(ws, expl)
		if err := loop(w, expl, ui); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, expl *explorer.Explorer, ui *UI) error {
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
