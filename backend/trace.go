package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/trace-lens/chart"
	"github.com/fsnotify/fsnotify"
)

type Mode uint8

const (
	ModeNone Mode = iota
	// ModeStatic replays a complete trace file.
	ModeStatic
	// ModeFollowing tails a trace that is still being written.
	ModeFollowing
)

// Session is one loaded trace and its ingestion state. The Data pointer is
// shared with the ingestion goroutine and safe for concurrent reads.
type Session struct {
	ID          string
	Mode        Mode
	Data        *TraceData
	Annotations []SeriesAnnotation
	Err         error
}

// Datasource loads trace files and publishes session snapshots to
// subscribers on every ingested row.
type Datasource struct {
	appCtx  context.Context
	watcher *fsnotify.Watcher

	box     RWBox[Session]
	subLock sync.Mutex
	subs    map[chan Session]struct{}
}

func NewDatasource(appCtx context.Context) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	return &Datasource{
		appCtx:  appCtx,
		watcher: watcher,
		subs:    make(map[chan Session]struct{}),
	}, nil
}

func generateSessionID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

// Sessions provides the current session followed by every later snapshot.
// It is shaped for stream.New, which reads it on the UI's frame cadence.
func (d *Datasource) Sessions(ctx context.Context) <-chan Session {
	out := make(chan Session)
	sub := make(chan Session, 1)
	d.subLock.Lock()
	d.subs[sub] = struct{}{}
	d.subLock.Unlock()
	go func() {
		defer close(out)
		defer func() {
			d.subLock.Lock()
			delete(d.subs, sub)
			d.subLock.Unlock()
		}()
		var (
			latest Session
			have   bool
		)
		d.box.Read(func(s *Session) {
			if s.ID != "" {
				latest = *s
				have = true
			}
		})
		for {
			var send chan Session
			if have {
				send = out
			}
			select {
			case <-ctx.Done():
				return
			case latest = <-sub:
				have = true
			case send <- latest:
				have = false
			}
		}
	}()
	return out
}

// publish records the snapshot and wakes every subscriber. Slow subscribers
// are conflated onto the newest snapshot rather than blocking ingestion.
func (d *Datasource) publish(s Session) {
	d.box.Write(func(cur *Session) { *cur = s })
	d.subLock.Lock()
	defer d.subLock.Unlock()
	for sub := range d.subs {
		select {
		case sub <- s:
		default:
			select {
			case <-sub:
			default:
			}
			select {
			case sub <- s:
			default:
			}
		}
	}
}

// LoadFromFile prompts for a trace file and loads it.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) (string, error) {
	file, err := expl.ChooseFile()
	if err != nil {
		return "", err
	}
	if f, ok := file.(*os.File); ok {
		notes, err := loadAnnotations(f.Name())
		if err != nil {
			log.Printf("ignoring annotation sidecar: %v", err)
		}
		return d.LoadFromStream(ModeStatic, f, notes), nil
	}
	return d.LoadFromStream(ModeStatic, file, nil), nil
}

// LoadFromPath opens a trace file, optionally following it as it grows.
func (d *Datasource) LoadFromPath(path string, follow bool) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed opening trace: %w", err)
	}
	notes, err := loadAnnotations(path)
	if err != nil {
		log.Printf("ignoring annotation sidecar: %v", err)
	}
	mode := ModeStatic
	if follow {
		if err := d.watcher.Add(path); err != nil {
			log.Printf("cannot follow %q, loading it once instead: %v", path, err)
		} else {
			mode = ModeFollowing
		}
	}
	return d.LoadFromStream(mode, file, notes), nil
}

// LoadFromStream begins ingesting CSV trace data from src and returns the new
// session's ID. The expected shape is a header row naming the x column and
// one column per series, then one row per x value with optional empty cells.
func (d *Datasource) LoadFromStream(mode Mode, src io.ReadCloser, notes []SeriesAnnotation) string {
	session := Session{
		ID:          generateSessionID(),
		Mode:        mode,
		Data:        &TraceData{},
		Annotations: notes,
	}
	d.publish(session)
	go d.readTrace(session, src)
	return session.ID
}

func (d *Datasource) readTrace(session Session, src io.ReadCloser) {
	defer src.Close()
	var reader io.Reader = src
	if session.Mode == ModeFollowing {
		reader = NewLineReader(src)
	}
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	header, err := d.readHeader(csvReader, session.Mode)
	if err != nil {
		session.Err = err
		d.publish(session)
		return
	}
	if len(header) < 2 {
		session.Err = fmt.Errorf("trace header %v names no series columns", header)
		d.publish(session)
		return
	}
	names := make([]string, 0, len(header)-1)
	for _, h := range header[1:] {
		names = append(names, strings.TrimSpace(h))
	}
	session.Data.setColumns(names)
	d.publish(session)
	for {
		rec, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if session.Mode == ModeFollowing && d.awaitWrite() {
					continue
				}
				d.publish(session)
				return
			}
			log.Printf("could not read trace data: %v", err)
			session.Err = err
			d.publish(session)
			return
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			log.Printf("failed parsing x value %q: %v", rec[0], err)
			continue
		}
		for i := 1; i < len(rec) && i <= len(names); i++ {
			cell := strings.TrimSpace(rec[i])
			if len(cell) < 1 {
				// Skip null cells.
				continue
			}
			y, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				log.Printf("failed parsing data[%d]=%q: %v", i, rec[i], err)
				continue
			}
			if !session.Data.append(i-1, chart.Point{X: x, Y: y}) {
				log.Printf("dropping out-of-order point x=%v in column %q", x, names[i-1])
			}
		}
		d.publish(session)
	}
}

// readHeader reads the trace's header row. Followed traces may not have a
// complete header yet, so EOF waits for the file to grow.
func (d *Datasource) readHeader(csvReader *csv.Reader, mode Mode) ([]string, error) {
	for {
		header, err := csvReader.Read()
		if err == nil {
			return header, nil
		}
		if errors.Is(err, io.EOF) && mode == ModeFollowing && d.awaitWrite() {
			continue
		}
		return nil, fmt.Errorf("failed reading trace header: %w", err)
	}
}

// awaitWrite blocks until a followed trace grows again, reporting false when
// the application is shutting down.
func (d *Datasource) awaitWrite() bool {
	for {
		select {
		case <-d.appCtx.Done():
			return false
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return false
			}
			if ev.Op&fsnotify.Write != 0 {
				return true
			}
		}
	}
}
