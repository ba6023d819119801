package backend

import (
	"sync"

	"git.sr.ht/~whereswaldon/trace-lens/chart"
)

// RWBox guards a value with a reader/writer lock.
type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

// TraceData accumulates the parsed columns of one trace. Ingestion goroutines
// append to it while the UI reads snapshots, so all access is lock-protected;
// the version counter lets readers skip work when nothing changed.
type TraceData struct {
	lock    sync.RWMutex
	columns []string
	points  [][]chart.Point
	version uint64
}

// setColumns registers the trace's series names. It must run before the first
// append.
func (t *TraceData) setColumns(names []string) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.columns = names
	t.points = make([][]chart.Point, len(names))
	t.version++
}

// append adds a point to one column. Points within a column must arrive in
// non-decreasing x order; out-of-order points are dropped and reported.
func (t *TraceData) append(column int, p chart.Point) bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	pts := t.points[column]
	if len(pts) > 0 && p.X < pts[len(pts)-1].X {
		return false
	}
	t.points[column] = append(pts, p)
	t.version++
	return true
}

// Columns returns a copy of the series names.
func (t *TraceData) Columns() []string {
	t.lock.RLock()
	defer t.lock.RUnlock()
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Version returns a counter that increases with every mutation.
func (t *TraceData) Version() uint64 {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.version
}

// PointsSince copies every point of the column at or beyond index from. The
// UI uses it to feed only fresh data into its chart each frame.
func (t *TraceData) PointsSince(column, from int) []chart.Point {
	t.lock.RLock()
	defer t.lock.RUnlock()
	if column >= len(t.points) {
		return nil
	}
	pts := t.points[column]
	if from >= len(pts) {
		return nil
	}
	out := make([]chart.Point, len(pts)-from)
	copy(out, pts[from:])
	return out
}
