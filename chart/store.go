package chart

import (
	"fmt"
	"slices"
)

// MaxUnstyledSeries caps how many series a store accepts without explicit
// style overrides. The cap is a usability guard against unreadable charts,
// not a technical limit: styled series may always be added.
const MaxUnstyledSeries = 10

// Store holds a chart's series in insertion order. Insertion order is
// significant to the rendering collaborator (it drives z-order and color
// banding), so List never reorders.
type Store struct {
	series []*Series
}

// Add appends a series. It fails once the store holds MaxUnstyledSeries
// series and the new series carries no explicit style override.
func (st *Store) Add(s *Series) error {
	if len(st.series) >= MaxUnstyledSeries && !s.styled {
		return fmt.Errorf("store already holds %d series; give %q an explicit style to add more", len(st.series), s.name)
	}
	st.series = append(st.series, s)
	return nil
}

// Remove drops every series named name, so duplicate names vanish together.
// Removing an absent name is a no-op.
func (st *Store) Remove(name string) {
	st.series = slices.DeleteFunc(st.series, func(s *Series) bool {
		return s.name == name
	})
}

// List returns the series in insertion order. The returned slice is shared
// with the store; callers must not modify it.
func (st *Store) List() []*Series { return st.series }

func (st *Store) Len() int { return len(st.series) }

// Primary returns the series whose x-range drives shared window
// computations: the first series added, or nil when the store is empty.
func (st *Store) Primary() *Series {
	if len(st.series) == 0 {
		return nil
	}
	return st.series[0]
}
