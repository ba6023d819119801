package chart

import (
	"fmt"
	"image/color"
	"testing"
)

func TestStoreCap(t *testing.T) {
	var st Store
	for i := 0; i < MaxUnstyledSeries; i++ {
		if err := st.Add(NewSeries(fmt.Sprintf("series-%d", i))); err != nil {
			t.Fatalf("adding series %d should succeed, got: %v", i, err)
		}
	}
	if err := st.Add(NewSeries("one-too-many")); err == nil {
		t.Errorf("expected the %dth unstyled series to be rejected", MaxUnstyledSeries+1)
	}
	if st.Len() != MaxUnstyledSeries {
		t.Errorf("rejected add should not change the store, found %d series", st.Len())
	}
	styled := NewStyledSeries("styled", Style{Stroke: color.NRGBA{R: 0xff, A: 0xff}})
	if err := st.Add(styled); err != nil {
		t.Errorf("adding a styled series past the cap should succeed, got: %v", err)
	}
	if st.Len() != MaxUnstyledSeries+1 {
		t.Errorf("expected %d series, got %d", MaxUnstyledSeries+1, st.Len())
	}
}

func TestStoreRemove(t *testing.T) {
	var st Store
	for _, name := range []string{"a", "b", "a", "c"} {
		if err := st.Add(NewSeries(name)); err != nil {
			t.Fatalf("failed adding %q: %v", name, err)
		}
	}
	st.Remove("missing")
	if st.Len() != 4 {
		t.Errorf("removing an absent name should be a no-op, found %d series", st.Len())
	}
	st.Remove("a")
	if st.Len() != 2 {
		t.Errorf("expected both duplicates of %q removed, found %d series", "a", st.Len())
	}
	for i, want := range []string{"b", "c"} {
		if got := st.List()[i].Name(); got != want {
			t.Errorf("expected series %d to be %q, got %q", i, want, got)
		}
	}
}

func TestStoreOrderAndPrimary(t *testing.T) {
	var st Store
	if st.Primary() != nil {
		t.Errorf("empty store should have no primary series")
	}
	names := []string{"z", "m", "a"}
	for _, name := range names {
		if err := st.Add(NewSeries(name)); err != nil {
			t.Fatalf("failed adding %q: %v", name, err)
		}
	}
	for i, s := range st.List() {
		if s.Name() != names[i] {
			t.Errorf("insertion order not preserved at %d: expected %q, got %q", i, names[i], s.Name())
		}
	}
	if got := st.Primary().Name(); got != "z" {
		t.Errorf("expected primary series %q, got %q", "z", got)
	}
}
