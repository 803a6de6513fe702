package selection

import (
	"testing"

	"grid-tui/internal/schema"
	"grid-tui/internal/store"
)

func testStore() *store.Store {
	sch := schema.MustNew([]schema.Column{
		{Name: "a", Editable: true},
		{Name: "h", Editable: true, Hidden: true},
		{Name: "b", Editable: true, Format: func(v string) string { return "[" + v + "]" }},
		{Name: "c", Editable: true},
	})
	return store.New(sch, []*store.Row{
		{Cells: map[string]string{"a": "a0", "b": "b0", "c": "c0"}},
		{Cells: map[string]string{"a": "a1", "b": "b1", "c": "c1"}},
		{Cells: map[string]string{"a": "a2", "b": "b2", "c": "c2"}},
	})
}

func TestRangeNormalizes(t *testing.T) {
	m := New(testStore())
	m.Start(2, 2)
	m.Update(0, 0)

	r, ok := m.Range()
	if !ok {
		t.Fatal("no range after Start/Update")
	}
	if r.Row != [2]int{0, 2} || r.Col != [2]int{0, 2} {
		t.Errorf("range = %+v, want normalized corners", r)
	}

	start, _ := m.StartIndex()
	if start.Row != 0 || start.Col != 0 {
		t.Errorf("StartIndex = %+v, want top-left", start)
	}
	end, _ := m.EndIndex()
	if end.Row != 2 || end.Col != 2 {
		t.Errorf("EndIndex = %+v, want bottom-right", end)
	}
}

func TestContains(t *testing.T) {
	m := New(testStore())
	m.Start(0, 1)
	m.Update(1, 2)

	if !m.Contains(0, 1) || !m.Contains(1, 2) || !m.Contains(0, 2) {
		t.Error("addresses inside the rectangle should be contained")
	}
	if m.Contains(0, 0) || m.Contains(2, 1) {
		t.Error("addresses outside the rectangle should not be contained")
	}

	m.Clear()
	if m.Contains(0, 1) {
		t.Error("cleared selection contains nothing")
	}
}

func TestSelectAll(t *testing.T) {
	m := New(testStore())
	m.SelectAll()

	r, ok := m.Range()
	if !ok {
		t.Fatal("SelectAll produced no range")
	}
	// Three rows, three visible columns (h is hidden).
	if r.Row != [2]int{0, 2} || r.Col != [2]int{0, 2} {
		t.Errorf("range = %+v, want full visible grid", r)
	}
}

func TestFarCornerIsFarthestFromFocus(t *testing.T) {
	m := New(testStore())
	m.Start(0, 0)
	m.Update(1, 1)

	// Focus at the bottom-right corner: the far corner is top-left.
	a := m.FarCorner(store.Address{Row: 1, Col: 1})
	if a.Row != 0 || a.Col != 0 {
		t.Errorf("far corner = %+v, want top-left", a)
	}

	// Focus at the top-left corner: the far corner flips to bottom-right.
	a = m.FarCorner(store.Address{Row: 0, Col: 0})
	if a.Row != 1 || a.Col != 1 {
		t.Errorf("far corner = %+v, want bottom-right", a)
	}

	// Without a selection the far corner is the focus itself.
	m.Clear()
	a = m.FarCorner(store.Address{Row: 2, Col: 1})
	if a.Row != 2 || a.Col != 1 {
		t.Errorf("far corner = %+v, want focus address", a)
	}
}

func TestExtendReanchors(t *testing.T) {
	m := New(testStore())
	m.Extend(store.Address{Row: 2, Col: 2}, store.Address{Row: 0, Col: 1})

	r, _ := m.Range()
	if r.Row != [2]int{0, 2} || r.Col != [2]int{1, 2} {
		t.Errorf("range = %+v after Extend", r)
	}
}

func TestValuesToStringSerialization(t *testing.T) {
	m := New(testStore())
	m.Start(0, 0)
	m.Update(1, 2)

	// Raw: rows joined by newline, cells by tab, hidden column excluded.
	got := m.ValuesToString(false)
	want := "a0\tb0\tc0\na1\tb1\tc1"
	if got != want {
		t.Errorf("raw serialization = %q, want %q", got, want)
	}

	// Formatted: column b's display formatter is applied.
	got = m.ValuesToString(true)
	want = "a0\t[b0]\tc0\na1\t[b1]\tc1"
	if got != want {
		t.Errorf("formatted serialization = %q, want %q", got, want)
	}
}

func TestValuesToStringEmpty(t *testing.T) {
	m := New(testStore())
	if got := m.ValuesToString(true); got != "" {
		t.Errorf("no selection should serialize empty, got %q", got)
	}
}
