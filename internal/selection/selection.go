// Package selection tracks the active rectangular range of visible grid
// positions and serializes it to clipboard text.
package selection

import (
	"strings"

	"grid-tui/internal/store"
)

// Kind tags what the range spans logically.
type Kind int

const (
	KindCell Kind = iota
	KindRow
	KindColumn
)

// Model is the selection state machine: no selection, or an active range.
type Model struct {
	store  *store.Store
	active bool
	kind   Kind
	anchor store.Address
	corner store.Address
}

// New creates an empty selection over the given store.
func New(st *store.Store) *Model {
	return &Model{store: st}
}

// HasSelection reports whether a range is active.
func (m *Model) HasSelection() bool {
	return m.active
}

// Kind returns the selection kind tag.
func (m *Model) Kind() Kind {
	return m.kind
}

// SetKind tags the active selection as cell, row or column spanning.
func (m *Model) SetKind(k Kind) {
	m.kind = k
}

// Start begins a new range anchored at the given address.
func (m *Model) Start(row, col int) {
	m.active = true
	m.kind = KindCell
	m.anchor = store.Address{Row: row, Col: col}
	m.corner = m.anchor
}

// Update extends the active range's far corner. No-op without a selection.
func (m *Model) Update(row, col int) {
	if !m.active {
		return
	}
	m.corner = store.Address{Row: row, Col: col}
}

// SelectAll covers every row and every visible column.
func (m *Model) SelectAll() {
	rows := m.store.RowCount()
	cols := m.store.Schema().VisibleCount()
	if rows == 0 || cols == 0 {
		return
	}
	m.active = true
	m.kind = KindCell
	m.anchor = store.Address{}
	m.corner = store.Address{Row: rows - 1, Col: cols - 1}
}

// Clear drops the selection entirely.
func (m *Model) Clear() {
	m.active = false
	m.kind = KindCell
}

// End marks the end of a range gesture. Keyboard selection keeps no drag
// state beyond the range itself, so this is a no-op retained for parity
// with pointer-driven hosts.
func (m *Model) End() {}

// Range returns the normalized active range.
func (m *Model) Range() (store.Range, bool) {
	if !m.active {
		return store.Range{}, false
	}
	r := store.Range{
		Row: [2]int{m.anchor.Row, m.corner.Row},
		Col: [2]int{m.anchor.Col, m.corner.Col},
	}
	return r.Normalize(), true
}

// StartIndex returns the top-left corner of the normalized range.
func (m *Model) StartIndex() (store.Address, bool) {
	r, ok := m.Range()
	if !ok {
		return store.Address{}, false
	}
	return store.Address{Row: r.Row[0], Col: r.Col[0]}, true
}

// EndIndex returns the bottom-right corner of the normalized range.
func (m *Model) EndIndex() (store.Address, bool) {
	r, ok := m.Range()
	if !ok {
		return store.Address{}, false
	}
	return store.Address{Row: r.Row[1], Col: r.Col[1]}, true
}

// Contains reports whether a visible address falls inside the range.
func (m *Model) Contains(row, col int) bool {
	r, ok := m.Range()
	if !ok {
		return false
	}
	return row >= r.Row[0] && row <= r.Row[1] && col >= r.Col[0] && col <= r.Col[1]
}

// FarCorner returns the corner a shift-driven move acts on: the corner of
// the existing range farthest from the focus address, or the focus address
// itself when nothing is selected.
func (m *Model) FarCorner(focusAddr store.Address) store.Address {
	r, ok := m.Range()
	if !ok {
		return focusAddr
	}
	a := store.Address{Row: r.Row[0], Col: r.Col[0]}
	if abs(r.Row[1]-focusAddr.Row) > abs(r.Row[0]-focusAddr.Row) {
		a.Row = r.Row[1]
	}
	if abs(r.Col[1]-focusAddr.Col) > abs(r.Col[0]-focusAddr.Col) {
		a.Col = r.Col[1]
	}
	return a
}

// Extend re-anchors the range and moves its far corner, normalizing on read.
func (m *Model) Extend(anchor, corner store.Address) {
	m.active = true
	m.anchor = anchor
	m.corner = corner
}

// ValuesToString serializes the selected rectangle as clipboard text: rows
// joined by newline, cells by tab. With formatted set, each column's display
// formatter is applied; otherwise raw stored values are emitted.
func (m *Model) ValuesToString(formatted bool) string {
	r, ok := m.Range()
	if !ok {
		return ""
	}
	sch := m.store.Schema()

	var b strings.Builder
	for ri := r.Row[0]; ri <= r.Row[1]; ri++ {
		if ri > r.Row[0] {
			b.WriteByte('\n')
		}
		for ci := r.Col[0]; ci <= r.Col[1]; ci++ {
			if ci > r.Col[0] {
				b.WriteByte('\t')
			}
			col, ok := sch.ColumnAt(ci)
			if !ok {
				continue
			}
			val, _ := m.store.ValueAt(ri, col.Name)
			if formatted && col.Format != nil {
				val = col.Format(val)
			}
			b.WriteString(val)
		}
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
