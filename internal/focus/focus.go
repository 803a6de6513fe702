// Package focus tracks the focused cell and answers neighbor queries over
// the visible row/column order.
package focus

import (
	"grid-tui/internal/store"
)

// Model tracks the focused (row key, column name) pair. Focus may be unset.
type Model struct {
	store *store.Store

	key RowKeyState
	col string

	subs []func(store.Address)
}

// RowKeyState is a row key plus a validity flag, so key 0 stays usable.
type RowKeyState struct {
	Key store.RowKey
	Set bool
}

// New creates an unfocused model over the given store.
func New(st *store.Store) *Model {
	return &Model{store: st}
}

// OnFocus registers a subscriber for focus-request events. The display
// surface uses these to scroll the focused cell into view.
func (m *Model) OnFocus(fn func(store.Address)) {
	m.subs = append(m.subs, fn)
}

// HasFocus reports whether a cell is focused.
func (m *Model) HasFocus() bool {
	return m.key.Set && m.col != ""
}

// Current returns the focused row key and column name.
func (m *Model) Current() (store.RowKey, string, bool) {
	if !m.HasFocus() {
		return 0, "", false
	}
	return m.key.Key, m.col, true
}

// Address resolves the focused cell to visible indices.
func (m *Model) Address() (store.Address, bool) {
	if !m.HasFocus() {
		return store.Address{}, false
	}
	row := m.store.IndexOf(m.key.Key)
	col := m.store.Schema().VisibleIndex(m.col)
	if row < 0 || col < 0 {
		return store.Address{}, false
	}
	return store.Address{Row: row, Col: col}, true
}

// Focus sets the focused cell. It no-ops unless the key resolves to an
// existing row and the column to a visible column.
func (m *Model) Focus(key store.RowKey, col string) {
	if m.store.IndexOf(key) < 0 {
		return
	}
	if m.store.Schema().VisibleIndex(col) < 0 {
		return
	}
	m.key = RowKeyState{Key: key, Set: true}
	m.col = col
	if addr, ok := m.Address(); ok {
		for _, fn := range m.subs {
			fn(addr)
		}
	}
}

// FocusAt focuses the cell at a visible address.
func (m *Model) FocusAt(addr store.Address) {
	key, ok := m.store.KeyAt(addr.Row)
	if !ok {
		return
	}
	col, ok := m.store.Schema().NameAt(addr.Col)
	if !ok {
		return
	}
	m.Focus(key, col)
}

// Blur clears focus.
func (m *Model) Blur() {
	m.key = RowKeyState{}
	m.col = ""
}

// PrevRowKey returns the key of the row above the focused row.
func (m *Model) PrevRowKey() (store.RowKey, bool) {
	return m.rowKeyOffset(-1)
}

// NextRowKey returns the key of the row below the focused row.
func (m *Model) NextRowKey() (store.RowKey, bool) {
	return m.rowKeyOffset(1)
}

func (m *Model) rowKeyOffset(d int) (store.RowKey, bool) {
	if !m.HasFocus() {
		return 0, false
	}
	idx := m.store.IndexOf(m.key.Key)
	if idx < 0 {
		return 0, false
	}
	return m.store.KeyAt(idx + d)
}

// FirstRowKey returns the key of the first row.
func (m *Model) FirstRowKey() (store.RowKey, bool) {
	return m.store.KeyAt(0)
}

// LastRowKey returns the key of the last row.
func (m *Model) LastRowKey() (store.RowKey, bool) {
	return m.store.KeyAt(m.store.RowCount() - 1)
}

// PrevColumn returns the visible column left of the focused column.
func (m *Model) PrevColumn() (string, bool) {
	return m.columnOffset(-1)
}

// NextColumn returns the visible column right of the focused column.
func (m *Model) NextColumn() (string, bool) {
	return m.columnOffset(1)
}

func (m *Model) columnOffset(d int) (string, bool) {
	if !m.HasFocus() {
		return "", false
	}
	vi := m.store.Schema().VisibleIndex(m.col)
	if vi < 0 {
		return "", false
	}
	return m.store.Schema().NameAt(vi + d)
}

// FirstColumn returns the first visible column name.
func (m *Model) FirstColumn() (string, bool) {
	return m.store.Schema().NameAt(0)
}

// LastColumn returns the last visible column name.
func (m *Model) LastColumn() (string, bool) {
	return m.store.Schema().NameAt(m.store.Schema().VisibleCount() - 1)
}

// NextAddress returns the tab-order successor of the focused cell: one
// column right, wrapping to the first column of the next row at a row end.
// At the very last cell the focused address is returned unchanged.
func (m *Model) NextAddress() (store.Address, bool) {
	addr, ok := m.Address()
	if !ok {
		return store.Address{}, false
	}
	visCount := m.store.Schema().VisibleCount()
	if addr.Col+1 < visCount {
		addr.Col++
		return addr, true
	}
	if addr.Row+1 < m.store.RowCount() {
		addr.Row++
		addr.Col = 0
		return addr, true
	}
	return addr, true
}

// PrevAddress returns the tab-order predecessor: one column left, wrapping
// to the last column of the previous row at a row start.
func (m *Model) PrevAddress() (store.Address, bool) {
	addr, ok := m.Address()
	if !ok {
		return store.Address{}, false
	}
	if addr.Col > 0 {
		addr.Col--
		return addr, true
	}
	if addr.Row > 0 {
		addr.Row--
		addr.Col = m.store.Schema().VisibleCount() - 1
		return addr, true
	}
	return addr, true
}
