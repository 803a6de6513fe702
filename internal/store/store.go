package store

import (
	"grid-tui/internal/schema"
)

// RowKey is a stable row identifier, independent of display position.
type RowKey int

// Address is a zero-based position over the visible grid: row index by
// display order, column index among non-hidden columns only.
type Address struct {
	Row int
	Col int
}

// Range is an inclusive rectangle of visible positions. Start <= End on
// both axes after normalization.
type Range struct {
	Row [2]int
	Col [2]int
}

// Normalize returns the range with corners ordered start <= end.
func (r Range) Normalize() Range {
	if r.Row[0] > r.Row[1] {
		r.Row[0], r.Row[1] = r.Row[1], r.Row[0]
	}
	if r.Col[0] > r.Col[1] {
		r.Col[0], r.Col[1] = r.Col[1], r.Col[0]
	}
	return r
}

// Row is a single record: cell values keyed by column name plus optional
// per-row metadata kept inline for O(1) lookup during paste/delete.
type Row struct {
	Key      RowKey
	Cells    map[string]string
	Disabled bool
	// Span maps a column name to a span count: this row owns the value for
	// that many rows (itself included) in the column. Follower rows mirror
	// the value and reject writes.
	Span map[string]int
}

// EventKind discriminates change notifications.
type EventKind int

const (
	EventUpdate EventKind = iota
	EventAppend
)

// Event is a change notification for one row.
type Event struct {
	Kind    EventKind
	Key     RowKey
	Columns []string
}

// Store is the row data store: an ordered row list over a column schema.
type Store struct {
	schema  *schema.Schema
	rows    []*Row
	byKey   map[RowKey]int
	nextKey RowKey
	maxSpan map[string]int // per-column upper bound for follower scans
	subs    []func(Event)
}

// New builds a store over the given schema and initial rows. Rows with a
// zero Key are assigned the next free key; explicit keys are preserved.
func New(s *schema.Schema, rows []*Row) *Store {
	st := &Store{
		schema:  s,
		byKey:   make(map[RowKey]int),
		maxSpan: make(map[string]int),
	}
	for _, r := range rows {
		st.attach(r)
	}
	return st
}

func (st *Store) attach(r *Row) {
	if r.Cells == nil {
		r.Cells = make(map[string]string)
	}
	if r.Key == 0 || st.hasKey(r.Key) {
		st.nextKey++
		r.Key = st.nextKey
	} else if r.Key > st.nextKey {
		st.nextKey = r.Key
	}
	st.byKey[r.Key] = len(st.rows)
	st.rows = append(st.rows, r)
	for col, n := range r.Span {
		if n > st.maxSpan[col] {
			st.maxSpan[col] = n
		}
	}
}

func (st *Store) hasKey(k RowKey) bool {
	_, ok := st.byKey[k]
	return ok
}

// Schema returns the column schema the store was built with.
func (st *Store) Schema() *schema.Schema {
	return st.schema
}

// RowCount returns the number of rows.
func (st *Store) RowCount() int {
	return len(st.rows)
}

// RowAt returns the row at a display position.
func (st *Store) RowAt(idx int) (*Row, bool) {
	if idx < 0 || idx >= len(st.rows) {
		return nil, false
	}
	return st.rows[idx], true
}

// KeyAt returns the row key at a display position.
func (st *Store) KeyAt(idx int) (RowKey, bool) {
	r, ok := st.RowAt(idx)
	if !ok {
		return 0, false
	}
	return r.Key, true
}

// IndexOf returns the display position of a row key, or -1.
func (st *Store) IndexOf(key RowKey) int {
	if i, ok := st.byKey[key]; ok {
		return i
	}
	return -1
}

// Value returns the stored cell value for a row key and column name.
func (st *Store) Value(key RowKey, col string) (string, bool) {
	i, ok := st.byKey[key]
	if !ok || !st.schema.Has(col) {
		return "", false
	}
	return st.cellValue(i, col), true
}

// ValueAt returns the cell value at a display row position. Span follower
// cells resolve to the owning main row's value.
func (st *Store) ValueAt(rowIdx int, col string) (string, bool) {
	if rowIdx < 0 || rowIdx >= len(st.rows) || !st.schema.Has(col) {
		return "", false
	}
	return st.cellValue(rowIdx, col), true
}

func (st *Store) cellValue(rowIdx int, col string) string {
	if owner := st.spanOwner(rowIdx, col); owner >= 0 {
		return st.rows[owner].Cells[col]
	}
	return st.rows[rowIdx].Cells[col]
}

// spanOwner returns the index of the main row owning (rowIdx, col) when the
// cell is a span follower, or -1 when the cell owns its own value. The scan
// is bounded by the largest span ever attached for the column.
func (st *Store) spanOwner(rowIdx int, col string) int {
	limit := st.maxSpan[col]
	if limit < 2 {
		return -1
	}
	for j := rowIdx - 1; j >= 0 && rowIdx-j < limit; j-- {
		if n := st.rows[j].Span[col]; n > rowIdx-j {
			return j
		}
	}
	return -1
}

// IsSpanFollower reports whether the cell at a display position belongs to
// a span owned by an earlier row.
func (st *Store) IsSpanFollower(rowIdx int, col string) bool {
	return st.spanOwner(rowIdx, col) >= 0
}

// SetValue writes one cell, subject to the same exclusions as paste:
// disabled rows, non-editable columns, and span followers are skipped.
// It reports whether the write happened.
func (st *Store) SetValue(key RowKey, col string, value string) bool {
	i, ok := st.byKey[key]
	if !ok {
		return false
	}
	if !st.writable(i, col) {
		return false
	}
	st.rows[i].Cells[col] = value
	st.emit(Event{Kind: EventUpdate, Key: key, Columns: []string{col}})
	return true
}

func (st *Store) writable(rowIdx int, col string) bool {
	c, ok := st.schema.Column(col)
	if !ok || !c.Editable {
		return false
	}
	if st.rows[rowIdx].Disabled {
		return false
	}
	return st.spanOwner(rowIdx, col) < 0
}

// AppendRow adds a row populated with schema defaults and returns it.
func (st *Store) AppendRow() *Row {
	r := &Row{Cells: make(map[string]string)}
	for _, c := range st.schema.Columns() {
		r.Cells[c.Name] = c.Default
	}
	st.attach(r)
	st.emit(Event{Kind: EventAppend, Key: r.Key})
	return r
}

// OnChange registers a change-notification subscriber. Subscribers are
// invoked synchronously, in registration order.
func (st *Store) OnChange(fn func(Event)) {
	st.subs = append(st.subs, fn)
}

func (st *Store) emit(ev Event) {
	for _, fn := range st.subs {
		fn(ev)
	}
}
