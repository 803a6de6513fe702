// Package layout maps row indices to vertical offsets and back. The grid
// pane uses it for scroll math; the keyboard controller uses it to compute
// page-up/down distances from the viewport height.
package layout

// DefaultRowHeight is used for rows without an explicit height.
const DefaultRowHeight = 1

// Model tracks per-row heights and the viewport height.
type Model struct {
	heights   []int
	defHeight int
	viewportH int
	offsets   []int // prefix sums, offsets[i] = top offset of row i
	offsetsOK bool
}

// New creates a layout model for the given row count.
func New(rowCount int) *Model {
	return &Model{
		heights:   make([]int, rowCount),
		defHeight: DefaultRowHeight,
	}
}

// SetViewportHeight sets the visible height used for page distances.
func (m *Model) SetViewportHeight(h int) {
	if h < 1 {
		h = 1
	}
	m.viewportH = h
}

// ViewportHeight returns the current viewport height.
func (m *Model) ViewportHeight() int {
	if m.viewportH < 1 {
		return 1
	}
	return m.viewportH
}

// SetRowCount grows or shrinks the tracked row list. Existing heights are
// kept; new rows use the default height.
func (m *Model) SetRowCount(n int) {
	if n < 0 {
		n = 0
	}
	for len(m.heights) < n {
		m.heights = append(m.heights, 0)
	}
	m.heights = m.heights[:n]
	m.offsetsOK = false
}

// RowCount returns the number of tracked rows.
func (m *Model) RowCount() int {
	return len(m.heights)
}

// SetRowHeight overrides one row's height.
func (m *Model) SetRowHeight(idx, h int) {
	if idx < 0 || idx >= len(m.heights) || h < 1 {
		return
	}
	m.heights[idx] = h
	m.offsetsOK = false
}

func (m *Model) rowHeight(idx int) int {
	if m.heights[idx] > 0 {
		return m.heights[idx]
	}
	return m.defHeight
}

func (m *Model) rebuild() {
	if m.offsetsOK {
		return
	}
	m.offsets = m.offsets[:0]
	off := 0
	for i := range m.heights {
		m.offsets = append(m.offsets, off)
		off += m.rowHeight(i)
	}
	m.offsetsOK = true
}

// OffsetAt returns the top offset of a row, clamped to the grid.
func (m *Model) OffsetAt(idx int) int {
	if len(m.heights) == 0 {
		return 0
	}
	m.rebuild()
	if idx < 0 {
		return 0
	}
	if idx >= len(m.offsets) {
		last := len(m.offsets) - 1
		return m.offsets[last] + m.rowHeight(last)
	}
	return m.offsets[idx]
}

// TotalHeight returns the cumulative height of all rows.
func (m *Model) TotalHeight() int {
	return m.OffsetAt(len(m.heights))
}

// IndexAt maps a vertical offset back to a row index, clamped to
// [0, rowCount-1].
func (m *Model) IndexAt(offset int) int {
	if len(m.heights) == 0 {
		return 0
	}
	m.rebuild()
	if offset < 0 {
		return 0
	}
	// offsets is sorted; find the last row whose top offset <= offset.
	lo, hi := 0, len(m.offsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.offsets[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// PageDown returns the row index one viewport below the given row.
func (m *Model) PageDown(from int) int {
	return m.IndexAt(m.OffsetAt(from) + m.ViewportHeight())
}

// PageUp returns the row index one viewport above the given row.
func (m *Model) PageUp(from int) int {
	return m.IndexAt(m.OffsetAt(from) - m.ViewportHeight())
}
