package store

// Paste writes a clip matrix into the grid starting at a visible address.
//
// Matrix columns that land past the visible column count are dropped, not
// wrapped or clamped. Rows past the current row count are appended with
// schema defaults. Disabled rows, non-editable columns and span-follower
// cells inside the target rectangle are skipped per cell. The operation is
// total: malformed targets degrade to skips, never errors.
func (st *Store) Paste(matrix [][]string, at Address) {
	if len(matrix) == 0 || at.Row < 0 || at.Col < 0 {
		return
	}
	visCount := st.schema.VisibleCount()
	if at.Col >= visCount {
		return
	}

	for r, cells := range matrix {
		targetRow := at.Row + r
		for targetRow >= len(st.rows) {
			st.AppendRow()
		}
		row := st.rows[targetRow]

		var changed []string
		for c, value := range cells {
			targetCol := at.Col + c
			if targetCol >= visCount {
				continue
			}
			name, ok := st.schema.NameAt(targetCol)
			if !ok {
				continue
			}
			if !st.writable(targetRow, name) {
				continue
			}
			row.Cells[name] = value
			changed = append(changed, name)
		}
		if len(changed) > 0 {
			st.emit(Event{Kind: EventUpdate, Key: row.Key, Columns: changed})
		}
	}
}

// Del clears one cell to the empty string under the paste write exclusions.
func (st *Store) Del(key RowKey, col string) {
	i, ok := st.byKey[key]
	if !ok {
		return
	}
	if !st.writable(i, col) {
		return
	}
	st.rows[i].Cells[col] = ""
	st.emit(Event{Kind: EventUpdate, Key: key, Columns: []string{col}})
}

// DelRange clears every writable cell inside the inclusive rectangle.
func (st *Store) DelRange(r Range) {
	r = r.Normalize()
	visCount := st.schema.VisibleCount()

	for ri := r.Row[0]; ri <= r.Row[1]; ri++ {
		if ri < 0 || ri >= len(st.rows) {
			continue
		}
		row := st.rows[ri]
		var changed []string
		for ci := r.Col[0]; ci <= r.Col[1]; ci++ {
			if ci < 0 || ci >= visCount {
				continue
			}
			name, ok := st.schema.NameAt(ci)
			if !ok {
				continue
			}
			if !st.writable(ri, name) {
				continue
			}
			row.Cells[name] = ""
			changed = append(changed, name)
		}
		if len(changed) > 0 {
			st.emit(Event{Kind: EventUpdate, Key: row.Key, Columns: changed})
		}
	}
}
