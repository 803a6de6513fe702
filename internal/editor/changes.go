// Package editor stages grid mutations for database writeback. A tracker
// subscribes to the row store's change stream and turns cell updates and
// appended rows into parameterized SQL.
package editor

import (
	"fmt"
	"strings"

	"grid-tui/internal/store"
)

// CellEdit represents a staged cell modification.
type CellEdit struct {
	RowPKValues map[string]string
	ColumnName  string
	NewValue    string
}

// RowInsert represents a staged row insertion.
type RowInsert struct {
	Key store.RowKey
}

// ChangeTracker accumulates staged modifications between commits. It is a
// change-stream subscriber: attach it to a store and every mutation the
// grid makes (paste, delete, cell edit, auto-appended rows) is staged.
type ChangeTracker struct {
	table string
	pks   []string
	st    *store.Store

	Edits    []CellEdit
	Inserts  []RowInsert
	inserted map[store.RowKey]bool
}

// NewChangeTracker creates a tracker for one table keyed by the given
// primary key columns.
func NewChangeTracker(table string, pks []string) *ChangeTracker {
	return &ChangeTracker{
		table:    table,
		pks:      pks,
		inserted: make(map[store.RowKey]bool),
	}
}

// Attach subscribes the tracker to a store's change notifications. Primary
// key columns are forced read-only: staged edits capture PK values from the
// row after the mutation, so the key columns themselves must never change.
func (ct *ChangeTracker) Attach(st *store.Store) {
	ct.st = st
	for _, pk := range ct.pks {
		st.Schema().SetEditable(pk, false)
	}
	st.OnChange(ct.record)
}

func (ct *ChangeTracker) record(ev store.Event) {
	switch ev.Kind {
	case store.EventAppend:
		ct.inserted[ev.Key] = true
		ct.Inserts = append(ct.Inserts, RowInsert{Key: ev.Key})
	case store.EventUpdate:
		// Appended rows are written whole at commit time; per-cell edits
		// on them would duplicate the insert.
		if ct.inserted[ev.Key] {
			return
		}
		idx := ct.st.IndexOf(ev.Key)
		row, ok := ct.st.RowAt(idx)
		if !ok {
			return
		}
		pkVals := ct.pkValues(row)
		for _, col := range ev.Columns {
			ct.stageEdit(CellEdit{
				RowPKValues: pkVals,
				ColumnName:  col,
				NewValue:    row.Cells[col],
			})
		}
	}
}

func (ct *ChangeTracker) pkValues(row *store.Row) map[string]string {
	vals := make(map[string]string, len(ct.pks))
	for _, pk := range ct.pks {
		vals[pk] = row.Cells[pk]
	}
	return vals
}

// stageEdit adds a cell edit, replacing any staged edit for the same cell.
func (ct *ChangeTracker) stageEdit(edit CellEdit) {
	for i, e := range ct.Edits {
		if e.ColumnName == edit.ColumnName && pkMatch(e.RowPKValues, edit.RowPKValues) {
			ct.Edits[i].NewValue = edit.NewValue
			return
		}
	}
	ct.Edits = append(ct.Edits, edit)
}

// HasChanges returns whether there are any pending changes.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.Edits) > 0 || len(ct.Inserts) > 0
}

// PendingCount returns total count of pending operations.
func (ct *ChangeTracker) PendingCount() int {
	return len(ct.Edits) + len(ct.Inserts)
}

// Clear removes all staged changes.
func (ct *ChangeTracker) Clear() {
	ct.Edits = nil
	ct.Inserts = nil
	ct.inserted = make(map[store.RowKey]bool)
}

// GenerateSQL generates parameterized statements and their args.
// Order: INSERTs first, then UPDATEs. Empty values insert/update as NULL.
func (ct *ChangeTracker) GenerateSQL() ([]string, [][]interface{}) {
	var queries []string
	var allArgs [][]interface{}

	for _, ins := range ct.Inserts {
		idx := ct.st.IndexOf(ins.Key)
		row, ok := ct.st.RowAt(idx)
		if !ok {
			continue
		}
		cols := make([]string, 0, len(row.Cells))
		placeholders := make([]string, 0, len(row.Cells))
		args := make([]interface{}, 0, len(row.Cells))
		i := 1
		for _, c := range ct.st.Schema().Columns() {
			val := row.Cells[c.Name]
			if val == "" {
				continue
			}
			cols = append(cols, fmt.Sprintf("%q", c.Name))
			placeholders = append(placeholders, fmt.Sprintf("$%d", i))
			args = append(args, val)
			i++
		}
		if len(cols) == 0 {
			continue
		}
		q := fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`,
			ct.table,
			strings.Join(cols, ", "),
			strings.Join(placeholders, ", "))
		queries = append(queries, q)
		allArgs = append(allArgs, args)
	}

	for _, edit := range ct.Edits {
		args := []interface{}{}
		var setClause string
		if edit.NewValue == "" {
			setClause = fmt.Sprintf("%q = NULL", edit.ColumnName)
		} else {
			setClause = fmt.Sprintf("%q = $1", edit.ColumnName)
			args = append(args, edit.NewValue)
		}

		whereParts := make([]string, 0, len(edit.RowPKValues))
		paramIdx := len(args) + 1
		for col, val := range edit.RowPKValues {
			if val == "" {
				whereParts = append(whereParts, fmt.Sprintf("%q IS NULL", col))
			} else {
				whereParts = append(whereParts, fmt.Sprintf("%q = $%d", col, paramIdx))
				args = append(args, val)
				paramIdx++
			}
		}

		q := fmt.Sprintf(`UPDATE %q SET %s WHERE %s`,
			ct.table,
			setClause,
			strings.Join(whereParts, " AND "))
		queries = append(queries, q)
		allArgs = append(allArgs, args)
	}

	return queries, allArgs
}

func pkMatch(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
