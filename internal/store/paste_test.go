package store

import (
	"testing"
)

func TestPasteBasic(t *testing.T) {
	st := testStore()
	// Visible columns: id(0) name(1) qty(2) tag(3). Start at row 2, col 2.
	st.Paste([][]string{
		{"100", "x"},
		{"200", "y"},
	}, Address{Row: 2, Col: 2})

	if got, _ := st.ValueAt(2, "qty"); got != "100" {
		t.Errorf("row 2 qty = %q, want 100", got)
	}
	if got, _ := st.ValueAt(2, "tag"); got != "x" {
		t.Errorf("row 2 tag = %q, want x", got)
	}
}

func TestPasteDropsColumnsPastVisibleEnd(t *testing.T) {
	st := testStore()
	// Three cells starting at the last visible column: two are dropped.
	st.Paste([][]string{{"kept", "dropped", "dropped"}}, Address{Row: 2, Col: 3})

	if got, _ := st.ValueAt(2, "tag"); got != "kept" {
		t.Errorf("tag = %q, want kept", got)
	}
	// The hidden note column must never absorb overflow.
	if got, _ := st.ValueAt(2, "note"); got != "" {
		t.Errorf("hidden column received pasted value %q", got)
	}
}

func TestPasteAppendsRows(t *testing.T) {
	st := testStore()
	st.Paste([][]string{
		{"v1"},
		{"v2"},
		{"v3"},
	}, Address{Row: 3, Col: 3})

	if st.RowCount() != 6 {
		t.Fatalf("row count = %d, want 6", st.RowCount())
	}
	// Row 3 is disabled so its cell is skipped, but appended rows accept.
	if got, _ := st.ValueAt(3, "tag"); got != "d" {
		t.Errorf("disabled row tag = %q, want untouched d", got)
	}
	if got, _ := st.ValueAt(4, "tag"); got != "v2" {
		t.Errorf("appended row tag = %q, want v2", got)
	}
	if got, _ := st.ValueAt(5, "tag"); got != "v3" {
		t.Errorf("appended row tag = %q, want v3", got)
	}
	// Appended rows carry schema defaults for untouched columns.
	if got, _ := st.ValueAt(4, "qty"); got != "0" {
		t.Errorf("appended row qty = %q, want default 0", got)
	}
}

func TestPasteSkipsExcludedCells(t *testing.T) {
	st := testStore()
	// Column 0 is the read-only id, column 1 the spanned name.
	st.Paste([][]string{
		{"X", "Y", "Z"},
		{"X", "Y", "Z"},
	}, Address{Row: 0, Col: 0})

	if got, _ := st.ValueAt(0, "id"); got != "1" {
		t.Errorf("read-only id overwritten: %q", got)
	}
	if got, _ := st.ValueAt(0, "name"); got != "Y" {
		t.Errorf("span owner name = %q, want Y", got)
	}
	// Row 1 name is a follower: it mirrors the owner, never takes the write.
	if got := st.rows[1].Cells["name"]; got != "" {
		t.Errorf("follower cell stored %q directly", got)
	}
	if got, _ := st.ValueAt(1, "qty"); got != "Z" {
		t.Errorf("row 1 qty = %q, want Z", got)
	}
}

func TestPasteInvalidOrigin(t *testing.T) {
	st := testStore()
	before := st.RowCount()

	st.Paste(nil, Address{})
	st.Paste([][]string{{"x"}}, Address{Row: -1, Col: 0})
	st.Paste([][]string{{"x"}}, Address{Row: 0, Col: -1})
	st.Paste([][]string{{"x"}}, Address{Row: 0, Col: 4})

	if st.RowCount() != before {
		t.Errorf("invalid paste changed row count")
	}
	if got, _ := st.ValueAt(0, "id"); got != "1" {
		t.Errorf("invalid paste changed data")
	}
}

func TestPasteEmitsOneEventPerAffectedRow(t *testing.T) {
	st := testStore()
	var updates []Event
	st.OnChange(func(ev Event) {
		if ev.Kind == EventUpdate {
			updates = append(updates, ev)
		}
	})

	st.Paste([][]string{
		{"a", "b"},
		{"c", "d"},
	}, Address{Row: 1, Col: 2})

	if len(updates) != 2 {
		t.Fatalf("got %d update events, want 2", len(updates))
	}
	if len(updates[0].Columns) != 2 {
		t.Errorf("first event columns = %v, want two", updates[0].Columns)
	}
}

func TestDelHonorsExclusions(t *testing.T) {
	st := testStore()
	key0, _ := st.KeyAt(0)
	key3, _ := st.KeyAt(3)

	st.Del(key0, "id")
	if got, _ := st.ValueAt(0, "id"); got != "1" {
		t.Error("delete cleared a read-only cell")
	}

	st.Del(key3, "qty")
	if got, _ := st.ValueAt(3, "qty"); got != "40" {
		t.Error("delete cleared a disabled row cell")
	}

	st.Del(key0, "qty")
	if got, _ := st.ValueAt(0, "qty"); got != "" {
		t.Error("delete left a writable cell intact")
	}
}

func TestDelRangeClearsWritableCells(t *testing.T) {
	st := testStore()
	// Corners intentionally reversed; DelRange normalizes.
	st.DelRange(Range{Row: [2]int{2, 0}, Col: [2]int{3, 0}})

	if got, _ := st.ValueAt(0, "id"); got != "1" {
		t.Error("read-only column cleared")
	}
	if got, _ := st.ValueAt(0, "name"); got != "" {
		t.Error("span owner not cleared")
	}
	if got, _ := st.ValueAt(2, "qty"); got != "" {
		t.Error("writable cell not cleared")
	}
}
