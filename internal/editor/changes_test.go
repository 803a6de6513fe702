package editor

import (
	"strings"
	"testing"

	"grid-tui/internal/schema"
	"grid-tui/internal/store"
)

func trackedStore() (*store.Store, *ChangeTracker) {
	sch := schema.MustNew([]schema.Column{
		{Name: "id", Editable: false},
		{Name: "name", Editable: true},
		{Name: "qty", Editable: true, Default: "0"},
	})
	st := store.New(sch, []*store.Row{
		{Cells: map[string]string{"id": "1", "name": "alpha", "qty": "10"}},
		{Cells: map[string]string{"id": "2", "name": "beta", "qty": "20"}},
	})
	ct := NewChangeTracker("items", []string{"id"})
	ct.Attach(st)
	return st, ct
}

func TestEditStaging(t *testing.T) {
	st, ct := trackedStore()
	key, _ := st.KeyAt(0)

	st.SetValue(key, "name", "gamma")

	if !ct.HasChanges() || ct.PendingCount() != 1 {
		t.Fatalf("pending = %d, want 1", ct.PendingCount())
	}
	e := ct.Edits[0]
	if e.ColumnName != "name" || e.NewValue != "gamma" || e.RowPKValues["id"] != "1" {
		t.Errorf("staged edit = %+v", e)
	}
}

func TestEditDeduplication(t *testing.T) {
	st, ct := trackedStore()
	key, _ := st.KeyAt(0)

	st.SetValue(key, "name", "first")
	st.SetValue(key, "name", "second")

	if len(ct.Edits) != 1 {
		t.Fatalf("edits = %d, want 1 after dedupe", len(ct.Edits))
	}
	if ct.Edits[0].NewValue != "second" {
		t.Errorf("staged value = %q, want latest write", ct.Edits[0].NewValue)
	}
}

func TestAppendedRowsStageAsInsertsOnly(t *testing.T) {
	st, ct := trackedStore()

	row := st.AppendRow()
	st.SetValue(row.Key, "name", "new")

	if len(ct.Inserts) != 1 {
		t.Fatalf("inserts = %d, want 1", len(ct.Inserts))
	}
	if len(ct.Edits) != 0 {
		t.Errorf("edits on an inserted row must fold into the insert, got %d", len(ct.Edits))
	}
}

func TestGenerateSQL(t *testing.T) {
	st, ct := trackedStore()
	key, _ := st.KeyAt(0)

	row := st.AppendRow()
	st.SetValue(row.Key, "name", "fresh")
	st.SetValue(key, "qty", "")

	queries, args := ct.GenerateSQL()
	if len(queries) != 2 || len(args) != 2 {
		t.Fatalf("got %d queries, want insert + update", len(queries))
	}

	if !strings.HasPrefix(queries[0], `INSERT INTO "items"`) {
		t.Errorf("first query = %q, want INSERT", queries[0])
	}
	if !strings.Contains(queries[0], `"name"`) {
		t.Errorf("insert should include the written column: %q", queries[0])
	}

	if !strings.HasPrefix(queries[1], `UPDATE "items"`) {
		t.Errorf("second query = %q, want UPDATE", queries[1])
	}
	// Empty values are written as NULL without a parameter.
	if !strings.Contains(queries[1], `"qty" = NULL`) {
		t.Errorf("empty value should update to NULL: %q", queries[1])
	}
	if len(args[1]) != 1 || args[1][0] != "1" {
		t.Errorf("update args = %v, want only the pk value", args[1])
	}
}

func TestAttachForcesPrimaryKeyReadOnly(t *testing.T) {
	sch := schema.MustNew([]schema.Column{
		{Name: "id", Editable: true},
		{Name: "name", Editable: true},
	})
	st := store.New(sch, []*store.Row{
		{Cells: map[string]string{"id": "1", "name": "alpha"}},
	})
	ct := NewChangeTracker("items", []string{"id"})
	ct.Attach(st)

	key, _ := st.KeyAt(0)
	if st.SetValue(key, "id", "2") {
		t.Fatal("primary key column should be read-only after attach")
	}
	if got, _ := st.Value(key, "id"); got != "1" {
		t.Errorf("id = %q, want unchanged", got)
	}
	if ct.HasChanges() {
		t.Error("rejected write must not stage an edit")
	}
}

func TestClearResetsState(t *testing.T) {
	st, ct := trackedStore()
	key, _ := st.KeyAt(1)
	st.SetValue(key, "name", "x")
	st.AppendRow()

	ct.Clear()
	if ct.HasChanges() || ct.PendingCount() != 0 {
		t.Error("cleared tracker should report no changes")
	}

	// After clear, the previously inserted row stages plain edits again.
	st.SetValue(key, "qty", "5")
	if len(ct.Edits) != 1 {
		t.Errorf("post-clear edit not staged")
	}
}
