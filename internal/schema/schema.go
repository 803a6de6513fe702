package schema

import "fmt"

// EditType describes how a column's cells are edited.
type EditType string

const (
	EditText     EditType = "text"
	EditNumber   EditType = "number"
	EditCheckbox EditType = "checkbox"
	EditSelect   EditType = "select"
)

// Column holds static per-column metadata.
type Column struct {
	Name     string
	Title    string
	Editable bool
	EditType EditType
	Hidden   bool
	Default  string
	// Format renders a stored value for display/copy. Nil means raw value.
	Format func(string) string
}

// Schema is an ordered set of columns with a derived visible-index mapping.
// Positional addressing used by paste and selection only ever sees visible
// columns; hidden columns are excluded from the index sequence entirely.
type Schema struct {
	columns []Column
	byName  map[string]int
	visible []int // visible position -> columns index
}

// New builds a schema from an ordered column list. Column names must be unique.
func New(columns []Column) (*Schema, error) {
	s := &Schema{
		columns: make([]Column, len(columns)),
		byName:  make(map[string]int, len(columns)),
	}
	copy(s.columns, columns)
	for i, c := range s.columns {
		if c.Name == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		if _, dup := s.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		s.byName[c.Name] = i
	}
	s.rebuildVisible()
	return s, nil
}

// MustNew is New for static column lists known to be valid.
func MustNew(columns []Column) *Schema {
	s, err := New(columns)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) rebuildVisible() {
	s.visible = s.visible[:0]
	for i, c := range s.columns {
		if !c.Hidden {
			s.visible = append(s.visible, i)
		}
	}
}

// Len returns the total column count, hidden included.
func (s *Schema) Len() int {
	return len(s.columns)
}

// VisibleCount returns the number of non-hidden columns.
func (s *Schema) VisibleCount() int {
	return len(s.visible)
}

// ColumnAt resolves a visible position to its column.
func (s *Schema) ColumnAt(visIdx int) (Column, bool) {
	if visIdx < 0 || visIdx >= len(s.visible) {
		return Column{}, false
	}
	return s.columns[s.visible[visIdx]], true
}

// NameAt resolves a visible position to a column name.
func (s *Schema) NameAt(visIdx int) (string, bool) {
	c, ok := s.ColumnAt(visIdx)
	return c.Name, ok
}

// VisibleIndex returns the visible position of a column, or -1 if the
// column is hidden or unknown.
func (s *Schema) VisibleIndex(name string) int {
	ci, ok := s.byName[name]
	if !ok {
		return -1
	}
	for vi, idx := range s.visible {
		if idx == ci {
			return vi
		}
	}
	return -1
}

// Column looks up a column by name.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// Has reports whether a column with the given name exists.
func (s *Schema) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// SetHidden toggles a column's visibility and rebuilds the index mapping.
func (s *Schema) SetHidden(name string, hidden bool) {
	i, ok := s.byName[name]
	if !ok {
		return
	}
	s.columns[i].Hidden = hidden
	s.rebuildVisible()
}

// SetEditable toggles whether a column accepts writes.
func (s *Schema) SetEditable(name string, editable bool) {
	if i, ok := s.byName[name]; ok {
		s.columns[i].Editable = editable
	}
}

// VisibleColumns returns the visible columns in display order.
func (s *Schema) VisibleColumns() []Column {
	cols := make([]Column, 0, len(s.visible))
	for _, idx := range s.visible {
		cols = append(cols, s.columns[idx])
	}
	return cols
}

// Columns returns all columns in schema order, hidden included.
func (s *Schema) Columns() []Column {
	cols := make([]Column, len(s.columns))
	copy(cols, s.columns)
	return cols
}
