package db

import (
	"context"
	"fmt"
	"time"

	"grid-tui/internal/schema"
	"grid-tui/internal/store"
)

// TableData is a Postgres table shaped for the grid: a column schema, the
// row records, and the primary key columns used for writeback.
type TableData struct {
	Columns     []schema.Column
	Rows        []*store.Row
	PrimaryKeys []string
}

// ListTables returns all public base tables sorted by name.
func (d *DB) ListTables() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := d.Conn.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// primaryKeys returns the primary key column names for a table.
func (d *DB) primaryKeys(ctx context.Context, tableName string) ([]string, error) {
	rows, err := d.Conn.Query(ctx, `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		  AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_name = $1
		  AND tc.table_schema = 'public'
		ORDER BY kcu.ordinal_position
	`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pks []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, err
		}
		pks = append(pks, col)
	}
	return pks, rows.Err()
}

// columnSchema reads information_schema column metadata and maps it to
// grid columns: the declared default feeds auto-appended rows, the data
// type picks the edit type, and primary key columns stay read-only so
// writeback rows keep a stable identity.
func (d *DB) columnSchema(ctx context.Context, tableName string, pks []string) ([]schema.Column, error) {
	rows, err := d.Conn.Query(ctx, `
		SELECT column_name, data_type, column_default
		FROM information_schema.columns
		WHERE table_name = $1
		  AND table_schema = 'public'
		ORDER BY ordinal_position
	`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pkSet := make(map[string]bool, len(pks))
	for _, pk := range pks {
		pkSet[pk] = true
	}

	var cols []schema.Column
	for rows.Next() {
		var name, dataType string
		var colDefault *string
		if err := rows.Scan(&name, &dataType, &colDefault); err != nil {
			return nil, err
		}
		c := schema.Column{
			Name:     name,
			Title:    name,
			Editable: !pkSet[name],
			EditType: editTypeFor(dataType),
		}
		if colDefault != nil {
			c.Default = *colDefault
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func editTypeFor(dataType string) schema.EditType {
	switch dataType {
	case "smallint", "integer", "bigint", "numeric", "real", "double precision":
		return schema.EditNumber
	case "boolean":
		return schema.EditCheckbox
	default:
		return schema.EditText
	}
}

// LoadTable reads a table's schema and rows into grid form.
func (d *DB) LoadTable(tableName string) (*TableData, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pks, err := d.primaryKeys(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("primary keys: %w", err)
	}
	cols, err := d.columnSchema(ctx, tableName, pks)
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %q has no columns", tableName)
	}

	rows, err := d.Conn.Query(ctx, fmt.Sprintf(`SELECT * FROM %q LIMIT 500`, tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var records []*store.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		cells := make(map[string]string, len(values))
		for i, v := range values {
			if i >= len(fields) {
				break
			}
			if v == nil {
				cells[fields[i].Name] = ""
			} else {
				cells[fields[i].Name] = fmt.Sprintf("%v", v)
			}
		}
		records = append(records, &store.Row{Cells: cells})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &TableData{Columns: cols, Rows: records, PrimaryKeys: pks}, nil
}
