package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"grid-tui/internal/app"
	"grid-tui/internal/config"
	"grid-tui/internal/db"
	"grid-tui/internal/editor"
	"grid-tui/internal/schema"
	"grid-tui/internal/store"
	"grid-tui/internal/theme"
)

func main() {
	opts, _ := config.Load()

	// Command line overrides: grid-tui [postgres-uri [table]]
	if len(os.Args) > 1 {
		opts.URI = os.Args[1]
	}
	if len(os.Args) > 2 {
		opts.Table = os.Args[2]
	}

	thm := theme.Preset(opts.Theme)

	var st *store.Store
	var database *db.DB
	var changes *editor.ChangeTracker
	table := opts.Table

	if opts.URI != "" {
		var err error
		st, database, changes, table, err = openTable(opts.URI, opts.Table)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer database.Close()
		opts.Table = table
		opts.Save()
	} else {
		st = sampleStore()
		table = "sample"
	}

	appModel := app.NewModel(st, thm, database, changes, table)
	p := tea.NewProgram(appModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openTable connects to Postgres and loads one table into a store with a
// change tracker attached for writeback.
func openTable(uri, table string) (*store.Store, *db.DB, *editor.ChangeTracker, string, error) {
	database, err := db.ConnectURI(uri)
	if err != nil {
		return nil, nil, nil, "", err
	}

	if table == "" {
		tables, err := database.ListTables()
		if err != nil {
			database.Close()
			return nil, nil, nil, "", fmt.Errorf("failed to list tables: %w", err)
		}
		if len(tables) == 0 {
			database.Close()
			return nil, nil, nil, "", fmt.Errorf("database has no tables")
		}
		table = tables[0]
	}

	data, err := database.LoadTable(table)
	if err != nil {
		database.Close()
		return nil, nil, nil, "", fmt.Errorf("failed to load %s: %w", table, err)
	}

	sch, err := schema.New(data.Columns)
	if err != nil {
		database.Close()
		return nil, nil, nil, "", err
	}
	st := store.New(sch, data.Rows)

	changes := editor.NewChangeTracker(table, data.PrimaryKeys)
	changes.Attach(st)

	return st, database, changes, table, nil
}

// sampleStore builds an in-memory dataset for browsing without a database.
func sampleStore() *store.Store {
	sch := schema.MustNew([]schema.Column{
		{Name: "id", Title: "ID", Editable: false, EditType: schema.EditNumber},
		{Name: "region", Title: "Region", Editable: true, EditType: schema.EditText},
		{Name: "city", Title: "City", Editable: true, EditType: schema.EditText},
		{Name: "units", Title: "Units", Editable: true, EditType: schema.EditNumber, Default: "0"},
		{Name: "active", Title: "Active", Editable: true, EditType: schema.EditCheckbox, Default: "true"},
		{Name: "notes", Title: "Notes", Editable: true, EditType: schema.EditText, Hidden: true},
	})

	rows := []*store.Row{
		{Cells: map[string]string{"id": "1", "region": "North", "city": "Oslo", "units": "42", "active": "true"},
			Span: map[string]int{"region": 2}},
		{Cells: map[string]string{"id": "2", "city": "Bergen", "units": "17", "active": "true"}},
		{Cells: map[string]string{"id": "3", "region": "South", "city": "Rome", "units": "88", "active": "false"}},
		{Cells: map[string]string{"id": "4", "region": "South", "city": "Naples", "units": "5", "active": "true"},
			Disabled: true},
		{Cells: map[string]string{"id": "5", "region": "West", "city": "Lisbon", "units": "23", "active": "true"}},
	}

	return store.New(sch, rows)
}
