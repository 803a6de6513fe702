package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grid-tui/internal/db"
	"grid-tui/internal/editor"
	"grid-tui/internal/schema"
	"grid-tui/internal/store"
	"grid-tui/internal/theme"
	"grid-tui/internal/ui"
)

// Pane represents which pane is focused.
type Pane int

const (
	ColumnsPane Pane = iota
	GridPane
)

// tickMsg is sent to clear expired status messages.
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

// commitResultMsg carries the database writeback result.
type commitResultMsg struct {
	err   error
	count int
}

// reloadResultMsg carries freshly loaded table data.
type reloadResultMsg struct {
	data *db.TableData
	err  error
}

// Model is the root Bubble Tea model.
type Model struct {
	activePane Pane
	columns    ui.ColumnPanel
	grid       ui.GridModel
	statusbar  ui.StatusBarModel
	db         *db.DB
	changes    *editor.ChangeTracker
	table      string
	theme      theme.Theme
	width      int
	height     int
}

// NewModel creates the root app model. The database and change tracker are
// nil when browsing an in-memory dataset.
func NewModel(st *store.Store, thm theme.Theme, database *db.DB, changes *editor.ChangeTracker, table string) Model {
	grid := ui.NewGridModel(st, thm)
	grid.SetFocused(true)

	columns := ui.NewColumnPanel(st.Schema(), thm)

	statusbar := ui.NewStatusBarModel(thm)
	statusbar.SetActivePane(1)
	statusbar.SetRowCount(st.RowCount())

	return Model{
		activePane: GridPane,
		columns:    columns,
		grid:       grid,
		statusbar:  statusbar,
		db:         database,
		changes:    changes,
		table:      table,
		theme:      thm,
	}
}

// Init starts the app.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySizes()
		return m, nil

	case tickMsg:
		m.statusbar.ClearExpiredMessage()
		if m.changes != nil {
			m.statusbar.SetPendingChanges(m.changes.PendingCount())
		}
		m.statusbar.SetRowCount(m.grid.Store().RowCount())
		m.statusbar.SetSelection(m.grid.Selection().HasSelection())
		return m, tickCmd()

	case tea.KeyMsg:
		// The cell editor owns the keyboard while open.
		if m.grid.IsEditing() {
			var cmd tea.Cmd
			m.grid, cmd = m.grid.Update(msg)
			m.statusbar.SetEditMode(m.grid.IsEditing())
			return m, cmd
		}

		// Global shortcuts
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "ctrl+b":
			m.togglePane()
			return m, nil
		case "ctrl+s":
			if m.changes != nil && m.changes.HasChanges() {
				m.statusbar.SetMessage("Committing...", ui.MsgInfo)
				return m, m.commitChanges()
			}
			return m, nil
		case "ctrl+r":
			if m.db != nil {
				m.statusbar.SetMessage("Reloading...", ui.MsgInfo)
				return m, m.reloadTable()
			}
			return m, nil
		}

		var cmd tea.Cmd
		switch m.activePane {
		case ColumnsPane:
			m.columns, cmd = m.columns.Update(msg)
		case GridPane:
			m.grid, cmd = m.grid.Update(msg)
			m.statusbar.SetEditMode(m.grid.IsEditing())
			m.statusbar.SetSelection(m.grid.Selection().HasSelection())
		}
		return m, cmd

	case ui.ColumnToggledMsg:
		m.grid.RefreshColumns()
		if msg.Hidden {
			m.statusbar.SetMessage(fmt.Sprintf("Hid column %s", msg.Name), ui.MsgSuccess)
		} else {
			m.statusbar.SetMessage(fmt.Sprintf("Showing column %s", msg.Name), ui.MsgSuccess)
		}
		return m, nil

	case ui.CellCommittedMsg:
		if m.changes != nil {
			m.statusbar.SetPendingChanges(m.changes.PendingCount())
		}
		m.statusbar.SetEditMode(m.grid.IsEditing())
		return m, nil

	case commitResultMsg:
		if msg.err != nil {
			m.statusbar.SetMessage("Commit failed: "+msg.err.Error(), ui.MsgError)
		} else {
			m.statusbar.SetMessage(fmt.Sprintf("Committed %d changes", msg.count), ui.MsgSuccess)
			m.changes.Clear()
			m.statusbar.SetPendingChanges(0)
		}
		return m, nil

	case reloadResultMsg:
		if msg.err != nil {
			m.statusbar.SetMessage("Reload failed: "+msg.err.Error(), ui.MsgError)
			return m, nil
		}
		sch, err := schema.New(msg.data.Columns)
		if err != nil {
			m.statusbar.SetMessage("Reload failed: "+err.Error(), ui.MsgError)
			return m, nil
		}
		st := store.New(sch, msg.data.Rows)
		changes := editor.NewChangeTracker(m.table, msg.data.PrimaryKeys)
		changes.Attach(st)
		m.changes = changes
		m.grid = ui.NewGridModel(st, m.theme)
		m.grid.SetFocused(m.activePane == GridPane)
		m.columns = ui.NewColumnPanel(st.Schema(), m.theme)
		m.columns.SetFocused(m.activePane == ColumnsPane)
		m.applySizes()
		m.statusbar.SetPendingChanges(0)
		m.statusbar.SetRowCount(st.RowCount())
		m.statusbar.SetMessage(fmt.Sprintf("Reloaded %d rows from %s", st.RowCount(), m.table), ui.MsgSuccess)
		return m, nil
	}

	// Lock ticks, paste deliveries and editor requests flow to the grid.
	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	m.statusbar.SetEditMode(m.grid.IsEditing())
	return m, cmd
}

// applySizes pushes the computed pane dimensions into the stored models so
// scroll math sees the real viewport outside of View.
func (m *Model) applySizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	panelW := 26
	gridW := m.width - panelW - 1

	availH := m.height - 3 // top bar + status bar + spacing
	if availH < 6 {
		availH = 6
	}

	m.columns.SetSize(panelW, availH)
	m.grid.SetSize(gridW, availH)
	m.statusbar.SetWidth(m.width)
}

func (m *Model) togglePane() {
	if m.activePane == GridPane {
		m.activePane = ColumnsPane
		m.statusbar.SetActivePane(0)
	} else {
		m.activePane = GridPane
		m.statusbar.SetActivePane(1)
	}
	m.columns.SetFocused(m.activePane == ColumnsPane)
	m.grid.SetFocused(m.activePane == GridPane)
}

// reloadTable re-reads the table, discarding local state. A dead connection
// is re-established first.
func (m Model) reloadTable() tea.Cmd {
	database := m.db
	table := m.table
	return func() tea.Msg {
		if !database.IsConnected() {
			if err := database.Reconnect(); err != nil {
				return reloadResultMsg{err: err}
			}
		}
		data, err := database.LoadTable(table)
		return reloadResultMsg{data: data, err: err}
	}
}

// commitChanges writes staged modifications back to the database.
func (m Model) commitChanges() tea.Cmd {
	changes := m.changes
	database := m.db
	return func() tea.Msg {
		count := changes.PendingCount()
		queries, args := changes.GenerateSQL()
		if err := database.Commit(queries, args); err != nil {
			return commitResultMsg{err: err}
		}
		return commitResultMsg{count: count}
	}
}

// View renders the full layout.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	title := m.table
	if title == "" {
		title = "in-memory"
	}
	if m.db != nil {
		title = fmt.Sprintf("%s @ %s", title, m.db.ConnInfo())
	}
	topBar := lipgloss.NewStyle().Bold(true).Width(m.width - 2).Render(" " + title)

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, m.columns.View(), m.grid.View())

	return lipgloss.JoinVertical(lipgloss.Left, topBar, mainArea, m.statusbar.View())
}
