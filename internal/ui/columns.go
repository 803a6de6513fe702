package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"grid-tui/internal/schema"
	"grid-tui/internal/theme"
)

// ColumnToggledMsg is sent when a column's visibility is toggled.
type ColumnToggledMsg struct {
	Name   string
	Hidden bool
}

// ColumnPanel is the column visibility sidebar.
type ColumnPanel struct {
	schema  *schema.Schema
	styles  theme.Styles
	cursor  int
	focused bool
	width   int
	height  int
}

// NewColumnPanel creates a panel over the given schema.
func NewColumnPanel(sch *schema.Schema, thm theme.Theme) ColumnPanel {
	return ColumnPanel{
		schema: sch,
		styles: theme.Compile(thm),
	}
}

// SetFocused sets the focus state.
func (m *ColumnPanel) SetFocused(f bool) {
	m.focused = f
}

// Focused returns the focus state.
func (m ColumnPanel) Focused() bool {
	return m.focused
}

// SetSize sets the panel dimensions.
func (m *ColumnPanel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetTheme swaps the compiled style set.
func (m *ColumnPanel) SetTheme(thm theme.Theme) {
	m.styles = theme.Compile(thm)
}

// Init satisfies the tea.Model interface.
func (m ColumnPanel) Init() tea.Cmd {
	return nil
}

// Update handles key events.
func (m ColumnPanel) Update(msg tea.Msg) (ColumnPanel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.schema.Len()-1 {
				m.cursor++
			}
		case "enter", " ":
			cols := m.schema.Columns()
			if m.cursor < len(cols) {
				col := cols[m.cursor]
				hidden := !col.Hidden
				m.schema.SetHidden(col.Name, hidden)
				return m, func() tea.Msg {
					return ColumnToggledMsg{Name: col.Name, Hidden: hidden}
				}
			}
		}
	}
	return m, nil
}

// View renders the panel.
func (m ColumnPanel) View() string {
	borderStyle := m.styles.Frame
	if m.focused {
		borderStyle = m.styles.FocusedFrame
	}

	innerW := m.width - 2
	if innerW < 5 {
		innerW = 5
	}
	innerH := m.height - 2
	if innerH < 1 {
		innerH = 1
	}

	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Columns"))
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render(fmt.Sprintf("  %d visible", m.schema.VisibleCount())))
	b.WriteString("\n")

	linesUsed := 2

	cols := m.schema.Columns()
	for i, c := range cols {
		if linesUsed >= innerH {
			break
		}
		mark := "[x]"
		if c.Hidden {
			mark = "[ ]"
		}
		title := c.Title
		if title == "" {
			title = c.Name
		}
		label := runewidth.Truncate(fmt.Sprintf("%s %s", mark, title), innerW, "…")

		var line string
		switch {
		case i == m.cursor && m.focused:
			line = m.styles.CellFocused.Width(innerW).Render(label)
		case c.Hidden:
			line = m.styles.Dim.Width(innerW).Render(label)
		default:
			line = m.styles.CellNormal.Width(innerW).Render(label)
		}
		b.WriteString(line)
		if i < len(cols)-1 {
			b.WriteString("\n")
		}
		linesUsed++
	}

	for linesUsed < innerH {
		b.WriteString("\n")
		linesUsed++
	}

	content := lipgloss.NewStyle().Width(innerW).Height(innerH).Render(b.String())
	return borderStyle.Width(innerW).Height(innerH).Render(content)
}
