package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"grid-tui/internal/theme"
)

// MessageType represents the type of status message.
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgSuccess
	MsgError
)

// StatusBarModel is the context-aware status bar at the bottom.
type StatusBarModel struct {
	styles         theme.Styles
	message        string
	messageType    MessageType
	messageTime    time.Time
	pendingChanges int
	activePane     int
	editMode       bool
	hasSelection   bool
	rowCount       int
	width          int
}

// NewStatusBarModel creates a new status bar.
func NewStatusBarModel(thm theme.Theme) StatusBarModel {
	return StatusBarModel{styles: theme.Compile(thm)}
}

// SetWidth sets the status bar width.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// SetTheme swaps the compiled style set.
func (m *StatusBarModel) SetTheme(thm theme.Theme) {
	m.styles = theme.Compile(thm)
}

// SetMessage sets a status message.
func (m *StatusBarModel) SetMessage(msg string, t MessageType) {
	m.message = msg
	m.messageType = t
	m.messageTime = time.Now()
}

// SetPendingChanges updates the pending changes count.
func (m *StatusBarModel) SetPendingChanges(count int) {
	m.pendingChanges = count
}

// SetActivePane sets which pane is focused (0=columns, 1=grid).
func (m *StatusBarModel) SetActivePane(pane int) {
	m.activePane = pane
}

// SetEditMode sets whether the grid is in cell edit mode.
func (m *StatusBarModel) SetEditMode(editing bool) {
	m.editMode = editing
}

// SetSelection sets whether a range is selected.
func (m *StatusBarModel) SetSelection(active bool) {
	m.hasSelection = active
}

// SetRowCount updates the displayed row count.
func (m *StatusBarModel) SetRowCount(n int) {
	m.rowCount = n
}

// ClearExpiredMessage clears success messages after 3 seconds.
func (m *StatusBarModel) ClearExpiredMessage() {
	if m.messageType == MsgSuccess && time.Since(m.messageTime) > 3*time.Second {
		m.message = ""
	}
}

// View renders the status bar.
func (m StatusBarModel) View() string {
	hints := m.contextHints()

	var rightParts []string
	if m.pendingChanges > 0 {
		rightParts = append(rightParts, fmt.Sprintf("Pending: %d | Ctrl+S to commit", m.pendingChanges))
	}
	if m.rowCount > 0 {
		rightParts = append(rightParts, fmt.Sprintf("%d rows", m.rowCount))
	}
	right := strings.Join(rightParts, " | ")

	if m.message != "" {
		var msgStyle lipgloss.Style
		switch m.messageType {
		case MsgError:
			msgStyle = m.styles.ToolbarError
		case MsgSuccess:
			msgStyle = m.styles.ToolbarOK
		default:
			msgStyle = m.styles.Toolbar
		}
		hints = msgStyle.Render(m.message)
	}

	w := m.width
	if w < 20 {
		w = 20
	}
	gap := w - lipgloss.Width(hints) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	line := hints + strings.Repeat(" ", gap) + right
	return m.styles.Toolbar.Width(w).Render(line)
}

func (m StatusBarModel) contextHints() string {
	if m.editMode {
		return "Type to edit | Tab Next cell | Shift+Tab Prev cell | Enter Save | Esc Cancel"
	}

	switch m.activePane {
	case 0: // column panel
		return "j/k Navigate | Enter Toggle column | Ctrl+B Back to grid"
	case 1: // grid
		if m.hasSelection {
			return "Shift+Arrows Extend | Ctrl+C Copy | Delete Clear | Arrows Deselect"
		}
		return "Arrows Move | Shift Select | Enter Edit | Ctrl+V Paste | Ctrl+B Columns"
	default:
		return "Ctrl+B Switch pane | Ctrl+Q Quit"
	}
}
