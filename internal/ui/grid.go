package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"grid-tui/internal/clipboard"
	"grid-tui/internal/focus"
	"grid-tui/internal/layout"
	"grid-tui/internal/selection"
	"grid-tui/internal/store"
	"grid-tui/internal/theme"
)

// CellCommittedMsg is sent after the cell editor writes a value through.
type CellCommittedMsg struct {
	Key    store.RowKey
	Column string
}

// GridModel is the grid display surface: it renders the row store through
// the theme styles and hosts the keyboard controller and cell editor.
type GridModel struct {
	store  *store.Store
	focus  *focus.Model
	sel    *selection.Model
	layout *layout.Model
	ctrl   *clipboard.Controller
	styles theme.Styles

	focused   bool
	width     int
	height    int
	rowOffset int
	colOffset int
	colWidths []int

	editing   bool
	editAddr  store.Address
	editInput textinput.Model
}

// NewGridModel wires a grid pane over a row store.
func NewGridModel(st *store.Store, thm theme.Theme) GridModel {
	fm := focus.New(st)
	sm := selection.New(st)
	lm := layout.New(st.RowCount())

	// Keep the layout's row count in step with paste-driven growth.
	st.OnChange(func(ev store.Event) {
		if ev.Kind == store.EventAppend {
			lm.SetRowCount(st.RowCount())
		}
	})

	ti := textinput.New()
	ti.CharLimit = 0
	ti.Prompt = ""

	m := GridModel{
		store:     st,
		focus:     fm,
		sel:       sm,
		layout:    lm,
		ctrl:      clipboard.NewController(st, fm, sm, lm),
		styles:    theme.Compile(thm),
		editInput: ti,
	}
	if key, ok := fm.FirstRowKey(); ok {
		if col, ok := fm.FirstColumn(); ok {
			fm.Focus(key, col)
		}
	}
	m.calcColWidths()
	return m
}

// Controller exposes the keyboard controller, mainly for tests.
func (m GridModel) Controller() *clipboard.Controller {
	return m.ctrl
}

// Store returns the underlying row store.
func (m GridModel) Store() *store.Store {
	return m.store
}

// Focus returns the focus model.
func (m GridModel) Focus() *focus.Model {
	return m.focus
}

// Selection returns the selection model.
func (m GridModel) Selection() *selection.Model {
	return m.sel
}

// SetFocused sets whether the pane receives key events.
func (m *GridModel) SetFocused(f bool) {
	m.focused = f
}

// Focused returns the focus state.
func (m GridModel) Focused() bool {
	return m.focused
}

// SetTheme swaps the compiled style set.
func (m *GridModel) SetTheme(thm theme.Theme) {
	m.styles = theme.Compile(thm)
}

// SetSize sets the pane dimensions and the layout viewport.
func (m *GridModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.layout.SetViewportHeight(m.visibleRowCount())
}

// IsEditing returns whether the cell editor is open.
func (m GridModel) IsEditing() bool {
	return m.editing
}

// RefreshColumns recomputes widths after a visibility change and moves
// focus off a column that is no longer visible.
func (m *GridModel) RefreshColumns() {
	m.calcColWidths()
	if _, col, ok := m.focus.Current(); ok {
		if m.store.Schema().VisibleIndex(col) < 0 {
			key, _, _ := m.focus.Current()
			m.focus.Blur()
			if first, ok := m.focus.FirstColumn(); ok {
				m.focus.Focus(key, first)
			}
		}
	}
	m.sel.Clear()
	if m.colOffset >= m.store.Schema().VisibleCount() {
		m.colOffset = 0
	}
}

func (m *GridModel) calcColWidths() {
	cols := m.store.Schema().VisibleColumns()
	m.colWidths = make([]int, len(cols))
	for i, c := range cols {
		w := runewidth.StringWidth(c.Title)
		if w < 6 {
			w = 6
		}
		for ri := 0; ri < m.store.RowCount(); ri++ {
			val, _ := m.store.ValueAt(ri, c.Name)
			if vw := runewidth.StringWidth(val); vw > w {
				w = vw
			}
		}
		if w > 32 {
			w = 32
		}
		m.colWidths[i] = w
	}
}

// Init satisfies tea.Model.
func (m GridModel) Init() tea.Cmd {
	return nil
}

// Update handles key events and controller messages.
func (m GridModel) Update(msg tea.Msg) (GridModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if m.editing {
			return m.updateEditMode(msg)
		}
		handled, cmd := m.ctrl.Update(msg)
		if handled {
			m.ensureFocusVisible()
			return m, cmd
		}
		return m, nil

	case clipboard.OpenEditorMsg:
		return m.openEditor(msg.Addr), nil

	case clipboard.RevealMsg:
		m.scrollTo(msg.Addr, msg.SkipRow, msg.SkipCol)
		return m, nil

	default:
		// Lock ticks and armed paste deliveries flow through here.
		handled, cmd := m.ctrl.Update(msg)
		if handled {
			m.calcColWidths()
			m.ensureFocusVisible()
		}
		return m, cmd
	}
}

func (m GridModel) openEditor(addr store.Address) GridModel {
	rowIdx := addr.Row
	col, ok := m.store.Schema().ColumnAt(addr.Col)
	if !ok {
		return m
	}
	row, ok := m.store.RowAt(rowIdx)
	if !ok {
		return m
	}
	if !col.Editable || row.Disabled || m.store.IsSpanFollower(rowIdx, col.Name) {
		return m
	}

	val, _ := m.store.ValueAt(rowIdx, col.Name)
	m.editing = true
	m.editAddr = addr
	m.editInput.SetValue(val)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	return m
}

func (m GridModel) updateEditMode(msg tea.KeyMsg) (GridModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		cmd := m.commitEdit()
		m.editing = false
		m.editInput.Blur()
		return m, cmd
	case "esc":
		m.editing = false
		m.editInput.Blur()
		return m, nil
	case "tab":
		cmd := m.commitEdit()
		if addr, ok := m.focus.NextAddress(); ok {
			m.focus.FocusAt(addr)
			m.ensureFocusVisible()
			m = m.openEditor(addr)
		}
		return m, cmd
	case "shift+tab":
		cmd := m.commitEdit()
		if addr, ok := m.focus.PrevAddress(); ok {
			m.focus.FocusAt(addr)
			m.ensureFocusVisible()
			m = m.openEditor(addr)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m *GridModel) commitEdit() tea.Cmd {
	key, ok := m.store.KeyAt(m.editAddr.Row)
	if !ok {
		return nil
	}
	col, ok := m.store.Schema().NameAt(m.editAddr.Col)
	if !ok {
		return nil
	}
	if !m.store.SetValue(key, col, m.editInput.Value()) {
		return nil
	}
	m.calcColWidths()
	return func() tea.Msg {
		return CellCommittedMsg{Key: key, Column: col}
	}
}

func (m *GridModel) ensureFocusVisible() {
	addr, ok := m.focus.Address()
	if !ok {
		return
	}
	m.scrollTo(addr, false, false)
}

// scrollTo adjusts the scroll window so the address is visible. A skip
// flag leaves that axis alone while a whole row or column is highlighted.
func (m *GridModel) scrollTo(addr store.Address, skipRow, skipCol bool) {
	if !skipRow {
		visRows := m.visibleRowCount()
		if addr.Row < m.rowOffset {
			m.rowOffset = addr.Row
		} else if addr.Row >= m.rowOffset+visRows {
			m.rowOffset = addr.Row - visRows + 1
		}
	}
	if !skipCol {
		if addr.Col < m.colOffset {
			m.colOffset = addr.Col
		}
		usedWidth := 0
		for i := m.colOffset; i <= addr.Col && i < len(m.colWidths); i++ {
			usedWidth += m.colWidths[i] + 3
		}
		innerW := m.width - 4
		for usedWidth > innerW && m.colOffset < addr.Col {
			usedWidth -= m.colWidths[m.colOffset] + 3
			m.colOffset++
		}
	}
}

func (m GridModel) visibleRowCount() int {
	h := m.height - 6 // borders, header, separator, scroll line
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the grid pane.
func (m GridModel) View() string {
	frame := m.styles.Frame
	if m.focused {
		frame = m.styles.FocusedFrame
	}

	innerW := m.width - 2
	if innerW < 10 {
		innerW = 10
	}
	innerH := m.height - 2
	if innerH < 3 {
		innerH = 3
	}

	var content string
	if m.store.Schema().VisibleCount() == 0 {
		content = m.styles.Dim.Render("No visible columns")
	} else {
		content = m.renderGrid(innerW, innerH)
	}

	return frame.Width(innerW).Height(innerH).MaxHeight(innerH + 2).Render(content)
}

func (m GridModel) renderGrid(w, h int) string {
	var b strings.Builder

	visibleCols := m.visibleColumnWindow(w)
	focusAddr, hasFocus := m.focus.Address()

	// Header
	headerParts := make([]string, 0, len(visibleCols))
	for _, ci := range visibleCols {
		col, _ := m.store.Schema().ColumnAt(ci)
		title := col.Title
		if title == "" {
			title = col.Name
		}
		headerParts = append(headerParts, m.styles.Header.Render(pad(title, m.colWidths[ci])))
	}
	b.WriteString(strings.Join(headerParts, " | "))
	b.WriteString("\n")

	sepParts := make([]string, 0, len(visibleCols))
	for _, ci := range visibleCols {
		sepParts = append(sepParts, strings.Repeat("─", m.colWidths[ci]))
	}
	b.WriteString(m.styles.Dim.Render(strings.Join(sepParts, "─┼─")))
	b.WriteString("\n")

	visRows := h - 3
	if visRows < 1 {
		visRows = 1
	}
	startRow := m.rowOffset
	endRow := startRow + visRows
	if endRow > m.store.RowCount() {
		endRow = m.store.RowCount()
	}

	for ri := startRow; ri < endRow; ri++ {
		row, _ := m.store.RowAt(ri)
		rowParts := make([]string, 0, len(visibleCols))
		for _, ci := range visibleCols {
			col, _ := m.store.Schema().ColumnAt(ci)
			colW := m.colWidths[ci]
			isCursor := hasFocus && m.focused &&
				ri == focusAddr.Row && ci == focusAddr.Col

			if m.editing && ri == m.editAddr.Row && ci == m.editAddr.Col {
				disp := pad(m.editInput.Value()+"█", colW)
				rowParts = append(rowParts, m.styles.CellEditing.Render(disp))
				continue
			}

			val := ""
			if m.store.IsSpanFollower(ri, col.Name) {
				// Merged cell: the main row shows the value.
			} else {
				val, _ = m.store.ValueAt(ri, col.Name)
				if col.Format != nil {
					val = col.Format(val)
				}
			}

			var style lipgloss.Style
			switch {
			case isCursor:
				style = m.styles.CellFocused
			case m.sel.Contains(ri, ci):
				style = m.styles.Selected
			case row.Disabled:
				style = m.styles.CellDisabled
			case !col.Editable:
				style = m.styles.Dim
			default:
				style = m.styles.CellNormal
			}
			rowParts = append(rowParts, style.Render(pad(sanitizeCell(val), colW)))
		}
		b.WriteString(strings.Join(rowParts, " | "))
		if ri < endRow-1 {
			b.WriteString("\n")
		}
	}

	if m.store.RowCount() > visRows {
		scrollInfo := fmt.Sprintf(" [%d-%d of %d]", startRow+1, endRow, m.store.RowCount())
		b.WriteString("\n" + m.styles.Scrollbar.Render(scrollInfo))
	}

	return b.String()
}

func (m GridModel) visibleColumnWindow(availWidth int) []int {
	if len(m.colWidths) == 0 {
		return nil
	}
	var cols []int
	usedWidth := 0
	for i := m.colOffset; i < len(m.colWidths); i++ {
		needed := m.colWidths[i]
		if len(cols) > 0 {
			needed += 3 // " | " separator
		}
		if usedWidth+needed > availWidth && len(cols) > 0 {
			break
		}
		cols = append(cols, i)
		usedWidth += needed
	}
	return cols
}

func pad(s string, w int) string {
	s = runewidth.Truncate(s, w, "…")
	return runewidth.FillRight(s, w)
}

func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "↵")
	s = strings.ReplaceAll(s, "\n", "↵")
	s = strings.ReplaceAll(s, "\r", "↵")
	s = strings.ReplaceAll(s, "\t", " ")
	return s
}
