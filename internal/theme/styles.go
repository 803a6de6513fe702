package theme

import "github.com/charmbracelet/lipgloss"

// Styles is a theme compiled into the lipgloss styles the grid renders
// with.
type Styles struct {
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style
	Header       lipgloss.Style
	CellNormal   lipgloss.Style
	CellFocused  lipgloss.Style
	CellEditing  lipgloss.Style
	CellDisabled lipgloss.Style
	CellInvalid  lipgloss.Style
	Selected     lipgloss.Style
	Toolbar      lipgloss.Style
	ToolbarError lipgloss.Style
	ToolbarOK    lipgloss.Style
	Scrollbar    lipgloss.Style
	Dim          lipgloss.Style
}

// color falls back to the default preset when a property is unset.
func color(value, fallback string) lipgloss.Color {
	if value == "" {
		return lipgloss.Color(fallback)
	}
	return lipgloss.Color(value)
}

// Compile turns a theme into a style set.
func Compile(t Theme) Styles {
	def := Default()

	s := Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(t.Grid.Border, def.Grid.Border)),
		FocusedFrame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(t.Cell.Focused.Border, def.Cell.Focused.Border)),
		Header: lipgloss.NewStyle().
			Foreground(color(t.Cell.Header.Text, def.Cell.Header.Text)).
			Bold(true),
		CellNormal: lipgloss.NewStyle().
			Foreground(color(t.Cell.Normal.Text, def.Cell.Normal.Text)),
		CellFocused: lipgloss.NewStyle().Reverse(true),
		CellEditing: lipgloss.NewStyle().
			Background(color(t.Selection.Background, def.Selection.Background)).
			Foreground(color(t.Cell.Editable.Text, def.Cell.Editable.Text)).
			Bold(true),
		CellDisabled: lipgloss.NewStyle().
			Foreground(color(t.Cell.Disabled.Text, def.Cell.Disabled.Text)).
			Faint(true),
		CellInvalid: lipgloss.NewStyle().
			Foreground(color(t.Cell.Invalid.Text, def.Cell.Invalid.Text)),
		Selected: lipgloss.NewStyle().
			Background(color(t.Selection.Background, def.Selection.Background)),
		Toolbar: lipgloss.NewStyle().
			Background(color(t.Toolbar.Background, def.Toolbar.Background)).
			Foreground(color(t.Toolbar.Text, def.Toolbar.Text)).
			Padding(0, 1),
		Scrollbar: lipgloss.NewStyle().
			Foreground(color(t.Scrollbar.Thumb, def.Scrollbar.Thumb)),
		Dim: lipgloss.NewStyle().
			Foreground(color(t.Cell.Disabled.Text, def.Cell.Disabled.Text)),
	}
	if t.Cell.Normal.Background != "" {
		s.CellNormal = s.CellNormal.Background(lipgloss.Color(t.Cell.Normal.Background))
	}
	s.ToolbarError = s.Toolbar.Foreground(color(t.Cell.Invalid.Text, def.Cell.Invalid.Text))
	s.ToolbarOK = s.Toolbar.Foreground(color(t.Cell.Header.Text, def.Cell.Header.Text))
	return s
}
