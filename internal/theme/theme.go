// Package theme defines the grid's theming API: nested option groups of
// visual properties that compile into the lipgloss styles the display
// surface renders with.
package theme

import (
	"encoding/json"
	"fmt"
	"os"
)

// GridOptions styles the outer grid frame.
type GridOptions struct {
	Background string `json:"background,omitempty"`
	Border     string `json:"border,omitempty"`
	Text       string `json:"text,omitempty"`
}

// SelectionOptions styles the selected range overlay.
type SelectionOptions struct {
	Background string `json:"background,omitempty"`
	Border     string `json:"border,omitempty"`
}

// ToolbarOptions styles the status/toolbar strip.
type ToolbarOptions struct {
	Background string `json:"background,omitempty"`
	Border     string `json:"border,omitempty"`
	Text       string `json:"text,omitempty"`
}

// ScrollbarOptions styles scroll indicators.
type ScrollbarOptions struct {
	Background string `json:"background,omitempty"`
	Thumb      string `json:"thumb,omitempty"`
	Active     string `json:"active,omitempty"`
}

// CellOptions styles one cell state.
type CellOptions struct {
	Background string `json:"background,omitempty"`
	Border     string `json:"border,omitempty"`
	Text       string `json:"text,omitempty"`
}

// CellGroup holds per-state cell option groups.
type CellGroup struct {
	Normal   CellOptions `json:"normal,omitempty"`
	Header   CellOptions `json:"header,omitempty"`
	Focused  CellOptions `json:"focused,omitempty"`
	Editable CellOptions `json:"editable,omitempty"`
	Disabled CellOptions `json:"disabled,omitempty"`
	Invalid  CellOptions `json:"invalid,omitempty"`
}

// Theme is the full nested theming configuration.
type Theme struct {
	Name      string           `json:"name,omitempty"`
	Grid      GridOptions      `json:"grid,omitempty"`
	Selection SelectionOptions `json:"selection,omitempty"`
	Toolbar   ToolbarOptions   `json:"toolbar,omitempty"`
	Scrollbar ScrollbarOptions `json:"scrollbar,omitempty"`
	Cell      CellGroup        `json:"cell,omitempty"`
}

// Default is the stock dark theme.
func Default() Theme {
	return Theme{
		Name: "default",
		Grid: GridOptions{
			Border: "#555555",
			Text:   "#cccccc",
		},
		Selection: SelectionOptions{
			Background: "#1a3a2a",
		},
		Toolbar: ToolbarOptions{
			Background: "#333333",
			Text:       "#cccccc",
		},
		Scrollbar: ScrollbarOptions{
			Background: "#333333",
			Thumb:      "#555555",
			Active:     "#4ecca3",
		},
		Cell: CellGroup{
			Normal:   CellOptions{Text: "#cccccc"},
			Header:   CellOptions{Text: "#4ecca3"},
			Focused:  CellOptions{Border: "#4ecca3"},
			Editable: CellOptions{Text: "#ffffff"},
			Disabled: CellOptions{Text: "#555555"},
			Invalid:  CellOptions{Text: "#e94560"},
		},
	}
}

// Striped alternates row backgrounds.
func Striped() Theme {
	t := Default()
	t.Name = "striped"
	t.Cell.Normal.Background = "#1c1c1c"
	t.Grid.Background = "#121212"
	return t
}

// Clean drops most chrome for minimal contrast.
func Clean() Theme {
	t := Default()
	t.Name = "clean"
	t.Grid.Border = "#333333"
	t.Cell.Header.Text = "#cccccc"
	t.Selection.Background = "#2a2a2a"
	return t
}

// Preset returns a named built-in theme, falling back to the default.
func Preset(name string) Theme {
	switch name {
	case "striped":
		return Striped()
	case "clean":
		return Clean()
	default:
		return Default()
	}
}

// Load reads a theme file. Unset properties inherit the default preset.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read theme: %w", err)
	}
	t := Default()
	if err := json.Unmarshal(data, &t); err != nil {
		return Default(), fmt.Errorf("parse theme: %w", err)
	}
	return t, nil
}

// Save writes a theme file.
func (t Theme) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal theme: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
