package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"grid-tui/internal/schema"
	"grid-tui/internal/theme"
)

func testPanel() (ColumnPanel, *schema.Schema) {
	sch := schema.MustNew([]schema.Column{
		{Name: "id", Title: "ID"},
		{Name: "name", Title: "Name"},
		{Name: "notes", Title: "Notes", Hidden: true},
	})
	p := NewColumnPanel(sch, theme.Default())
	p.SetFocused(true)
	p.SetSize(30, 12)
	return p, sch
}

func TestToggleEmitsMessage(t *testing.T) {
	p, sch := testPanel()

	// Cursor down twice onto the hidden notes column, then toggle.
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("toggle should emit a message")
	}
	msg, ok := cmd().(ColumnToggledMsg)
	if !ok {
		t.Fatalf("got %T, want ColumnToggledMsg", cmd())
	}
	if msg.Name != "notes" || msg.Hidden {
		t.Errorf("msg = %+v, want notes unhidden", msg)
	}
	if sch.VisibleIndex("notes") < 0 {
		t.Error("schema should now show the notes column")
	}
}

func TestUnfocusedPanelIgnoresKeys(t *testing.T) {
	p, sch := testPanel()
	p.SetFocused(false)

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("unfocused panel should ignore keys")
	}
	if sch.VisibleIndex("id") < 0 {
		t.Error("unfocused panel must not toggle columns")
	}
	_ = p
}

func TestPanelViewMarksVisibility(t *testing.T) {
	p, _ := testPanel()
	view := p.View()

	if !strings.Contains(view, "[x] ID") {
		t.Error("visible column should render checked")
	}
	if !strings.Contains(view, "[ ] Notes") {
		t.Error("hidden column should render unchecked")
	}
	if !strings.Contains(view, "2 visible") {
		t.Error("header should count visible columns")
	}
}
