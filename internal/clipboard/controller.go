package clipboard

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"grid-tui/internal/focus"
	"grid-tui/internal/layout"
	"grid-tui/internal/selection"
	"grid-tui/internal/store"
)

// lockWindow suppresses key-repeat pile-up: key-downs arriving inside the
// window after a handled key are swallowed.
const lockWindow = 10 * time.Millisecond

// OpenEditorMsg asks the display surface to open the cell editor at the
// focused address.
type OpenEditorMsg struct {
	Addr store.Address
}

// RevealMsg asks the display surface to scroll an address into view. The
// skip flags suppress scrolling on one axis while a whole row or column is
// highlighted.
type RevealMsg struct {
	Addr    store.Address
	SkipRow bool
	SkipCol bool
}

// PasteMsg delivers platform clipboard text read after a paste was armed.
type PasteMsg struct {
	Text string
	Err  error
}

// unlockMsg clears the re-entrancy lock.
type unlockMsg struct{}

// keyMap groups bindings by modifier class: plain, shift, ctrl, ctrl+shift.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Tab      key.Binding

	ShiftUp       key.Binding
	ShiftDown     key.Binding
	ShiftLeft     key.Binding
	ShiftRight    key.Binding
	ShiftPageUp   key.Binding
	ShiftPageDown key.Binding
	ShiftHome     key.Binding
	ShiftEnd      key.Binding
	ShiftTab      key.Binding

	SelectAll key.Binding
	Copy      key.Binding
	Paste     key.Binding
	CtrlHome  key.Binding
	CtrlEnd   key.Binding

	ExtendToStart key.Binding
	ExtendToEnd   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
		Left:     key.NewBinding(key.WithKeys("left")),
		Right:    key.NewBinding(key.WithKeys("right")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Home:     key.NewBinding(key.WithKeys("home")),
		End:      key.NewBinding(key.WithKeys("end")),
		Edit:     key.NewBinding(key.WithKeys("enter", " ")),
		Delete:   key.NewBinding(key.WithKeys("delete")),
		Tab:      key.NewBinding(key.WithKeys("tab")),

		ShiftUp:       key.NewBinding(key.WithKeys("shift+up")),
		ShiftDown:     key.NewBinding(key.WithKeys("shift+down")),
		ShiftLeft:     key.NewBinding(key.WithKeys("shift+left")),
		ShiftRight:    key.NewBinding(key.WithKeys("shift+right")),
		ShiftPageUp:   key.NewBinding(key.WithKeys("shift+pgup")),
		ShiftPageDown: key.NewBinding(key.WithKeys("shift+pgdown")),
		ShiftHome:     key.NewBinding(key.WithKeys("shift+home")),
		ShiftEnd:      key.NewBinding(key.WithKeys("shift+end")),
		ShiftTab:      key.NewBinding(key.WithKeys("shift+tab")),

		SelectAll: key.NewBinding(key.WithKeys("ctrl+a")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+c")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v")),
		CtrlHome:  key.NewBinding(key.WithKeys("ctrl+home")),
		CtrlEnd:   key.NewBinding(key.WithKeys("ctrl+end")),

		ExtendToStart: key.NewBinding(key.WithKeys("ctrl+shift+home")),
		ExtendToEnd:   key.NewBinding(key.WithKeys("ctrl+shift+end")),
	}
}

// Controller interprets key events against the focus, selection and row
// data models. All mutations happen synchronously inside Update; the only
// deferred work is the lock-clearing tick and the platform clipboard read.
type Controller struct {
	store  *store.Store
	focus  *focus.Model
	sel    *selection.Model
	layout *layout.Model
	keys   keyMap

	locked     bool
	pasteArmed bool

	read  ReadFunc
	write WriteFunc
}

// NewController wires a controller to the grid models. The platform
// clipboard defaults to the system clipboard; tests inject fakes via
// SetClipboardFuncs.
func NewController(st *store.Store, fm *focus.Model, sm *selection.Model, lm *layout.Model) *Controller {
	return &Controller{
		store:  st,
		focus:  fm,
		sel:    sm,
		layout: lm,
		keys:   defaultKeyMap(),
		read:   SystemRead,
		write:  SystemWrite,
	}
}

// SetClipboardFuncs overrides platform clipboard access.
func (c *Controller) SetClipboardFuncs(read ReadFunc, write WriteFunc) {
	c.read = read
	c.write = write
}

// Update processes controller messages. The bool reports whether the
// message was consumed; unconsumed key events fall through to the host.
func (c *Controller) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return c.handleKey(msg)
	case unlockMsg:
		c.locked = false
		return true, nil
	case PasteMsg:
		return c.handlePaste(msg)
	}
	return false, nil
}

func (c *Controller) lock() tea.Cmd {
	c.locked = true
	return tea.Tick(lockWindow, func(time.Time) tea.Msg {
		return unlockMsg{}
	})
}

func (c *Controller) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if c.locked {
		return true, nil
	}

	k := c.keys
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, k.Up):
		c.moveFocus(-1, 0)
	case key.Matches(msg, k.Down):
		c.moveFocus(1, 0)
	case key.Matches(msg, k.Left):
		c.moveFocus(0, -1)
	case key.Matches(msg, k.Right):
		c.moveFocus(0, 1)
	case key.Matches(msg, k.PageUp):
		c.movePage(-1)
	case key.Matches(msg, k.PageDown):
		c.movePage(1)
	case key.Matches(msg, k.Home):
		c.moveRowEdge(false)
	case key.Matches(msg, k.End):
		c.moveRowEdge(true)
	case key.Matches(msg, k.Edit):
		cmd = c.openEditor()
	case key.Matches(msg, k.Delete):
		c.deleteCells()
	case key.Matches(msg, k.Tab):
		cmd = c.tabMove(true)
	case key.Matches(msg, k.ShiftTab):
		cmd = c.tabMove(false)

	case key.Matches(msg, k.ShiftUp):
		cmd = c.extend(-1, 0)
	case key.Matches(msg, k.ShiftDown):
		cmd = c.extend(1, 0)
	case key.Matches(msg, k.ShiftLeft):
		cmd = c.extend(0, -1)
	case key.Matches(msg, k.ShiftRight):
		cmd = c.extend(0, 1)
	case key.Matches(msg, k.ShiftPageUp):
		cmd = c.extendPage(-1)
	case key.Matches(msg, k.ShiftPageDown):
		cmd = c.extendPage(1)
	case key.Matches(msg, k.ShiftHome):
		cmd = c.extendRowEdge(false)
	case key.Matches(msg, k.ShiftEnd):
		cmd = c.extendRowEdge(true)

	case key.Matches(msg, k.SelectAll):
		c.sel.SelectAll()
	case key.Matches(msg, k.Copy):
		c.copySelection()
	case key.Matches(msg, k.Paste):
		cmd = c.armPaste()
	case key.Matches(msg, k.CtrlHome):
		c.moveGridEdge(false)
	case key.Matches(msg, k.CtrlEnd):
		c.moveGridEdge(true)

	case key.Matches(msg, k.ExtendToStart):
		cmd = c.extendGridEdge(false)
	case key.Matches(msg, k.ExtendToEnd):
		cmd = c.extendGridEdge(true)

	default:
		return false, nil
	}

	return true, batch(c.lock(), cmd)
}

func batch(cmds ...tea.Cmd) tea.Cmd {
	var live []tea.Cmd
	for _, cmd := range cmds {
		if cmd != nil {
			live = append(live, cmd)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return tea.Batch(live...)
}

// --- plain dispatch ---

func (c *Controller) moveFocus(dr, dc int) {
	addr, ok := c.focus.Address()
	if !ok {
		return
	}
	c.sel.End()
	c.sel.Clear()
	c.focus.FocusAt(store.Address{Row: addr.Row + dr, Col: addr.Col + dc})
}

func (c *Controller) movePage(dir int) {
	addr, ok := c.focus.Address()
	if !ok {
		return
	}
	c.sel.Clear()
	var row int
	if dir < 0 {
		row = c.layout.PageUp(addr.Row)
	} else {
		row = c.layout.PageDown(addr.Row)
	}
	c.focus.FocusAt(store.Address{Row: row, Col: addr.Col})
}

func (c *Controller) moveRowEdge(end bool) {
	addr, ok := c.focus.Address()
	if !ok {
		return
	}
	c.sel.Clear()
	col := 0
	if end {
		col = c.store.Schema().VisibleCount() - 1
	}
	c.focus.FocusAt(store.Address{Row: addr.Row, Col: col})
}

func (c *Controller) moveGridEdge(end bool) {
	if c.store.RowCount() == 0 || c.store.Schema().VisibleCount() == 0 {
		return
	}
	c.sel.Clear()
	addr := store.Address{}
	if end {
		addr = store.Address{
			Row: c.store.RowCount() - 1,
			Col: c.store.Schema().VisibleCount() - 1,
		}
	}
	c.focus.FocusAt(addr)
}

func (c *Controller) openEditor() tea.Cmd {
	addr, ok := c.focus.Address()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return OpenEditorMsg{Addr: addr}
	}
}

func (c *Controller) deleteCells() {
	if r, ok := c.sel.Range(); ok {
		c.store.DelRange(r)
		return
	}
	key, col, ok := c.focus.Current()
	if !ok {
		return
	}
	c.store.Del(key, col)
}

func (c *Controller) tabMove(forward bool) tea.Cmd {
	var addr store.Address
	var ok bool
	if forward {
		addr, ok = c.focus.NextAddress()
	} else {
		addr, ok = c.focus.PrevAddress()
	}
	if !ok {
		return nil
	}
	c.sel.Clear()
	c.focus.FocusAt(addr)
	return func() tea.Msg {
		return OpenEditorMsg{Addr: addr}
	}
}

// --- shift dispatch ---

// extend moves the selection's far corner by one step. The far corner is
// the range corner farthest from focus, or focus itself without a
// selection; the diagonally opposite corner stays fixed.
func (c *Controller) extend(dr, dc int) tea.Cmd {
	addr, ok := c.focus.Address()
	if !ok {
		return nil
	}
	far := c.sel.FarCorner(addr)
	return c.applyExtend(addr, store.Address{Row: far.Row + dr, Col: far.Col + dc})
}

// heldCorner is the corner kept fixed during extension: diagonally opposite
// the moving far corner, or the focus address without a selection.
func (c *Controller) heldCorner(focusAddr store.Address) store.Address {
	r, ok := c.sel.Range()
	if !ok {
		return focusAddr
	}
	far := c.sel.FarCorner(focusAddr)
	held := store.Address{Row: r.Row[0], Col: r.Col[0]}
	if far.Row == r.Row[0] {
		held.Row = r.Row[1]
	}
	if far.Col == r.Col[0] {
		held.Col = r.Col[1]
	}
	return held
}

func (c *Controller) extendPage(dir int) tea.Cmd {
	addr, ok := c.focus.Address()
	if !ok {
		return nil
	}
	far := c.sel.FarCorner(addr)
	var row int
	if dir < 0 {
		row = c.layout.PageUp(far.Row)
	} else {
		row = c.layout.PageDown(far.Row)
	}
	return c.applyExtend(addr, store.Address{Row: row, Col: far.Col})
}

func (c *Controller) extendRowEdge(end bool) tea.Cmd {
	addr, ok := c.focus.Address()
	if !ok {
		return nil
	}
	far := c.sel.FarCorner(addr)
	col := 0
	if end {
		col = c.store.Schema().VisibleCount() - 1
	}
	return c.applyExtend(addr, store.Address{Row: far.Row, Col: col})
}

func (c *Controller) extendGridEdge(end bool) tea.Cmd {
	addr, ok := c.focus.Address()
	if !ok {
		return nil
	}
	corner := store.Address{}
	if end {
		corner = store.Address{
			Row: c.store.RowCount() - 1,
			Col: c.store.Schema().VisibleCount() - 1,
		}
	}
	return c.applyExtend(addr, corner)
}

// applyExtend commits the new far corner when it resolves to an existing
// row and a visible column; otherwise the prior selection is retained.
func (c *Controller) applyExtend(focusAddr, corner store.Address) tea.Cmd {
	if corner.Row < 0 || corner.Row >= c.store.RowCount() {
		return nil
	}
	if corner.Col < 0 || corner.Col >= c.store.Schema().VisibleCount() {
		return nil
	}
	held := c.heldCorner(focusAddr)
	c.sel.Extend(held, corner)

	kind := c.sel.Kind()
	reveal := RevealMsg{
		Addr:    corner,
		SkipRow: kind == selection.KindColumn,
		SkipCol: kind == selection.KindRow,
	}
	return func() tea.Msg {
		return reveal
	}
}

// --- ctrl dispatch ---

// copySelection serializes the selection (or the focused cell) and writes
// the platform clipboard. Platform failures are non-actionable and are
// dropped on the floor.
func (c *Controller) copySelection() {
	var text string
	if c.sel.HasSelection() {
		text = c.sel.ValuesToString(true)
	} else {
		key, col, ok := c.focus.Current()
		if !ok {
			return
		}
		text, _ = c.store.Value(key, col)
	}
	_ = c.write(text)
}

// armPaste starts a one-shot paste: the returned command reads the
// platform clipboard and delivers a PasteMsg. Only one PasteMsg is
// consumed per arming; stray deliveries are ignored.
func (c *Controller) armPaste() tea.Cmd {
	if !c.focus.HasFocus() && !c.sel.HasSelection() {
		return nil
	}
	c.pasteArmed = true
	read := c.read
	return func() tea.Msg {
		text, err := read()
		return PasteMsg{Text: text, Err: err}
	}
}

func (c *Controller) handlePaste(msg PasteMsg) (bool, tea.Cmd) {
	if !c.pasteArmed {
		return false, nil
	}
	c.pasteArmed = false
	if msg.Err != nil {
		return true, nil
	}

	origin, ok := c.sel.StartIndex()
	if !ok {
		origin, ok = c.focus.Address()
		if !ok {
			return true, nil
		}
	}
	c.store.Paste(Split(msg.Text), origin)
	return true, nil
}
