// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/usertable/grid.go
// Summary: Interactive table widget with a cell cursor and inline editors.
// Usage: Owned by App; fed a fresh viewmodel.View after every state change.

package usertable

import (
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/framegrace/texeltable/internal/celleditor"
	"github.com/framegrace/texeltable/internal/tablefmt"
	"github.com/framegrace/texeltable/internal/theming"
	"github.com/framegrace/texeltable/internal/viewmodel"
	"github.com/framegrace/texeltable/texelui/core"
)

// PageAction is a page navigation request raised by the grid.
type PageAction int

const (
	PagePrevious PageAction = iota
	PageNext
	PageFirst
	PageLast
)

// maxColumnWidth caps a column so one long value cannot push the rest off
// screen.
const maxColumnWidth = 32

type cellRef struct {
	key    uuid.UUID
	column string
}

// Grid draws one page of the view: header rows, body and footer, framed
// like the static table. Editable cells get a celleditor.Editor each.
type Grid struct {
	core.BaseWidget

	Palette theming.Palette
	Zebra   bool

	// OnSort toggles the sort of a column.
	OnSort func(columnID string)
	// OnPage moves between pages.
	OnPage func(PageAction)
	// OnFilter applies the quick filter; "" clears it.
	OnFilter func(query string)

	target  celleditor.Target
	view    viewmodel.View
	layout  *tablefmt.Layout
	editors map[cellRef]*celleditor.Editor
	active  *celleditor.Editor

	row, col         int
	scrollX, scrollY int

	prompt    *celleditor.Editor
	prompting bool

	inv func(core.Rect)
}

// NewGrid creates a grid committing edits to target.
func NewGrid(target celleditor.Target, pal theming.Palette) *Grid {
	g := &Grid{
		Palette: pal,
		Zebra:   true,
		target:  target,
		editors: make(map[cellRef]*celleditor.Editor),
		layout:  tablefmt.NewLayout(viewmodel.View{}, tablefmt.Options{}),
	}
	g.SetFocusable(true)
	return g
}

func (g *Grid) SetInvalidator(fn func(core.Rect)) { g.inv = fn }

// View returns the page currently shown.
func (g *Grid) View() viewmodel.View { return g.view }

// Cursor returns the cursor position within the page.
func (g *Grid) Cursor() (row, col int) { return g.row, g.col }

// Editing reports whether a cell editor is active.
func (g *Grid) Editing() bool { return g.active != nil }

// Prompting reports whether the quick filter prompt is open.
func (g *Grid) Prompting() bool { return g.prompting }

// ActiveEditor returns the editor being used, or nil.
func (g *Grid) ActiveEditor() *celleditor.Editor { return g.active }

// Editor returns the editor of an editable cell on the current page.
func (g *Grid) Editor(key uuid.UUID, columnID string) (*celleditor.Editor, bool) {
	e, ok := g.editors[cellRef{key: key, column: columnID}]
	return e, ok
}

// SetView replaces the displayed page. Editors of cells still on the page
// are kept and resynchronised; the rest are dropped.
func (g *Grid) SetView(v viewmodel.View) {
	g.view = v
	g.layout = tablefmt.NewLayout(v, tablefmt.Options{MaxColumnWidth: maxColumnWidth})

	next := make(map[cellRef]*celleditor.Editor, len(g.editors))
	for _, row := range v.Rows {
		for _, cell := range row.Cells {
			if !cell.Editable {
				continue
			}
			ref := cellRef{key: row.Key, column: cell.ColumnID}
			e, ok := g.editors[ref]
			if ok {
				e.Sync(cell.Value)
			} else {
				e = celleditor.New(g.target, row.Key, cell.Field, cell.Value)
			}
			next[ref] = e
		}
	}
	if g.active != nil && !g.holds(next, g.active) {
		g.active.Cancel()
		g.active = nil
	}
	g.editors = next

	g.row = max(0, min(g.row, len(v.Rows)-1))
	g.col = max(0, min(g.col, g.layout.Columns()-1))
	g.ensureVisible()
	g.invalidate()
}

func (g *Grid) holds(m map[cellRef]*celleditor.Editor, e *celleditor.Editor) bool {
	for _, other := range m {
		if other == e {
			return true
		}
	}
	return false
}

// cellAt returns the view cell at page row r and column c.
func (g *Grid) cellAt(r, c int) (viewmodel.Row, viewmodel.Cell, bool) {
	if r < 0 || r >= len(g.view.Rows) {
		return viewmodel.Row{}, viewmodel.Cell{}, false
	}
	row := g.view.Rows[r]
	if c < 0 || c >= len(row.Cells) {
		return viewmodel.Row{}, viewmodel.Cell{}, false
	}
	return row, row.Cells[c], true
}

func (g *Grid) editorAt(r, c int) *celleditor.Editor {
	row, cell, ok := g.cellAt(r, c)
	if !ok || !cell.Editable {
		return nil
	}
	return g.editors[cellRef{key: row.Key, column: cell.ColumnID}]
}

// BeginEdit focuses the editor under the cursor. It returns false for
// read-only cells.
func (g *Grid) BeginEdit() bool {
	e := g.editorAt(g.row, g.col)
	if e == nil {
		return false
	}
	if g.active != nil && g.active != e {
		g.active.Blur()
	}
	g.active = e
	e.Focus()
	e.End()
	g.invalidate()
	return true
}

// CommitEdit blurs the active editor, which writes its value.
func (g *Grid) CommitEdit() {
	if g.active == nil {
		return
	}
	e := g.active
	g.active = nil
	e.Blur()
	g.invalidate()
}

// CancelEdit drops the active editor's local changes.
func (g *Grid) CancelEdit() {
	if g.active == nil {
		return
	}
	g.active.Cancel()
	g.active = nil
	g.invalidate()
}

// Blur commits any edit in progress and closes the filter prompt.
func (g *Grid) Blur() {
	g.CommitEdit()
	g.prompting = false
	g.BaseWidget.Blur()
	g.invalidate()
}

func (g *Grid) Focus() {
	g.BaseWidget.Focus()
	g.invalidate()
}

func (g *Grid) moveCursor(dr, dc int) {
	g.row = max(0, min(g.row+dr, len(g.view.Rows)-1))
	g.col = max(0, min(g.col+dc, g.layout.Columns()-1))
	g.ensureVisible()
	g.invalidate()
}

func (g *Grid) openPrompt() {
	g.CommitEdit()
	g.prompt = celleditor.New(nil, uuid.Nil, "", "")
	g.prompt.Focus()
	g.prompting = true
	g.invalidate()
}

func (g *Grid) closePrompt(apply bool) {
	query := g.prompt.Value()
	g.prompting = false
	g.prompt.Cancel()
	g.invalidate()
	if g.OnFilter == nil {
		return
	}
	if apply {
		g.OnFilter(query)
	} else {
		g.OnFilter("")
	}
}

func (g *Grid) sortCursorColumn() {
	_, cell, ok := g.cellAt(g.row, g.col)
	if !ok {
		// An empty page still has headers.
		for _, row := range g.view.Headers {
			for _, h := range row {
				if !h.Group && h.Col == g.col {
					cell.ColumnID = h.ColumnID
				}
			}
		}
	}
	if cell.ColumnID != "" && g.OnSort != nil {
		g.OnSort(cell.ColumnID)
	}
}

func (g *Grid) page(a PageAction) {
	g.CommitEdit()
	if g.OnPage != nil {
		g.OnPage(a)
	}
}

// editKey applies a line-editing key to e. It reports false for keys that
// are not editing keys.
func editKey(e *celleditor.Editor, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		e.Left()
	case tcell.KeyRight:
		e.Right()
	case tcell.KeyHome:
		e.Home()
	case tcell.KeyEnd:
		e.End()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.Backspace()
	case tcell.KeyDelete:
		e.Delete()
	case tcell.KeyRune:
		e.Insert(ev.Rune())
	default:
		return false
	}
	return true
}

func (g *Grid) HandleKey(ev *tcell.EventKey) bool {
	switch {
	case g.prompting:
		return g.handlePromptKey(ev)
	case g.active != nil:
		return g.handleEditKey(ev)
	}

	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	switch ev.Key() {
	case tcell.KeyUp:
		g.moveCursor(-1, 0)
	case tcell.KeyDown:
		g.moveCursor(1, 0)
	case tcell.KeyLeft:
		g.moveCursor(0, -1)
	case tcell.KeyRight:
		g.moveCursor(0, 1)
	case tcell.KeyHome:
		if ctrl {
			g.page(PageFirst)
		} else {
			g.moveCursor(0, -g.col)
		}
	case tcell.KeyEnd:
		if ctrl {
			g.page(PageLast)
		} else {
			g.moveCursor(0, g.layout.Columns())
		}
	case tcell.KeyPgUp:
		g.page(PagePrevious)
	case tcell.KeyPgDn:
		g.page(PageNext)
	case tcell.KeyCtrlS:
		g.sortCursorColumn()
	case tcell.KeyEnter:
		g.BeginEdit()
	case tcell.KeyRune:
		if ev.Rune() == '/' {
			g.openPrompt()
			return true
		}
		if !g.BeginEdit() {
			return false
		}
		g.active.SetValue(string(ev.Rune()))
	default:
		return false
	}
	return true
}

func (g *Grid) handleEditKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEsc:
		g.CancelEdit()
	case tcell.KeyEnter:
		g.CommitEdit()
	case tcell.KeyTab:
		g.CommitEdit()
		g.moveCursor(0, 1)
	case tcell.KeyBacktab:
		g.CommitEdit()
		g.moveCursor(0, -1)
	case tcell.KeyUp:
		g.CommitEdit()
		g.moveCursor(-1, 0)
	case tcell.KeyDown:
		g.CommitEdit()
		g.moveCursor(1, 0)
	case tcell.KeyPgUp:
		g.page(PagePrevious)
	case tcell.KeyPgDn:
		g.page(PageNext)
	default:
		editKey(g.active, ev)
	}
	g.invalidate()
	return true
}

func (g *Grid) handlePromptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		g.closePrompt(true)
	case tcell.KeyEsc:
		g.closePrompt(false)
	default:
		editKey(g.prompt, ev)
		g.invalidate()
	}
	return true
}

// HandleMouse sorts on header clicks and edits on body clicks. A click on
// any other part of the grid commits the edit in progress.
func (g *Grid) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		g.moveCursor(-1, 0)
		return true
	case buttons&tcell.WheelDown != 0:
		g.moveCursor(1, 0)
		return true
	case buttons&tcell.Button1 == 0:
		return g.HitTest(x, y)
	}

	col := g.columnAt(x)
	if hr, ok := g.headerRowAt(y); ok {
		g.CommitEdit()
		if h, _, ok := g.layout.HeaderAt(hr, col); ok && !h.Group && h.Sortable && g.OnSort != nil {
			g.OnSort(h.ColumnID)
		}
		return true
	}
	if r, ok := g.bodyRowAt(y); ok && col >= 0 {
		if g.active != nil && g.active == g.editorAt(r, col) {
			return true
		}
		g.CommitEdit()
		g.row, g.col = r, col
		g.ensureVisible()
		g.BeginEdit()
		g.invalidate()
		return true
	}
	g.CommitEdit()
	return g.HitTest(x, y)
}
