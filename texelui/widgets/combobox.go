// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/combobox.go
// Summary: Fixed-choice dropdown selector.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltable/texelui/core"
)

const maxDropdownRows = 8

// ComboBox shows the selected item and opens a bordered list to pick
// another one. With DropUp set the list opens above the box.
type ComboBox struct {
	core.BaseWidget

	Items    []string
	Styles   Styles
	DropUp   bool
	OnChange func(index int, value string)

	selected  int
	highlight int
	scroll    int
	expanded  bool
	inv       func(core.Rect)
}

// NewComboBox creates a combo box of width w with items[selected] chosen.
func NewComboBox(x, y, w int, items []string, selected int) *ComboBox {
	cb := &ComboBox{Items: items, Styles: DefaultStyles()}
	cb.SetPosition(x, y)
	cb.Resize(w, 1)
	cb.SetFocusable(true)
	cb.SetSelected(selected)
	return cb
}

func (cb *ComboBox) SetInvalidator(fn func(core.Rect)) { cb.inv = fn }

// Selected returns the selected index, or -1 when there are no items.
func (cb *ComboBox) Selected() int {
	if len(cb.Items) == 0 {
		return -1
	}
	return cb.selected
}

// Value returns the selected item, or "".
func (cb *ComboBox) Value() string {
	if i := cb.Selected(); i >= 0 {
		return cb.Items[i]
	}
	return ""
}

// SetSelected selects index i without calling OnChange. Out-of-range
// indexes are clamped.
func (cb *ComboBox) SetSelected(i int) {
	cb.selected = max(0, min(i, len(cb.Items)-1))
	cb.highlight = cb.selected
	cb.invalidate()
}

// Expanded reports whether the list is open.
func (cb *ComboBox) Expanded() bool { return cb.expanded }

func (cb *ComboBox) open() {
	if len(cb.Items) == 0 {
		return
	}
	cb.invalidate()
	cb.expanded = true
	cb.highlight = cb.selected
	cb.ensureVisible()
	cb.invalidate()
}

func (cb *ComboBox) close() {
	cb.invalidate()
	cb.expanded = false
	cb.invalidate()
}

func (cb *ComboBox) choose(i int) {
	cb.close()
	if i < 0 || i >= len(cb.Items) {
		return
	}
	changed := i != cb.selected
	cb.selected, cb.highlight = i, i
	if changed && cb.OnChange != nil {
		cb.OnChange(i, cb.Items[i])
	}
}

func (cb *ComboBox) listRows() int {
	return max(1, min(len(cb.Items), maxDropdownRows))
}

// listRect covers the open list including its border.
func (cb *ComboBox) listRect() core.Rect {
	h := cb.listRows() + 2
	y := cb.Rect.Y + 1
	if cb.DropUp {
		y = cb.Rect.Y - h
	}
	return core.Rect{X: cb.Rect.X, Y: y, W: cb.Rect.W, H: h}
}

func (cb *ComboBox) ensureVisible() {
	rows := cb.listRows()
	if cb.highlight < cb.scroll {
		cb.scroll = cb.highlight
	} else if cb.highlight >= cb.scroll+rows {
		cb.scroll = cb.highlight - rows + 1
	}
}

func (cb *ComboBox) Draw(p *core.Painter) {
	style := cb.Styles.Normal
	if cb.IsFocused() {
		style = cb.Styles.Focused
	}
	arrow := "▼"
	if cb.expanded != cb.DropUp {
		arrow = "▲"
	}
	w := cb.Rect.W
	p.DrawTextIn(cb.Rect.X, cb.Rect.Y, w-2, " "+cb.Value(), style, core.AlignLeft)
	p.DrawTextIn(cb.Rect.X+w-2, cb.Rect.Y, 2, arrow+" ", style, core.AlignLeft)
	if cb.expanded {
		cb.drawList(p)
	}
}

func (cb *ComboBox) drawList(p *core.Painter) {
	lr := cb.listRect()
	border := cb.Styles.Border
	right, bottom := lr.X+lr.W-1, lr.Y+lr.H-1

	p.Fill(lr, ' ', cb.Styles.Normal)
	for x := lr.X + 1; x < right; x++ {
		p.SetCell(x, lr.Y, '─', border)
		p.SetCell(x, bottom, '─', border)
	}
	for y := lr.Y + 1; y < bottom; y++ {
		p.SetCell(lr.X, y, '│', border)
		p.SetCell(right, y, '│', border)
	}
	p.SetCell(lr.X, lr.Y, '╭', border)
	p.SetCell(right, lr.Y, '╮', border)
	p.SetCell(lr.X, bottom, '╰', border)
	p.SetCell(right, bottom, '╯', border)

	for row := 0; row < cb.listRows(); row++ {
		i := cb.scroll + row
		if i >= len(cb.Items) {
			break
		}
		style := cb.Styles.Normal
		switch {
		case i == cb.highlight:
			style = cb.Styles.Focused
		case i == cb.selected:
			style = cb.Styles.Active
		}
		p.DrawTextIn(lr.X+1, lr.Y+1+row, lr.W-2, cb.Items[i], style, core.AlignLeft)
	}
	if cb.scroll > 0 {
		p.SetCell(right-1, lr.Y+1, '▲', border)
	}
	if cb.scroll+cb.listRows() < len(cb.Items) {
		p.SetCell(right-1, bottom-1, '▼', border)
	}
}

func (cb *ComboBox) HandleKey(ev *tcell.EventKey) bool {
	if !cb.expanded {
		switch ev.Key() {
		case tcell.KeyEnter, tcell.KeyDown, tcell.KeyUp:
			cb.open()
			return true
		case tcell.KeyRune:
			if ev.Rune() == ' ' {
				cb.open()
				return true
			}
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyEsc:
		cb.close()
	case tcell.KeyEnter:
		cb.choose(cb.highlight)
	case tcell.KeyUp:
		if cb.highlight > 0 {
			cb.highlight--
		}
	case tcell.KeyDown:
		if cb.highlight < len(cb.Items)-1 {
			cb.highlight++
		}
	case tcell.KeyHome:
		cb.highlight = 0
	case tcell.KeyEnd:
		cb.highlight = len(cb.Items) - 1
	default:
		return true
	}
	cb.ensureVisible()
	cb.invalidate()
	return true
}

// HandleMouse toggles the list on a click on the box and picks the item
// under a click inside the list.
func (cb *ComboBox) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if ev.Buttons()&tcell.Button1 == 0 {
		return cb.HitTest(x, y)
	}
	if cb.Rect.Contains(x, y) {
		if cb.expanded {
			cb.close()
		} else {
			cb.open()
		}
		return true
	}
	if !cb.expanded {
		return false
	}
	lr := cb.listRect()
	if !lr.Contains(x, y) {
		cb.close()
		return false
	}
	if row := y - lr.Y - 1; row >= 0 && row < cb.listRows() {
		cb.choose(cb.scroll + row)
	}
	return true
}

// HitTest includes the open list.
func (cb *ComboBox) HitTest(x, y int) bool {
	return cb.Rect.Contains(x, y) || (cb.expanded && cb.listRect().Contains(x, y))
}

// DrawBounds includes the open list.
func (cb *ComboBox) DrawBounds() core.Rect {
	if cb.expanded {
		return cb.Rect.Union(cb.listRect())
	}
	return cb.Rect
}

func (cb *ComboBox) IsModal() bool { return cb.expanded }

func (cb *ComboBox) DismissModal() { cb.close() }

func (cb *ComboBox) Blur() {
	if cb.expanded {
		cb.close()
	}
	cb.BaseWidget.Blur()
	cb.invalidate()
}

func (cb *ComboBox) Focus() {
	cb.BaseWidget.Focus()
	cb.invalidate()
}

// ZIndex raises the open list above its neighbours.
func (cb *ComboBox) ZIndex() int {
	if cb.expanded {
		return 100
	}
	return 0
}

func (cb *ComboBox) invalidate() {
	if cb.inv == nil {
		return
	}
	cb.inv(cb.Rect)
	if cb.expanded {
		cb.inv(cb.listRect())
	}
}
