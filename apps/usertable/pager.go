// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/usertable/pager.go
// Summary: Pagination bar: page buttons, page-size selector and status line.

package usertable

import (
	"fmt"
	"strconv"

	"github.com/framegrace/texeltable/internal/tablefmt"
	"github.com/framegrace/texeltable/internal/theming"
	"github.com/framegrace/texeltable/internal/viewmodel"
	"github.com/framegrace/texeltable/texelui/core"
	"github.com/framegrace/texeltable/texelui/widgets"
)

// maxPageButtons bounds the numbered buttons shown around the current page.
const maxPageButtons = 9

// PagerHeight is the number of rows the pager occupies.
const PagerHeight = 2

// Pager lays out, on its first row, a previous-page button, numbered page
// buttons, a jump-to-last button and the page-size selector. The second
// row holds the status line.
type Pager struct {
	core.BaseWidget

	OnPrevious func()
	OnLast     func()
	OnPage     func(index int)
	OnPageSize func(size int)

	prev   *widgets.Button
	last   *widgets.Button
	pages  []*widgets.Button
	sizes  *widgets.ComboBox
	status *widgets.Label

	pageSizes []int
	first     int
	inv       func(core.Rect)
}

// PageSizeLabel is the selector entry for a page size.
func PageSizeLabel(n int) string { return fmt.Sprintf("Показать %d", n) }

// NewPager creates a pager offering the given page sizes.
func NewPager(pageSizes []int, pal theming.Palette) *Pager {
	p := &Pager{pageSizes: append([]int(nil), pageSizes...)}
	p.prev = widgets.NewButton(0, 0, "◀", func() {
		if p.OnPrevious != nil {
			p.OnPrevious()
		}
	})
	p.last = widgets.NewButton(0, 0, "▶", func() {
		if p.OnLast != nil {
			p.OnLast()
		}
	})
	p.pages = make([]*widgets.Button, maxPageButtons)
	for i := range p.pages {
		slot := i
		p.pages[i] = widgets.NewButton(0, 0, "", func() {
			if p.OnPage != nil {
				p.OnPage(p.first + slot)
			}
		})
	}

	labels := make([]string, len(pageSizes))
	width := 0
	for i, n := range pageSizes {
		labels[i] = PageSizeLabel(n)
		width = max(width, core.TextWidth(labels[i]))
	}
	p.sizes = widgets.NewComboBox(0, 0, width+4, labels, 0)
	p.sizes.DropUp = true
	p.sizes.OnChange = func(i int, _ string) {
		if p.OnPageSize != nil && i >= 0 && i < len(p.pageSizes) {
			p.OnPageSize(p.pageSizes[i])
		}
	}
	p.status = widgets.NewLabel(0, 1, 0, "")
	p.ApplyPalette(pal)
	return p
}

// ApplyPalette restyles every control.
func (p *Pager) ApplyPalette(pal theming.Palette) {
	styles := widgets.Styles{
		Normal:   pal.Button,
		Focused:  pal.ButtonFocused,
		Active:   pal.ButtonActive,
		Disabled: pal.Disabled,
		Border:   pal.Border,
	}
	p.prev.ApplyStyles(styles)
	p.last.ApplyStyles(styles)
	for _, b := range p.pages {
		b.ApplyStyles(styles)
	}
	p.sizes.Styles = styles
	p.status.Style = pal.Status
	p.invalidate()
}

// PageButtons returns the visible numbered buttons in order.
func (p *Pager) PageButtons() []*widgets.Button {
	var out []*widgets.Button
	for _, b := range p.pages {
		if b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}

// Previous returns the previous-page button.
func (p *Pager) Previous() *widgets.Button { return p.prev }

// Last returns the jump-to-last-page button.
func (p *Pager) Last() *widgets.Button { return p.last }

// PageSizeSelector returns the page-size combo box.
func (p *Pager) PageSizeSelector() *widgets.ComboBox { return p.sizes }

// StatusText returns the status line.
func (p *Pager) StatusText() string { return p.status.Text }

// Sync updates the controls to match v.
func (p *Pager) Sync(v viewmodel.View) {
	count := max(1, v.PageCount)
	cur := v.Page.PageIndex
	n := min(count, maxPageButtons)
	p.first = max(0, min(cur-n/2, count-n))
	for i, b := range p.pages {
		if i >= n {
			b.SetEnabled(false)
			b.Active = false
			b.SetLabel("")
			b.Resize(0, 0)
			continue
		}
		b.SetEnabled(true)
		b.SetLabel(strconv.Itoa(p.first + i + 1))
		b.Active = p.first+i == cur
	}
	p.prev.SetEnabled(v.CanPrevious())
	p.last.SetEnabled(v.CanNext())
	for i, size := range p.pageSizes {
		if size == v.Page.PageSize {
			p.sizes.SetSelected(i)
		}
	}
	p.status.SetText(tablefmt.Status(v))
	p.layout()
}

func (p *Pager) SetPosition(x, y int) {
	p.BaseWidget.SetPosition(x, y)
	p.layout()
}

func (p *Pager) Resize(w, h int) {
	p.BaseWidget.Resize(w, h)
	p.layout()
}

func (p *Pager) layout() {
	x, y := p.Rect.X, p.Rect.Y
	place := func(w core.Widget) {
		if ww, _ := w.Size(); ww > 0 {
			w.SetPosition(x, y)
			x += ww + 1
		}
	}
	place(p.prev)
	for _, b := range p.pages {
		place(b)
	}
	place(p.last)
	x++
	p.sizes.SetPosition(x, y)
	p.status.SetPosition(p.Rect.X, y+1)
	p.status.Resize(p.Rect.W, 1)
	p.invalidate()
}

func (p *Pager) VisitChildren(fn func(core.Widget)) {
	fn(p.prev)
	for _, b := range p.pages {
		fn(b)
	}
	fn(p.last)
	fn(p.sizes)
	fn(p.status)
}

func (p *Pager) SetInvalidator(fn func(core.Rect)) {
	p.inv = fn
	p.VisitChildren(func(w core.Widget) {
		if ia, ok := w.(core.InvalidationAware); ok {
			ia.SetInvalidator(fn)
		}
	})
}

func (p *Pager) invalidate() {
	if p.inv != nil {
		p.inv(p.DrawBounds())
	}
}

func (p *Pager) Draw(painter *core.Painter) {
	var open core.Widget
	p.VisitChildren(func(w core.Widget) {
		if w == core.Widget(p.sizes) && p.sizes.Expanded() {
			open = w
			return
		}
		w.Draw(painter)
	})
	if open != nil {
		open.Draw(painter)
	}
}

// HitTest covers the children, including an open page-size list.
func (p *Pager) HitTest(x, y int) bool {
	hit := false
	p.VisitChildren(func(w core.Widget) {
		hit = hit || w.HitTest(x, y)
	})
	return hit
}

// DrawBounds includes the page-size list when it is open above the bar.
func (p *Pager) DrawBounds() core.Rect {
	r := p.Rect
	p.VisitChildren(func(w core.Widget) {
		r = r.Union(core.DrawBounds(w))
	})
	return r
}

func (p *Pager) ZIndex() int { return p.sizes.ZIndex() }
