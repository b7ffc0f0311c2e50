// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/usertable/grid_draw.go
// Summary: Grid geometry, scrolling and drawing.

package usertable

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texeltable/internal/celleditor"
	"github.com/framegrace/texeltable/internal/schema"
	"github.com/framegrace/texeltable/internal/tablefmt"
	"github.com/framegrace/texeltable/internal/viewmodel"
	"github.com/framegrace/texeltable/texelui/core"
)

const promptLabel = " Фильтр: "

// Row layout inside the grid, top to bottom: border, header rows,
// separator, body, separator, footer, border.
const frameRows = 5

// HeightFor returns the height needed to show pageSize body rows.
func (g *Grid) HeightFor(pageSize int) int {
	return len(g.view.Headers) + frameRows + max(1, pageSize)
}

// Width returns the full table width.
func (g *Grid) Width() int { return g.sepX(g.layout.Columns()) + 1 }

func (g *Grid) Resize(w, h int) {
	g.BaseWidget.Resize(w, h)
	g.ensureVisible()
}

// sepX is the x offset of the bar left of column c.
func (g *Grid) sepX(c int) int {
	x := 0
	for i := 0; i < c && i < len(g.layout.Widths); i++ {
		x += g.layout.Widths[i] + 3
	}
	return x
}

// bodyLines is the number of body lines drawn.
func (g *Grid) bodyLines() int {
	avail := g.Rect.H - len(g.view.Headers) - frameRows
	return max(1, min(max(1, len(g.view.Rows)), avail))
}

func (g *Grid) bodyTop() int { return g.Rect.Y + len(g.view.Headers) + 2 }

func (g *Grid) columnAt(x int) int {
	cx := x - g.Rect.X + g.scrollX
	for c := 0; c < g.layout.Columns(); c++ {
		if cx > g.sepX(c) && cx < g.sepX(c+1) {
			return c
		}
	}
	return -1
}

func (g *Grid) headerRowAt(y int) (int, bool) {
	r := y - g.Rect.Y - 1
	return r, r >= 0 && r < len(g.view.Headers)
}

func (g *Grid) bodyRowAt(y int) (int, bool) {
	k := y - g.bodyTop()
	if k < 0 || k >= g.bodyLines() {
		return 0, false
	}
	r := g.scrollY + k
	return r, r < len(g.view.Rows)
}

func (g *Grid) ensureVisible() {
	if w := g.Rect.W; w > 0 {
		left, right := g.sepX(g.col), g.sepX(g.col+1)+1
		switch {
		case right-left > w || left < g.scrollX:
			g.scrollX = left
		case right > g.scrollX+w:
			g.scrollX = right - w
		}
		g.scrollX = max(0, min(g.scrollX, g.Width()-w))
	}
	lines := g.bodyLines()
	if g.row < g.scrollY {
		g.scrollY = g.row
	} else if g.row >= g.scrollY+lines {
		g.scrollY = g.row - lines + 1
	}
	g.scrollY = max(0, min(g.scrollY, len(g.view.Rows)-lines))
}

func (g *Grid) invalidate() {
	if g.inv != nil {
		g.inv(g.Rect)
	}
}

func toCoreAlign(a schema.Alignment) core.Align {
	switch a {
	case schema.AlignRight:
		return core.AlignRight
	case schema.AlignCenter:
		return core.AlignCenter
	}
	return core.AlignLeft
}

// borderOn draws bars in the border color over the background of s.
func (g *Grid) borderOn(s tcell.Style) tcell.Style {
	fg, _, _ := g.Palette.Border.Decompose()
	return s.Foreground(fg).Bold(false).Italic(false).Underline(false)
}

func (g *Grid) Draw(p *core.Painter) {
	p = p.WithClip(g.Rect)
	pal := g.Palette
	p.Fill(g.Rect, ' ', pal.Base)
	n := g.layout.Columns()
	if n == 0 {
		return
	}
	x0 := g.Rect.X - g.scrollX
	y := g.Rect.Y

	g.drawBorder(p, x0, y, '╭', '┬', '╮', func(c int) bool {
		a, _, okA := g.layout.HeaderAt(0, c-1)
		b, _, okB := g.layout.HeaderAt(0, c)
		return !okA || !okB || a != b
	})
	y++
	for r := range g.view.Headers {
		g.drawHeaderRow(p, x0, y, r)
		y++
	}
	g.drawBorder(p, x0, y, '├', '┼', '┤', nil)
	y++

	if len(g.view.Rows) == 0 {
		g.drawEmpty(p, x0, y)
		y++
		g.drawBorder(p, x0, y, '├', '┬', '┤', nil)
	} else {
		lines := g.bodyLines()
		for k := 0; k < lines && g.scrollY+k < len(g.view.Rows); k++ {
			g.drawBodyRow(p, x0, y, g.scrollY+k)
			y++
		}
		g.drawBorder(p, x0, y, '├', '┼', '┤', nil)
	}
	y++
	g.drawFooter(p, x0, y)
	y++
	g.drawBorder(p, x0, y, '╰', '┴', '╯', nil)
	if g.prompting {
		g.drawPrompt(p, y)
	}
}

// drawBorder draws a horizontal rule; junction is drawn at column
// boundaries where boundary (nil meaning always) reports a bar.
func (g *Grid) drawBorder(p *core.Painter, x0, y int, left, junction, right rune, boundary func(c int) bool) {
	style := g.Palette.Border
	n := g.layout.Columns()
	end := g.sepX(n)
	for x := 1; x < end; x++ {
		p.SetCell(x0+x, y, '─', style)
	}
	for c := 1; c < n; c++ {
		if boundary == nil || boundary(c) {
			p.SetCell(x0+g.sepX(c), y, junction, style)
		}
	}
	p.SetCell(x0, y, left, style)
	p.SetCell(x0+end, y, right, style)
}

func (g *Grid) drawHeaderRow(p *core.Painter, x0, y, r int) {
	pal := g.Palette
	n := g.layout.Columns()
	for c := 0; c < n; {
		h, starts, ok := g.layout.HeaderAt(r, c)
		span, text, style, align := 1, "", pal.Header, core.AlignLeft
		if ok {
			span = max(1, min(h.ColSpan, n-c))
			if starts {
				text = tablefmt.HeaderLabel(h)
			}
			if h.Sorted != viewmodel.Unsorted {
				style = pal.HeaderSorted
			}
			if h.Group {
				align = core.AlignCenter
			} else {
				align = toCoreAlign(g.layout.Aligns[c])
			}
		}
		inner := g.layout.SpanWidth(c, span)
		p.SetCell(x0+g.sepX(c), y, '│', g.borderOn(pal.Header))
		p.Fill(core.Rect{X: x0 + g.sepX(c) + 1, Y: y, W: inner + 2, H: 1}, ' ', style)
		p.DrawTextIn(x0+g.sepX(c)+2, y, inner, text, style, align)
		c += span
	}
	p.SetCell(x0+g.sepX(n), y, '│', g.borderOn(pal.Header))
}

func (g *Grid) drawBodyRow(p *core.Painter, x0, y, r int) {
	pal := g.Palette
	rowStyle := pal.Base
	if g.Zebra && r%2 == 1 {
		rowStyle = pal.Zebra
	}
	muted, _, _ := pal.ReadOnly.Decompose()
	row := g.view.Rows[r]
	n := g.layout.Columns()
	for c := 0; c < n && c < len(row.Cells); c++ {
		cell := row.Cells[c]
		w := g.layout.Widths[c]
		sx := x0 + g.sepX(c)
		p.SetCell(sx, y, '│', g.borderOn(rowStyle))

		e := g.editorAt(r, c)
		if e != nil && e == g.active {
			p.Fill(core.Rect{X: sx + 1, Y: y, W: w + 2, H: 1}, ' ', pal.Editing)
			drawEditor(p, sx+2, y, w, e, pal.Editing, pal.Caret)
			continue
		}

		style := rowStyle
		if !cell.Editable {
			style = style.Foreground(muted)
		}
		if g.IsFocused() && r == g.row && c == g.col {
			style = pal.Cursor
		}
		p.Fill(core.Rect{X: sx + 1, Y: y, W: w + 2, H: 1}, ' ', style)
		p.DrawTextIn(sx+2, y, w, cell.Value, style, toCoreAlign(g.layout.Aligns[c]))
	}
	p.SetCell(x0+g.sepX(n), y, '│', g.borderOn(rowStyle))
}

func (g *Grid) drawEmpty(p *core.Painter, x0, y int) {
	pal := g.Palette
	n := g.layout.Columns()
	inner := g.layout.SpanWidth(0, n)
	p.SetCell(x0, y, '│', g.Palette.Border)
	p.DrawTextIn(x0+2, y, inner, tablefmt.EmptyText, pal.ReadOnly, core.AlignCenter)
	p.SetCell(x0+g.sepX(n), y, '│', g.Palette.Border)
}

func (g *Grid) drawFooter(p *core.Painter, x0, y int) {
	pal := g.Palette
	n := g.layout.Columns()
	for c := 0; c < n; c++ {
		sx := x0 + g.sepX(c)
		p.SetCell(sx, y, '│', pal.Border)
		text := ""
		if c < len(g.view.Footers) {
			text = g.view.Footers[c]
		}
		p.DrawTextIn(sx+2, y, g.layout.Widths[c], text, pal.Footer, core.AlignLeft)
	}
	p.SetCell(x0+g.sepX(n), y, '│', pal.Border)
}

// drawPrompt overlays the quick filter prompt on the bottom border. It
// does not scroll with the table.
func (g *Grid) drawPrompt(p *core.Painter, y int) {
	pal := g.Palette
	x := g.Rect.X + 1
	x += p.DrawText(x, y, promptLabel, pal.HeaderSorted)
	width := min(30, g.Rect.X+g.Rect.W-x-1)
	if width > 0 {
		drawEditor(p, x, y, width, g.prompt, pal.Editing, pal.Caret)
	}
}

// drawEditor draws the editor value into a width-wide slot, scrolled so
// the caret stays visible.
func drawEditor(p *core.Painter, x, y, width int, e *celleditor.Editor, style, caret tcell.Style) {
	runes := []rune(e.Value())
	pos := e.Caret()
	start := 0
	for start < pos && runewidth.StringWidth(string(runes[start:pos])) >= width {
		start++
	}
	p.Fill(core.Rect{X: x, Y: y, W: width, H: 1}, ' ', style)
	col := x
	for i := start; i < len(runes); i++ {
		w := runewidth.RuneWidth(runes[i])
		if col+w > x+width {
			break
		}
		st := style
		if i == pos {
			st = caret
		}
		p.SetCell(col, y, runes[i], st)
		col += w
	}
	if pos == len(runes) {
		if cx := x + runewidth.StringWidth(string(runes[start:pos])); cx < x+width {
			p.SetCell(cx, y, ' ', caret)
		}
	}
}
