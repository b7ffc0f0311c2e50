// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/painter.go
// Summary: Cell buffer, rectangles and a clipped painter.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell. Ch is 0 for the trailing half of a wide rune.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Rect is a rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Intersect returns the overlap of r and o; the result is empty when they
// do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Union returns the smallest rectangle covering r and o. Empty
// rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// NewBuffer allocates a w×h buffer filled with blanks in style.
func NewBuffer(w, h int, style tcell.Style) [][]Cell {
	buf := make([][]Cell, h)
	for y := range buf {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: style}
		}
		buf[y] = row
	}
	return buf
}

// Painter writes into a cell buffer, ignoring anything outside its clip.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter returns a painter limited to clip and the buffer bounds.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	bounds := Rect{}
	if len(buf) > 0 {
		bounds = Rect{W: len(buf[0]), H: len(buf)}
	}
	return &Painter{buf: buf, clip: clip.Intersect(bounds)}
}

// Clip returns the painter's effective clip.
func (p *Painter) Clip() Rect { return p.clip }

// WithClip returns a painter further limited to r.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// SetCell writes one rune. Wide runes also claim the next cell.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
	if runewidth.RuneWidth(ch) == 2 && p.clip.Contains(x+1, y) {
		p.buf[y][x+1] = Cell{Ch: 0, Style: style}
	}
}

// SetStyle restyles a cell keeping its rune.
func (p *Painter) SetStyle(x, y int, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	p.buf[y][x].Style = style
}

// Fill paints r with ch.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	r = r.Intersect(p.clip)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.buf[y][x] = Cell{Ch: ch, Style: style}
		}
	}
}

// DrawText writes s starting at (x, y) and returns the columns used.
func (p *Painter) DrawText(x, y int, s string, style tcell.Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.SetCell(col, y, r, style)
		col += w
	}
	return col - x
}

// DrawTextIn writes s into a width-wide slot, truncating with an ellipsis
// and padding the remainder with blanks.
func (p *Painter) DrawTextIn(x, y, width int, s string, style tcell.Style, align Align) {
	if width <= 0 {
		return
	}
	s = Truncate(s, width)
	pad := width - TextWidth(s)
	left := 0
	switch align {
	case AlignRight:
		left = pad
	case AlignCenter:
		left = pad / 2
	}
	p.Fill(Rect{X: x, Y: y, W: width, H: 1}, ' ', style)
	p.DrawText(x+left, y, s, style)
}

// Align positions text inside a slot.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// TextWidth returns the display width of s.
func TextWidth(s string) int { return runewidth.StringWidth(s) }

// Truncate shortens s to width columns, ending in "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
