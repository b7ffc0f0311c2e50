// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tablefmt/render.go
// Summary: Box-drawn text rendering of one table page with grouped headers.
// Usage: Static output mode of the texeltable command.

package tablefmt

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texeltable/internal/schema"
	"github.com/framegrace/texeltable/internal/viewmodel"
)

// DefaultMaxColumnWidth caps column widths when Options leaves it unset.
const DefaultMaxColumnWidth = 40

// EmptyText fills the body of a page without rows.
const EmptyText = "Нет данных"

// Options tunes rendering.
type Options struct {
	MaxColumnWidth int
}

// headerSlot is the header cell occupying one grid position, with the
// header row it starts in.
type headerSlot struct {
	cell viewmodel.HeaderCell
	row  int
}

// Layout holds the column geometry of one page. The interactive grid
// draws with the same geometry as the static renderer.
type Layout struct {
	Widths []int
	Aligns []schema.Alignment

	ncols int
	grid  [][]*headerSlot
}

// HeaderLabel is the header text with the sort glyph appended.
func HeaderLabel(h viewmodel.HeaderCell) string {
	if g := h.Sorted.Glyph(); g != "" {
		return h.Label + " " + g
	}
	return h.Label
}

// NewLayout measures v.
func NewLayout(v viewmodel.View, opts Options) *Layout {
	maxW := opts.MaxColumnWidth
	if maxW <= 0 {
		maxW = DefaultMaxColumnWidth
	}
	l := &Layout{ncols: len(v.Footers)}
	l.Aligns = resolveAlignments(v, l.ncols)

	l.grid = make([][]*headerSlot, len(v.Headers))
	for r := range l.grid {
		l.grid[r] = make([]*headerSlot, l.ncols)
	}
	for r, row := range v.Headers {
		for _, h := range row {
			slot := &headerSlot{cell: h, row: r}
			for rr := r; rr < r+h.RowSpan && rr < len(l.grid); rr++ {
				for c := h.Col; c < h.Col+h.ColSpan && c < l.ncols; c++ {
					l.grid[rr][c] = slot
				}
			}
		}
	}

	l.Widths = make([]int, l.ncols)
	grow := func(c int, s string) {
		if w := min(runewidth.StringWidth(s), maxW); w > l.Widths[c] {
			l.Widths[c] = w
		}
	}
	for c, f := range v.Footers {
		grow(c, f)
	}
	for _, row := range v.Rows {
		for c, cell := range row.Cells {
			if c < l.ncols {
				grow(c, cell.Value)
			}
		}
	}
	for _, row := range v.Headers {
		for _, h := range row {
			if h.ColSpan == 1 && h.Col < l.ncols {
				grow(h.Col, HeaderLabel(h))
			}
		}
	}
	// Groups wider than their columns widen the last column they cover.
	for _, row := range v.Headers {
		for _, h := range row {
			if h.ColSpan < 2 || h.Col+h.ColSpan > l.ncols {
				continue
			}
			need := min(runewidth.StringWidth(HeaderLabel(h)), maxW)
			if have := l.SpanWidth(h.Col, h.ColSpan); need > have {
				l.Widths[h.Col+h.ColSpan-1] += need - have
			}
		}
	}
	return l
}

// SpanWidth is the inner width of span columns starting at col, counting
// the " │ " separators between them.
func (l *Layout) SpanWidth(col, span int) int {
	w := 3 * (span - 1)
	for c := col; c < col+span; c++ {
		w += l.Widths[c]
	}
	return w
}

// Render formats the page as lines of text: header rows, body, footer row
// and borders.
func Render(v viewmodel.View, opts Options) []string {
	l := NewLayout(v, opts)
	if l.ncols == 0 {
		return nil
	}

	var lines []string
	lines = append(lines, l.border('╭', '┬', '╮', l.headerBoundary(0)))
	for r := range v.Headers {
		lines = append(lines, l.headerLine(r))
	}
	if len(v.Headers) > 0 {
		lines = append(lines, l.border('├', '┼', '┤', always))
	}
	if len(v.Rows) == 0 {
		lines = append(lines, "│ "+fit(EmptyText, l.SpanWidth(0, l.ncols), schema.AlignCenter)+" │")
		lines = append(lines, l.border('├', '┬', '┤', always))
	} else {
		for _, row := range v.Rows {
			values := make([]string, l.ncols)
			for c, cell := range row.Cells {
				if c < l.ncols {
					values[c] = cell.Value
				}
			}
			lines = append(lines, l.row(values, l.Aligns))
		}
		lines = append(lines, l.border('├', '┼', '┤', always))
	}
	lines = append(lines, l.row(v.Footers, nil))
	lines = append(lines, l.border('╰', '┴', '╯', always))
	return lines
}

// Write renders v followed by its status line.
func Write(w io.Writer, v viewmodel.View, opts Options) error {
	lines := Render(v, opts)
	lines = append(lines, Status(v))
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func always(int) bool { return true }

// Columns is the number of leaf columns.
func (l *Layout) Columns() int { return l.ncols }

// HeaderAt returns the header cell covering leaf column col on header row
// row, and whether that cell starts on row.
func (l *Layout) HeaderAt(row, col int) (cell viewmodel.HeaderCell, starts, ok bool) {
	if row < 0 || row >= len(l.grid) || col < 0 || col >= l.ncols {
		return viewmodel.HeaderCell{}, false, false
	}
	slot := l.grid[row][col]
	if slot == nil {
		return viewmodel.HeaderCell{}, false, false
	}
	return slot.cell, slot.row == row, true
}

// headerBoundary reports, for header row r, whether a vertical bar
// separates column c from column c+1.
func (l *Layout) headerBoundary(r int) func(c int) bool {
	return func(c int) bool {
		if r >= len(l.grid) {
			return true
		}
		return l.grid[r][c] != l.grid[r][c+1]
	}
}

func (l *Layout) border(left, junction, right rune, boundary func(c int) bool) string {
	var sb strings.Builder
	sb.WriteRune(left)
	for c, w := range l.Widths {
		sb.WriteString(strings.Repeat("─", w+2))
		if c < l.ncols-1 {
			if boundary(c) {
				sb.WriteRune(junction)
			} else {
				sb.WriteRune('─')
			}
		}
	}
	sb.WriteRune(right)
	return sb.String()
}

func (l *Layout) headerLine(r int) string {
	var sb strings.Builder
	sb.WriteString("│")
	for c := 0; c < l.ncols; {
		slot := l.grid[r][c]
		span, text, align := 1, "", schema.AlignLeft
		if slot != nil {
			span = max(1, min(slot.cell.ColSpan, l.ncols-c))
			if slot.row == r {
				text = HeaderLabel(slot.cell)
			}
			if slot.cell.Group {
				align = schema.AlignCenter
			} else {
				align = l.Aligns[c]
			}
		}
		sb.WriteString(" " + fit(text, l.SpanWidth(c, span), align) + " │")
		c += span
	}
	return sb.String()
}

func (l *Layout) row(values []string, aligns []schema.Alignment) string {
	var sb strings.Builder
	sb.WriteString("│")
	for c, w := range l.Widths {
		align := schema.AlignLeft
		if aligns != nil {
			align = aligns[c]
		}
		v := ""
		if c < len(values) {
			v = values[c]
		}
		sb.WriteString(" " + fit(v, w, align) + " │")
	}
	return sb.String()
}

// fit truncates or pads s to exactly width display columns.
func fit(s string, width int, align schema.Alignment) string {
	s = runewidth.Truncate(s, width, "…")
	pad := width - runewidth.StringWidth(s)
	switch align {
	case schema.AlignRight:
		return strings.Repeat(" ", pad) + s
	case schema.AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	}
	return s + strings.Repeat(" ", pad)
}
