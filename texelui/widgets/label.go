// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/label.go
// Summary: Static single-line text.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltable/texelui/core"
)

// Label draws one line of text truncated to its width.
type Label struct {
	core.BaseWidget
	Text  string
	Style tcell.Style
	Align core.Align

	inv func(core.Rect)
}

// NewLabel creates a label of the given width.
func NewLabel(x, y, w int, text string) *Label {
	l := &Label{Text: text}
	l.SetPosition(x, y)
	l.Resize(w, 1)
	return l
}

// SetText replaces the text and invalidates the label.
func (l *Label) SetText(text string) {
	if text == l.Text {
		return
	}
	l.Text = text
	if l.inv != nil {
		l.inv(l.Rect)
	}
}

func (l *Label) SetInvalidator(fn func(core.Rect)) { l.inv = fn }

func (l *Label) Draw(p *core.Painter) {
	p.DrawTextIn(l.Rect.X, l.Rect.Y, l.Rect.W, l.Text, l.Style, l.Align)
}
