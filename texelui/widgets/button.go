// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/button.go
// Summary: Push button activated by Enter, Space or a click.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltable/texelui/core"
)

// Button is a one-line push button drawn as " label ".
// Active marks a toggled state, such as the current page.
type Button struct {
	core.BaseWidget
	Label         string
	Style         tcell.Style
	ActiveStyle   tcell.Style
	DisabledStyle tcell.Style
	Active        bool
	OnClick       func()

	inv func(core.Rect)
}

// NewButton creates a button sized to its label.
func NewButton(x, y int, label string, onClick func()) *Button {
	b := &Button{Label: label, OnClick: onClick}
	b.SetPosition(x, y)
	b.Resize(core.TextWidth(label)+2, 1)
	b.SetFocusable(true)
	b.ApplyStyles(DefaultStyles())
	return b
}

// SetLabel replaces the label and resizes the button to fit.
func (b *Button) SetLabel(label string) {
	b.Label = label
	b.Resize(core.TextWidth(label)+2, 1)
	b.invalidate()
}

// ApplyStyles sets every style at once.
func (b *Button) ApplyStyles(s Styles) {
	b.Style = s.Normal
	b.ActiveStyle = s.Active
	b.DisabledStyle = s.Disabled
	b.SetFocusedStyle(s.Focused, true)
	b.invalidate()
}

func (b *Button) SetInvalidator(fn func(core.Rect)) { b.inv = fn }

func (b *Button) Draw(p *core.Painter) {
	style := b.Style
	switch {
	case !b.Enabled():
		style = b.DisabledStyle
	case b.IsFocused():
		style = b.EffectiveStyle(style)
	case b.Active:
		style = b.ActiveStyle
	}
	p.DrawTextIn(b.Rect.X, b.Rect.Y, b.Rect.W, " "+b.Label+" ", style, core.AlignCenter)
}

// Click runs OnClick unless the button is disabled.
func (b *Button) Click() {
	if !b.Enabled() || b.OnClick == nil {
		return
	}
	b.OnClick()
}

func (b *Button) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
		b.Click()
		b.invalidate()
		return true
	}
	return false
}

// HandleMouse clicks on press inside the button.
func (b *Button) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if ev.Buttons()&tcell.Button1 == 0 || !b.HitTest(x, y) {
		return false
	}
	b.Click()
	b.invalidate()
	return true
}

func (b *Button) Focus() {
	b.BaseWidget.Focus()
	b.invalidate()
}

func (b *Button) Blur() {
	b.BaseWidget.Blur()
	b.invalidate()
}

func (b *Button) invalidate() {
	if b.inv != nil {
		b.inv(b.Rect)
	}
}
