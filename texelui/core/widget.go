// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/widget.go
// Summary: Widget contract and shared widget state.

package core

import "github.com/gdamore/tcell/v2"

// Widget is the minimal contract for drawable UI elements.
type Widget interface {
	SetPosition(x, y int)
	Position() (int, int)
	Resize(w, h int)
	Size() (int, int)
	Draw(p *Painter)
	Focusable() bool
	Focus()
	Blur()
	HandleKey(ev *tcell.EventKey) bool
	HitTest(x, y int) bool
}

// BaseWidget provides position, size and focus bookkeeping.
type BaseWidget struct {
	Rect      Rect
	focused   bool
	focusable bool
	disabled  bool

	focusStyle    tcell.Style
	hasFocusStyle bool
}

func (b *BaseWidget) SetPosition(x, y int) { b.Rect.X, b.Rect.Y = x, y }
func (b *BaseWidget) Position() (int, int) { return b.Rect.X, b.Rect.Y }

func (b *BaseWidget) Resize(w, h int) {
	b.Rect.W, b.Rect.H = max(w, 0), max(h, 0)
}

func (b *BaseWidget) Size() (int, int)    { return b.Rect.W, b.Rect.H }
func (b *BaseWidget) SetFocusable(f bool) { b.focusable = f }

// Focusable reports whether the widget accepts focus. Disabled widgets never do.
func (b *BaseWidget) Focusable() bool { return b.focusable && !b.disabled }

func (b *BaseWidget) Focus() {
	if b.Focusable() {
		b.focused = true
	}
}

func (b *BaseWidget) Blur()                             { b.focused = false }
func (b *BaseWidget) IsFocused() bool                   { return b.focused }
func (b *BaseWidget) HitTest(x, y int) bool             { return b.Rect.Contains(x, y) }
func (b *BaseWidget) HandleKey(ev *tcell.EventKey) bool { return false }

// SetEnabled toggles the widget; disabling also drops focus.
func (b *BaseWidget) SetEnabled(on bool) {
	b.disabled = !on
	if b.disabled {
		b.focused = false
	}
}

func (b *BaseWidget) Enabled() bool { return !b.disabled }

// SetFocusedStyle sets the style EffectiveStyle returns while focused.
func (b *BaseWidget) SetFocusedStyle(style tcell.Style, enabled bool) {
	b.focusStyle, b.hasFocusStyle = style, enabled
}

// EffectiveStyle returns the focused style when focused and configured,
// base otherwise.
func (b *BaseWidget) EffectiveStyle(base tcell.Style) tcell.Style {
	if b.focused && b.hasFocusStyle {
		return b.focusStyle
	}
	return base
}

// MouseAware widgets can consume mouse events directly.
type MouseAware interface {
	HandleMouse(ev *tcell.EventMouse) bool
}

// InvalidationAware widgets accept a callback to mark dirty regions.
type InvalidationAware interface {
	SetInvalidator(func(Rect))
}

// ChildContainer allows recursive operations over widget trees.
type ChildContainer interface {
	VisitChildren(func(Widget))
}

// HitTester lets a container return the deepest widget under a point.
type HitTester interface {
	WidgetAt(x, y int) Widget
}

// Modal widgets receive every key while open and are dismissed by a click
// outside their bounds.
type Modal interface {
	IsModal() bool
	DismissModal()
}

// Overflower widgets paint outside their Rect, like an open dropdown list.
type Overflower interface {
	DrawBounds() Rect
}

// ZIndexer widgets draw above widgets with a lower index.
type ZIndexer interface {
	ZIndex() int
}
