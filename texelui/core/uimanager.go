// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/uimanager.go
// Summary: Owns a widget tree, routes input and composes frames.

package core

import (
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// UIManager owns a set of root widgets and composes them into a buffer.
type UIManager struct {
	mu      sync.Mutex // widgets, focus, capture, buffer
	dirtyMu sync.Mutex // dirty list and notifier

	W, H     int
	widgets  []Widget // later entries draw on top
	bgStyle  tcell.Style
	notifier chan<- bool
	focused  Widget
	capture  Widget
	buf      [][]Cell
	dirty    []Rect
}

// NewUIManager returns an empty manager painting its background with bg.
func NewUIManager(bg tcell.Style) *UIManager {
	return &UIManager{bgStyle: bg}
}

// SetBackground changes the background style and schedules a full redraw.
func (u *UIManager) SetBackground(bg tcell.Style) {
	u.mu.Lock()
	u.bgStyle = bg
	u.buf = nil
	u.mu.Unlock()
	u.InvalidateAll()
}

func (u *UIManager) SetRefreshNotifier(ch chan<- bool) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.notifier = ch
}

// RequestRefresh nudges the host without marking anything dirty.
func (u *UIManager) RequestRefresh() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.requestRefreshLocked()
}

func (u *UIManager) Resize(w, h int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.W, u.H = max(w, 0), max(h, 0)
	u.buf = nil
	u.invalidateAllLocked()
}

func (u *UIManager) AddWidget(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.widgets = append(u.widgets, w)
	u.propagateInvalidator(w)
	u.dirtyMu.Lock()
	u.invalidateAllLocked()
	u.dirtyMu.Unlock()
}

func (u *UIManager) propagateInvalidator(w Widget) {
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(u.Invalidate)
	}
	if cc, ok := w.(ChildContainer); ok {
		cc.VisitChildren(u.propagateInvalidator)
	}
}

// Focus moves focus to w if it is focusable.
func (u *UIManager) Focus(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.focusLocked(w)
}

// Focused returns the focused widget, or nil.
func (u *UIManager) Focused() Widget {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.focused
}

func (u *UIManager) focusLocked(w Widget) {
	if w == nil || !w.Focusable() || u.focused == w {
		return
	}
	if u.focused != nil {
		u.focused.Blur()
	}
	u.focused = w
	w.Focus()
}

// HandleKey offers the key to the focused widget, then handles Tab and
// Shift+Tab as focus traversal.
func (u *UIManager) HandleKey(ev *tcell.EventKey) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.focused != nil {
		handled := u.focused.HandleKey(ev)
		if modal, ok := u.focused.(Modal); ok && modal.IsModal() {
			u.afterInputLocked(handled)
			return handled
		}
		if handled {
			u.afterInputLocked(true)
			return true
		}
	}

	if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyBacktab {
		forward := ev.Key() == tcell.KeyTab && ev.Modifiers()&tcell.ModShift == 0
		if u.cycleFocusLocked(forward) {
			u.afterInputLocked(true)
			return true
		}
	}
	return false
}

// afterInputLocked falls back to a full redraw when a widget consumed
// input without invalidating anything itself.
func (u *UIManager) afterInputLocked(handled bool) {
	if !handled {
		return
	}
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	if len(u.dirty) == 0 {
		u.invalidateAllLocked()
	} else {
		u.requestRefreshLocked()
	}
}

// focusOrderLocked lists focusable widgets in tree order.
func (u *UIManager) focusOrderLocked() []Widget {
	var out []Widget
	var walk func(w Widget)
	walk = func(w Widget) {
		if w.Focusable() {
			out = append(out, w)
		}
		if cc, ok := w.(ChildContainer); ok {
			cc.VisitChildren(walk)
		}
	}
	for _, w := range u.widgets {
		walk(w)
	}
	return out
}

func (u *UIManager) cycleFocusLocked(forward bool) bool {
	order := u.focusOrderLocked()
	if len(order) == 0 {
		return false
	}
	cur := -1
	for i, w := range order {
		if w == u.focused {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && forward:
		next = 0
	case cur < 0:
		next = len(order) - 1
	case forward:
		next = (cur + 1) % len(order)
	default:
		next = (cur - 1 + len(order)) % len(order)
	}
	if order[next] == u.focused {
		return false
	}
	u.focusLocked(order[next])
	return true
}

// HandleMouse implements click-to-focus, press capture and wheel routing.
func (u *UIManager) HandleMouse(ev *tcell.EventMouse) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	x, y := ev.Position()
	buttons := ev.Buttons()
	wasDown := u.capture != nil
	isDown := buttons&tcell.Button1 != 0

	if isDown && !wasDown && u.focused != nil {
		if modal, ok := u.focused.(Modal); ok && modal.IsModal() && !u.focused.HitTest(x, y) {
			modal.DismissModal()
			u.afterInputLocked(true)
			return true
		}
	}

	switch {
	case isDown && !wasDown:
		w := u.topmostAtLocked(x, y)
		if w == nil {
			return false
		}
		u.focusLocked(w)
		u.capture = w
		u.forwardMouseLocked(w, ev)
		u.afterInputLocked(true)
		return true

	case u.capture != nil:
		u.forwardMouseLocked(u.capture, ev)
		if !isDown {
			u.capture = nil
		}
		u.afterInputLocked(true)
		return true

	case buttons&(tcell.WheelUp|tcell.WheelDown) != 0:
		if w := u.topmostAtLocked(x, y); w != nil && u.forwardMouseLocked(w, ev) {
			u.afterInputLocked(true)
			return true
		}
	}
	return false
}

func (u *UIManager) forwardMouseLocked(w Widget, ev *tcell.EventMouse) bool {
	if mw, ok := w.(MouseAware); ok {
		return mw.HandleMouse(ev)
	}
	return false
}

func (u *UIManager) topmostAtLocked(x, y int) Widget {
	sorted := u.sortedWidgetsLocked()
	for i := len(sorted) - 1; i >= 0; i-- {
		if w := deepHit(sorted[i], x, y); w != nil {
			return w
		}
	}
	return nil
}

func deepHit(w Widget, x, y int) Widget {
	if ht, ok := w.(HitTester); ok {
		if dw := ht.WidgetAt(x, y); dw != nil {
			return dw
		}
	}
	if cc, ok := w.(ChildContainer); ok {
		var hit Widget
		cc.VisitChildren(func(child Widget) {
			if hit == nil {
				hit = deepHit(child, x, y)
			}
		})
		if hit != nil {
			return hit
		}
	}
	if w.HitTest(x, y) {
		return w
	}
	return nil
}

// Invalidate marks a region for redraw. Safe for concurrent use.
func (u *UIManager) Invalidate(r Rect) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	if r.Empty() {
		return
	}
	u.dirty = append(u.dirty, r)
	u.requestRefreshLocked()
}

// InvalidateAll marks the whole surface for redraw.
func (u *UIManager) InvalidateAll() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.invalidateAllLocked()
}

// dirtyMu must be held.
func (u *UIManager) invalidateAllLocked() {
	u.dirty = append(u.dirty, Rect{W: u.W, H: u.H})
	u.requestRefreshLocked()
}

// dirtyMu must be held.
func (u *UIManager) requestRefreshLocked() {
	if u.notifier == nil {
		return
	}
	select {
	case u.notifier <- true:
	default:
	}
}

// DrawBounds is the area w paints: its Rect, or more for an Overflower.
func DrawBounds(w Widget) Rect {
	if o, ok := w.(Overflower); ok {
		return o.DrawBounds()
	}
	x, y := w.Position()
	ww, wh := w.Size()
	return Rect{X: x, Y: y, W: ww, H: wh}
}

func zIndex(w Widget) int {
	if zi, ok := w.(ZIndexer); ok {
		return zi.ZIndex()
	}
	return 0
}

func (u *UIManager) sortedWidgetsLocked() []Widget {
	sorted := make([]Widget, len(u.widgets))
	copy(sorted, u.widgets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return zIndex(sorted[i]) < zIndex(sorted[j])
	})
	return sorted
}

// Render redraws dirty regions (everything on the first call) and returns
// the frame buffer.
func (u *UIManager) Render() [][]Cell {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.buf == nil || len(u.buf) != u.H || (u.H > 0 && len(u.buf[0]) != u.W) {
		u.buf = NewBuffer(u.W, u.H, u.bgStyle)
		u.dirtyMu.Lock()
		u.dirty = append(u.dirty, Rect{W: u.W, H: u.H})
		u.dirtyMu.Unlock()
	}

	u.dirtyMu.Lock()
	pending := u.dirty
	u.dirty = nil
	u.dirtyMu.Unlock()

	sorted := u.sortedWidgetsLocked()
	surface := Rect{W: u.W, H: u.H}
	for _, clip := range mergeRects(pending) {
		clip = clip.Intersect(surface)
		if clip.Empty() {
			continue
		}
		p := NewPainter(u.buf, clip)
		p.Fill(clip, ' ', u.bgStyle)
		for _, w := range sorted {
			if !DrawBounds(w).Intersect(clip).Empty() {
				w.Draw(p)
			}
		}
	}
	return u.buf
}

// mergeRects unions overlapping or edge-adjacent rectangles.
func mergeRects(in []Rect) []Rect {
	out := make([]Rect, 0, len(in))
	for _, r := range in {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	for changed := true; changed; {
		changed = false
		for i := 0; i < len(out) && !changed; i++ {
			for j := i + 1; j < len(out) && !changed; j++ {
				if touches(out[i], out[j]) {
					out[i] = out[i].Union(out[j])
					out = append(out[:j], out[j+1:]...)
					changed = true
				}
			}
		}
	}
	return out
}

// touches reports overlap or a shared edge or corner.
func touches(a, b Rect) bool {
	grown := Rect{X: a.X - 1, Y: a.Y - 1, W: a.W + 2, H: a.H + 2}
	return !grown.Intersect(b).Empty()
}
