// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltable/texelui/core"
)

type miniWidget struct {
	core.BaseWidget
	ch      rune
	keys    []rune
	clicks  int
	blurred int
	modal   bool
}

func newMini(x, y, w, h int, ch rune, focusable bool) *miniWidget {
	m := &miniWidget{ch: ch}
	m.SetPosition(x, y)
	m.Resize(w, h)
	m.SetFocusable(focusable)
	return m
}

func (m *miniWidget) Draw(p *core.Painter) {
	p.Fill(m.Rect, m.ch, tcell.StyleDefault)
}

func (m *miniWidget) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	m.keys = append(m.keys, ev.Rune())
	return true
}

func (m *miniWidget) HandleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons()&tcell.Button1 != 0 {
		m.clicks++
	}
	return true
}

func (m *miniWidget) Blur() {
	m.BaseWidget.Blur()
	m.blurred++
}

func (m *miniWidget) IsModal() bool { return m.modal }
func (m *miniWidget) DismissModal() { m.modal = false }

func TestUIManagerComposesWidgets(t *testing.T) {
	ui := core.NewUIManager(tcell.StyleDefault)
	ui.Resize(6, 3)
	ui.AddWidget(newMini(0, 0, 3, 1, 'a', false))
	ui.AddWidget(newMini(2, 0, 3, 2, 'b', false))

	buf := ui.Render()
	if len(buf) != 3 || len(buf[0]) != 6 {
		t.Fatalf("unexpected buffer size %dx%d", len(buf[0]), len(buf))
	}
	got := string([]rune{buf[0][0].Ch, buf[0][2].Ch, buf[0][4].Ch, buf[0][5].Ch})
	if got != "abb " {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestUIManagerDirtyClipsRestrictDraw(t *testing.T) {
	ui := core.NewUIManager(tcell.StyleDefault)
	ui.Resize(4, 1)
	m := newMini(0, 0, 4, 1, 'x', false)
	ui.AddWidget(m)
	ui.Render()

	m.ch = 'y'
	ui.Invalidate(core.Rect{X: 1, Y: 0, W: 1, H: 1})
	buf := ui.Render()
	got := string([]rune{buf[0][0].Ch, buf[0][1].Ch, buf[0][2].Ch})
	if got != "xyx" {
		t.Fatalf("redraw outside clip: %q", got)
	}
}

func TestUIManagerKeyFallbackRedraw(t *testing.T) {
	ui := core.NewUIManager(tcell.StyleDefault)
	ui.Resize(3, 1)
	m := newMini(0, 0, 3, 1, 'x', true)
	ui.AddWidget(m)
	ui.Focus(m)
	ui.Render()

	m.ch = 'z'
	if !ui.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', 0)) {
		t.Fatal("key not handled")
	}
	if buf := ui.Render(); buf[0][2].Ch != 'z' {
		t.Fatalf("expected full redraw after consumed key, got %q", buf[0][2].Ch)
	}
	if string(m.keys) != "q" {
		t.Fatalf("keys = %q", string(m.keys))
	}
}

func TestTabCyclesFocusableWidgets(t *testing.T) {
	ui := core.NewUIManager(tcell.StyleDefault)
	ui.Resize(10, 1)
	a := newMini(0, 0, 2, 1, 'a', true)
	skip := newMini(2, 0, 2, 1, 's', false)
	b := newMini(4, 0, 2, 1, 'b', true)
	for _, w := range []core.Widget{a, skip, b} {
		ui.AddWidget(w)
	}

	tab := tcell.NewEventKey(tcell.KeyTab, 0, 0)
	backtab := tcell.NewEventKey(tcell.KeyBacktab, 0, 0)
	steps := []struct {
		ev   *tcell.EventKey
		want core.Widget
	}{
		{tab, a},
		{tab, b},
		{tab, a},
		{backtab, b},
	}
	for i, s := range steps {
		ui.HandleKey(s.ev)
		if ui.Focused() != s.want {
			t.Fatalf("step %d: focus on wrong widget", i)
		}
	}
	if a.blurred == 0 {
		t.Fatal("focus change did not blur the previous widget")
	}
}

func TestClickFocusesAndCaptures(t *testing.T) {
	ui := core.NewUIManager(tcell.StyleDefault)
	ui.Resize(10, 2)
	a := newMini(0, 0, 5, 1, 'a', true)
	b := newMini(5, 0, 5, 1, 'b', true)
	ui.AddWidget(a)
	ui.AddWidget(b)

	ui.HandleMouse(tcell.NewEventMouse(6, 0, tcell.Button1, 0))
	ui.HandleMouse(tcell.NewEventMouse(1, 0, tcell.Button1, 0)) // drag stays captured
	ui.HandleMouse(tcell.NewEventMouse(1, 0, tcell.ButtonNone, 0))
	if ui.Focused() != b || b.clicks != 2 || a.clicks != 0 {
		t.Fatalf("focus/capture wrong: a=%d b=%d", a.clicks, b.clicks)
	}
	if ui.HandleMouse(tcell.NewEventMouse(3, 1, tcell.Button1, 0)) {
		t.Fatal("click on empty space reported handled")
	}
}

func TestModalDismissedByOutsideClick(t *testing.T) {
	ui := core.NewUIManager(tcell.StyleDefault)
	ui.Resize(10, 2)
	m := newMini(0, 0, 3, 1, 'm', true)
	other := newMini(5, 0, 3, 1, 'o', true)
	ui.AddWidget(m)
	ui.AddWidget(other)
	ui.Focus(m)
	m.modal = true

	if !ui.HandleMouse(tcell.NewEventMouse(6, 0, tcell.Button1, 0)) {
		t.Fatal("outside click not consumed")
	}
	if m.modal || ui.Focused() != m || other.clicks != 0 {
		t.Fatal("outside click should only dismiss the modal")
	}
}

func TestPainterClipsAndTruncates(t *testing.T) {
	buf := core.NewBuffer(6, 1, tcell.StyleDefault)
	p := core.NewPainter(buf, core.Rect{X: 1, W: 4, H: 1})
	p.DrawText(0, 0, "abcdef", tcell.StyleDefault)
	if got := string([]rune{buf[0][0].Ch, buf[0][1].Ch, buf[0][4].Ch, buf[0][5].Ch}); got != " be " {
		t.Fatalf("clipped text = %q", got)
	}

	buf = core.NewBuffer(6, 1, tcell.StyleDefault)
	p = core.NewPainter(buf, core.Rect{W: 6, H: 1})
	p.DrawTextIn(0, 0, 5, "Иванов Иван", tcell.StyleDefault, core.AlignLeft)
	var row []rune
	for _, c := range buf[0][:5] {
		row = append(row, c.Ch)
	}
	if string(row) != "Иван…" {
		t.Fatalf("truncated = %q", string(row))
	}

	p.DrawTextIn(0, 0, 5, "42", tcell.StyleDefault, core.AlignRight)
	if buf[0][3].Ch != '4' || buf[0][4].Ch != '2' || buf[0][0].Ch != ' ' {
		t.Fatal("right alignment failed")
	}

	p.DrawText(0, 0, "漢x", tcell.StyleDefault)
	if buf[0][0].Ch != '漢' || buf[0][1].Ch != 0 || buf[0][2].Ch != 'x' {
		t.Fatalf("wide rune layout = %q %q %q", buf[0][0].Ch, buf[0][1].Ch, buf[0][2].Ch)
	}
}

type overflowWidget struct {
	core.BaseWidget
	below int
}

func (o *overflowWidget) DrawBounds() core.Rect {
	r := o.Rect
	r.H += o.below
	return r
}

func (o *overflowWidget) Draw(p *core.Painter) {
	p.Fill(o.DrawBounds(), 'o', tcell.StyleDefault)
}

func TestUIManagerRedrawsOverflowingWidget(t *testing.T) {
	ui := core.NewUIManager(tcell.StyleDefault)
	ui.Resize(2, 3)
	o := &overflowWidget{below: 2}
	o.Resize(2, 1)
	ui.AddWidget(o)
	ui.Render()

	ui.Invalidate(core.Rect{X: 0, Y: 2, W: 2, H: 1})
	buf := ui.Render()
	if buf[2][0].Ch != 'o' || buf[2][1].Ch != 'o' {
		t.Fatalf("overflow not redrawn: %q%q", buf[2][0].Ch, buf[2][1].Ch)
	}
}

func TestRectUnion(t *testing.T) {
	a := core.Rect{X: 1, Y: 1, W: 2, H: 2}
	b := core.Rect{X: 4, Y: 0, W: 1, H: 1}
	if got, want := a.Union(b), (core.Rect{X: 1, Y: 0, W: 4, H: 3}); got != want {
		t.Fatalf("union = %+v, want %+v", got, want)
	}
	if got := a.Union(core.Rect{}); got != a {
		t.Fatalf("union with empty = %+v", got)
	}
}
