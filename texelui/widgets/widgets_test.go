// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets_test

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltable/texelui/core"
	"github.com/framegrace/texeltable/texelui/widgets"
)

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func rowText(buf [][]core.Cell, y int) string {
	var sb strings.Builder
	for _, c := range buf[y] {
		if c.Ch != 0 {
			sb.WriteRune(c.Ch)
		}
	}
	return sb.String()
}

func TestButtonClicks(t *testing.T) {
	clicks := 0
	b := widgets.NewButton(2, 0, "След", func() { clicks++ })
	if w, h := b.Size(); w != 6 || h != 1 {
		t.Fatalf("size = %dx%d", w, h)
	}

	b.HandleKey(key(tcell.KeyEnter))
	b.HandleKey(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	b.HandleMouse(tcell.NewEventMouse(3, 0, tcell.Button1, tcell.ModNone))
	b.HandleMouse(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone)) // outside
	if clicks != 3 {
		t.Fatalf("clicks = %d", clicks)
	}

	b.SetEnabled(false)
	b.HandleKey(key(tcell.KeyEnter))
	if clicks != 3 || b.Focusable() {
		t.Fatal("disabled button still active")
	}
}

func TestButtonDrawsInUIManager(t *testing.T) {
	ui := core.NewUIManager(tcell.StyleDefault)
	ui.Resize(10, 1)
	b := widgets.NewButton(1, 0, "1", nil)
	b.Active = true
	ui.AddWidget(b)
	buf := ui.Render()
	if got := rowText(buf, 0); got != "  1       " {
		t.Fatalf("row = %q", got)
	}
	if buf[0][2].Style != b.ActiveStyle {
		t.Fatal("active button not drawn with active style")
	}
}

func TestComboBoxKeyboardSelection(t *testing.T) {
	var changes []string
	cb := widgets.NewComboBox(0, 0, 14, []string{"Показать 8", "Показать 20", "Показать 30"}, 0)
	cb.OnChange = func(i int, v string) { changes = append(changes, v) }

	cb.HandleKey(key(tcell.KeyEnter))
	if !cb.Expanded() || !cb.IsModal() {
		t.Fatal("enter did not open the list")
	}
	cb.HandleKey(key(tcell.KeyDown))
	cb.HandleKey(key(tcell.KeyDown))
	cb.HandleKey(key(tcell.KeyDown)) // stops at the last item
	cb.HandleKey(key(tcell.KeyEnter))
	if cb.Expanded() || cb.Selected() != 2 || cb.Value() != "Показать 30" {
		t.Fatalf("selected %d %q", cb.Selected(), cb.Value())
	}

	cb.HandleKey(key(tcell.KeyUp))
	cb.HandleKey(key(tcell.KeyHome))
	cb.HandleKey(key(tcell.KeyEsc))
	if cb.Selected() != 2 {
		t.Fatal("escape changed the selection")
	}
	if len(changes) != 1 || changes[0] != "Показать 30" {
		t.Fatalf("changes = %v", changes)
	}
}

func TestComboBoxDropUpMouse(t *testing.T) {
	ui := core.NewUIManager(tcell.StyleDefault)
	ui.Resize(14, 6)
	picked := -1
	cb := widgets.NewComboBox(0, 5, 14, []string{"8", "20", "30"}, 0)
	cb.DropUp = true
	cb.OnChange = func(i int, _ string) { picked = i }
	ui.AddWidget(cb)

	ui.HandleMouse(tcell.NewEventMouse(3, 5, tcell.Button1, tcell.ModNone))
	ui.HandleMouse(tcell.NewEventMouse(3, 5, tcell.ButtonNone, tcell.ModNone))
	if !cb.Expanded() {
		t.Fatal("click did not open the list")
	}
	buf := ui.Render()
	// border at row 0, items at rows 1..3, box at row 5
	if got := strings.TrimSpace(strings.Trim(rowText(buf, 2), "│")); got != "20" {
		t.Fatalf("row 2 = %q", rowText(buf, 2))
	}

	ui.HandleMouse(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))
	if picked != 2 || cb.Expanded() {
		t.Fatalf("picked %d expanded %v", picked, cb.Expanded())
	}
}

func TestLabelTruncates(t *testing.T) {
	buf := core.NewBuffer(6, 1, tcell.StyleDefault)
	l := widgets.NewLabel(0, 0, 6, "строки 1–8 из 1 000")
	l.Draw(core.NewPainter(buf, core.Rect{W: 6, H: 1}))
	if got := rowText(buf, 0); got != "строк…" {
		t.Fatalf("label = %q", got)
	}
}
