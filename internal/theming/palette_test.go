// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package theming

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestColorsFromChroma(t *testing.T) {
	c := ColorsFromChroma("catppuccin-mocha")
	if r, _, _ := c.Background.RGB(); r < 0 {
		t.Fatalf("background has no RGB value: %v", c.Background)
	}
	if c.Background == c.Foreground {
		t.Fatalf("background equals foreground")
	}
	if got := ColorsFromChroma("no-such-style"); got != c {
		t.Fatalf("unknown style did not fall back to default: %+v", got)
	}
	if got := ColorsFromChroma(""); got != c {
		t.Fatalf("empty name did not select the default style")
	}
}

func TestWithOverrides(t *testing.T) {
	c := ColorsFromChroma("").WithOverrides(map[string]string{
		"accent": "#ff0000",
		"muted":  "not-a-color",
		"bogus":  "#00ff00",
	})
	if c.Accent != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("accent = %v", c.Accent)
	}
	if c.Muted != ColorsFromChroma("").Muted {
		t.Fatalf("invalid override changed muted color")
	}
}

func TestBlend(t *testing.T) {
	black := tcell.NewRGBColor(0, 0, 0)
	white := tcell.NewRGBColor(255, 255, 255)
	if got := Blend(black, white, 0); got != black {
		t.Fatalf("Blend t=0 = %v", got)
	}
	if got := Blend(black, white, 1); got != white {
		t.Fatalf("Blend t=1 = %v", got)
	}
	mid := Blend(black, white, 0.5)
	if r, _, _ := mid.RGB(); r <= 0 || r >= 255 {
		t.Fatalf("Blend t=0.5 red = %d", r)
	}
	if got := Blend(tcell.ColorDefault, white, 0.5); got != tcell.ColorDefault {
		t.Fatalf("default color should pass through, got %v", got)
	}
}

func TestDeriveDistinguishesStates(t *testing.T) {
	p := ColorsFromChroma("").Derive()
	if p.Cursor == p.Base || p.Zebra == p.Base || p.Editing == p.Base {
		t.Fatalf("derived row styles must differ from base")
	}
	if p.ButtonFocused == p.Button {
		t.Fatalf("focused button style equals button style")
	}
}
