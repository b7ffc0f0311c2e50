// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/palette.go
// Summary: Widget palette derived from a chroma style.
// Usage: Apps call ForApp once at construction and restyle from the result.

package theming

import (
	"log"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/texeltable/config"
)

// DefaultStyle is used when no style is configured or the name is unknown.
const DefaultStyle = "catppuccin-mocha"

// Colors are the base colors a palette is derived from.
type Colors struct {
	Background tcell.Color
	Foreground tcell.Color
	Accent     tcell.Color
	Muted      tcell.Color
	Header     tcell.Color
	Edit       tcell.Color
}

// Palette holds the styles widgets draw with.
type Palette struct {
	Colors Colors

	Base          tcell.Style
	Header        tcell.Style
	HeaderSorted  tcell.Style
	Footer        tcell.Style
	Zebra         tcell.Style
	Cursor        tcell.Style
	Editing       tcell.Style
	Caret         tcell.Style
	ReadOnly      tcell.Style
	Border        tcell.Style
	Button        tcell.Style
	ButtonFocused tcell.Style
	ButtonActive  tcell.Style
	Disabled      tcell.Style
	Status        tcell.Style
}

// ColorsFromChroma reads base colors from the named chroma style.
func ColorsFromChroma(name string) Colors {
	if name == "" {
		name = DefaultStyle
	}
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		log.Printf("Theme: unknown style %q, using %s", name, DefaultStyle)
		style = styles.Get(DefaultStyle)
	}

	bg := style.Get(chroma.Background)
	c := Colors{
		Background: fromChroma(bg.Background, tcell.ColorBlack),
		Foreground: fromChroma(bg.Colour, tcell.ColorWhite),
	}
	c.Accent = fromChroma(style.Get(chroma.Keyword).Colour, tcell.ColorBlue)
	c.Muted = fromChroma(style.Get(chroma.Comment).Colour, tcell.ColorGray)
	c.Header = fromChroma(style.Get(chroma.NameFunction).Colour, c.Foreground)
	c.Edit = fromChroma(style.Get(chroma.LiteralString).Colour, c.Foreground)
	return c
}

func fromChroma(c chroma.Colour, fallback tcell.Color) tcell.Color {
	if !c.IsSet() {
		return fallback
	}
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

// WithOverrides replaces base colors named in overrides. Keys are the
// lower-case field names; values are "#rrggbb" strings.
func (c Colors) WithOverrides(overrides map[string]string) Colors {
	for key, hex := range overrides {
		col, err := colorful.Hex(hex)
		if err != nil {
			log.Printf("Theme: ignoring color %s=%q: %v", key, hex, err)
			continue
		}
		tc := toTcell(col)
		switch key {
		case "background":
			c.Background = tc
		case "foreground":
			c.Foreground = tc
		case "accent":
			c.Accent = tc
		case "muted":
			c.Muted = tc
		case "header":
			c.Header = tc
		case "edit":
			c.Edit = tc
		default:
			log.Printf("Theme: unknown color key %q", key)
		}
	}
	return c
}

// Derive builds the widget styles from the base colors.
func (c Colors) Derive() Palette {
	base := tcell.StyleDefault.Foreground(c.Foreground).Background(c.Background)
	headerBg := Blend(c.Background, c.Foreground, 0.12)
	cursorBg := Blend(c.Background, c.Accent, 0.35)
	return Palette{
		Colors:        c,
		Base:          base,
		Header:        base.Foreground(c.Header).Background(headerBg).Bold(true),
		HeaderSorted:  base.Foreground(c.Accent).Background(headerBg).Bold(true),
		Footer:        base.Foreground(c.Muted).Italic(true),
		Zebra:         base.Background(Blend(c.Background, c.Foreground, 0.05)),
		Cursor:        base.Background(cursorBg),
		Editing:       base.Foreground(c.Edit).Background(Blend(c.Background, c.Edit, 0.15)).Underline(true),
		Caret:         base.Foreground(c.Background).Background(c.Edit),
		ReadOnly:      base.Foreground(c.Muted),
		Border:        base.Foreground(Blend(c.Background, c.Foreground, 0.4)),
		Button:        base.Foreground(c.Foreground).Background(headerBg),
		ButtonFocused: base.Foreground(c.Background).Background(c.Accent).Bold(true),
		ButtonActive:  base.Foreground(c.Accent).Background(headerBg).Bold(true).Underline(true),
		Disabled:      base.Foreground(Blend(c.Background, c.Muted, 0.5)).Background(headerBg),
		Status:        base.Foreground(c.Muted),
	}
}

// Blend mixes a toward b by t in Lab space. Colors without an RGB value
// (terminal defaults) are returned unchanged.
func Blend(a, b tcell.Color, t float64) tcell.Color {
	ca, ok := toColorful(a)
	if !ok {
		return a
	}
	cb, ok := toColorful(b)
	if !ok {
		return a
	}
	return toTcell(ca.BlendLab(cb, t).Clamped())
}

func toColorful(c tcell.Color) (colorful.Color, bool) {
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ForApp resolves the palette of a named app: the app's "theme" key, then
// the system "theme" key, then DefaultStyle, with "<app>.colors" overrides.
func ForApp(app string) Palette {
	name := config.System().GetString("", "theme", DefaultStyle)
	var overrides map[string]string
	if cfg := config.App(app); cfg != nil {
		if n := cfg.GetString(app, "theme", ""); n != "" {
			name = n
		}
		overrides = cfg.GetStringMap(app + ".colors")
	}
	return ColorsFromChroma(name).WithOverrides(overrides).Derive()
}
