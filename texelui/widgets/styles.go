// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/styles.go
// Summary: Style set shared by the interactive widgets.

package widgets

import "github.com/gdamore/tcell/v2"

// Styles groups the states a widget can be drawn in.
type Styles struct {
	Normal   tcell.Style
	Focused  tcell.Style
	Active   tcell.Style
	Disabled tcell.Style
	Border   tcell.Style
}

// DefaultStyles works on any terminal without a palette.
func DefaultStyles() Styles {
	base := tcell.StyleDefault
	return Styles{
		Normal:   base,
		Focused:  base.Reverse(true),
		Active:   base.Bold(true).Underline(true),
		Disabled: base.Dim(true),
		Border:   base,
	}
}
