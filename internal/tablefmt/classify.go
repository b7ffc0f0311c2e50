// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tablefmt

import (
	"regexp"

	"github.com/framegrace/texeltable/internal/schema"
	"github.com/framegrace/texeltable/internal/viewmodel"
)

var reColNumber = regexp.MustCompile(`^-?[0-9][0-9,. ]*%?$`)

// isNumeric reports whether at least 60% of the non-empty values look
// like numbers.
func isNumeric(values []string) bool {
	num, total := 0, 0
	for _, v := range values {
		if v == "" || v == "-" {
			continue
		}
		total++
		if reColNumber.MatchString(v) {
			num++
		}
	}
	return total > 0 && num*100/total >= 60
}

// resolveAlignments maps each column to a concrete alignment. Columns
// declared AlignAuto are right-aligned when their values on the page are
// numeric.
func resolveAlignments(v viewmodel.View, ncols int) []schema.Alignment {
	out := make([]schema.Alignment, ncols)
	for ci := range out {
		declared := schema.AlignAuto
		values := make([]string, 0, len(v.Rows))
		for _, row := range v.Rows {
			if ci < len(row.Cells) {
				declared = row.Cells[ci].Align
				values = append(values, row.Cells[ci].Value)
			}
		}
		switch {
		case declared != schema.AlignAuto:
			out[ci] = declared
		case isNumeric(values):
			out[ci] = schema.AlignRight
		default:
			out[ci] = schema.AlignLeft
		}
	}
	return out
}
