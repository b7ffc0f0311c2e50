// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tablefmt

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/framegrace/texeltable/internal/viewmodel"
)

// Status summarises the page position, e.g.
// "Страница 2 из 125 · строки 9–16 из 1,000".
func Status(v viewmodel.View) string {
	page := fmt.Sprintf("Страница %d из %d", v.Page.PageIndex+1, v.PageCount)
	if v.FilteredRows == 0 {
		return page + " · нет строк" + filteredNote(v)
	}
	return fmt.Sprintf("%s · строки %s–%s из %s%s", page,
		humanize.Comma(int64(v.FirstRow)),
		humanize.Comma(int64(v.LastRow)),
		humanize.Comma(int64(v.FilteredRows)),
		filteredNote(v))
}

func filteredNote(v viewmodel.View) string {
	if v.FilteredRows == v.TotalRows {
		return ""
	}
	return fmt.Sprintf(" (отбор из %s)", humanize.Comma(int64(v.TotalRows)))
}
