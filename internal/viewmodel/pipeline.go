// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewmodel/pipeline.go
// Summary: Pure filter -> sort -> paginate pipeline producing a renderable view.
// Usage: Called by Model on every recomputation; usable directly in tests.

package viewmodel

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/framegrace/texeltable/internal/records"
	"github.com/framegrace/texeltable/internal/schema"
)

// DefaultPageSize is used when a page size is missing or not positive.
const DefaultPageSize = 8

// Pagination selects one page of the sorted rows.
type Pagination struct {
	PageSize  int
	PageIndex int
}

// Filter restricts rows by a case-insensitive substring. An empty ColumnID
// matches against every filterable column.
type Filter struct {
	ColumnID string
	Query    string
}

// FilterSpec is a conjunction of filters.
type FilterSpec []Filter

// Equal reports whether both specs hold the same filters in the same order.
func (f FilterSpec) Equal(o FilterSpec) bool {
	if len(f) != len(o) {
		return false
	}
	for i := range f {
		if f[i] != o[i] {
			return false
		}
	}
	return true
}

// State is the transient table state passed into the pipeline.
type State struct {
	Sort    SortSpec
	Page    Pagination
	Filters FilterSpec
}

// HeaderCell is a schema header cell decorated with its sort state.
type HeaderCell struct {
	schema.HeaderCell
	Sorted Direction
}

// Cell is one body cell.
type Cell struct {
	ColumnID string
	Field    string
	Value    string
	Editable bool
	Align    schema.Alignment
}

// Row is one body row. Key and SourceIndex resolve it back to the store.
type Row struct {
	Key         uuid.UUID
	SourceIndex int
	Cells       []Cell
}

// View is the derived grid consumed by the presentation layer.
type View struct {
	Headers [][]HeaderCell
	Rows    []Row
	Footers []string

	Page      Pagination
	PageCount int
	TotalRows int
	// FilteredRows counts rows left after filtering, before pagination.
	FilteredRows int
	// FirstRow and LastRow are 1-based ordinals of the displayed rows
	// within the filtered collection; both are 0 for an empty page.
	FirstRow int
	LastRow  int
}

// CanPrevious reports whether a previous page exists.
func (v View) CanPrevious() bool { return v.Page.PageIndex > 0 }

// CanNext reports whether a next page exists.
func (v View) CanNext() bool { return v.Page.PageIndex < v.PageCount-1 }

type entry struct {
	index int
	rec   records.Record
}

// Compute runs filter, sort and paginate over the snapshot. It never fails:
// unknown columns are ignored and out-of-range pages are clamped.
func Compute(snap *records.Snapshot, sch *schema.Schema, st State) View {
	rows := make([]entry, 0, snap.Len())
	for i := 0; i < snap.Len(); i++ {
		r, _ := snap.At(i)
		rows = append(rows, entry{index: i, rec: r})
	}

	total := len(rows)
	rows = filterRows(rows, sch, st.Filters)
	sortRows(rows, sch, st.Sort)

	page := NormalizePage(st.Page, len(rows))
	count := PageCount(len(rows), page.PageSize)
	start := page.PageIndex * page.PageSize
	end := start + page.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	if start > end {
		start = end
	}

	v := View{
		Headers:      decorateHeaders(sch, st.Sort),
		Footers:      sch.Footers(),
		Page:         page,
		PageCount:    count,
		TotalRows:    total,
		FilteredRows: len(rows),
	}
	if end > start {
		v.FirstRow, v.LastRow = start+1, end
	}
	leaves := sch.Leaves()
	for _, e := range rows[start:end] {
		row := Row{Key: e.rec.Key, SourceIndex: e.index, Cells: make([]Cell, len(leaves))}
		for i, col := range leaves {
			row.Cells[i] = Cell{
				ColumnID: col.ID,
				Field:    col.Field,
				Value:    e.rec.Get(col.Field),
				Editable: !col.ReadOnly,
				Align:    col.Align,
			}
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// PageCount is ceil(rows/pageSize), never less than one.
func PageCount(rows, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	n := (rows + pageSize - 1) / pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// NormalizePage fixes the page size and clamps the index into range.
func NormalizePage(p Pagination, rows int) Pagination {
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	last := PageCount(rows, p.PageSize) - 1
	if p.PageIndex > last {
		p.PageIndex = last
	}
	if p.PageIndex < 0 {
		p.PageIndex = 0
	}
	return p
}

func filterRows(rows []entry, sch *schema.Schema, filters FilterSpec) []entry {
	active := filters[:0:0]
	for _, f := range filters {
		if strings.TrimSpace(f.Query) != "" {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return rows
	}
	var filterable []schema.Column
	for _, c := range sch.Leaves() {
		if c.Filterable {
			filterable = append(filterable, c)
		}
	}
	out := rows[:0:0]
	for _, e := range rows {
		if matchesAll(e.rec, sch, filterable, active) {
			out = append(out, e)
		}
	}
	return out
}

func matchesAll(r records.Record, sch *schema.Schema, filterable []schema.Column, filters FilterSpec) bool {
	for _, f := range filters {
		q := strings.ToLower(strings.TrimSpace(f.Query))
		if f.ColumnID != "" {
			col, ok := sch.Leaf(f.ColumnID)
			if !ok || !col.Filterable {
				continue
			}
			if !strings.Contains(strings.ToLower(r.Get(col.Field)), q) {
				return false
			}
			continue
		}
		hit := false
		for _, col := range filterable {
			if strings.Contains(strings.ToLower(r.Get(col.Field)), q) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func sortRows(rows []entry, sch *schema.Schema, spec SortSpec) {
	type key struct {
		field string
		desc  bool
	}
	var keys []key
	for _, k := range spec {
		col, ok := sch.Leaf(k.ColumnID)
		if !ok || !col.Sortable {
			continue
		}
		keys = append(keys, key{field: col.Field, desc: k.Desc})
	}
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := Compare(rows[i].rec.Get(k.field), rows[j].rec.Get(k.field))
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func decorateHeaders(sch *schema.Schema, spec SortSpec) [][]HeaderCell {
	rows := sch.HeaderRows()
	out := make([][]HeaderCell, len(rows))
	for i, row := range rows {
		out[i] = make([]HeaderCell, len(row))
		for j, cell := range row {
			hc := HeaderCell{HeaderCell: cell}
			if !cell.Group && cell.Sortable {
				hc.Sorted = spec.Direction(cell.ColumnID)
			}
			out[i][j] = hc
		}
	}
	return out
}
