// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewmodel/model.go
// Summary: Stateful table model owning sort/page/filter state and the
// one-shot pagination reset suppression.

package viewmodel

import (
	"sync"

	"github.com/framegrace/texeltable/internal/records"
	"github.com/framegrace/texeltable/internal/schema"
)

// ResetToken decides whether a recomputation may reset the page index.
type ResetToken int

const (
	// ResetOnChange resets to the first page when data, sort or filters changed.
	ResetOnChange ResetToken = iota
	// SkipReset keeps the page index for exactly one recomputation.
	SkipReset
)

// Source provides the current record snapshot.
type Source interface {
	Snapshot() *records.Snapshot
}

// Model keeps transient table state separate from the record store.
type Model struct {
	mu      sync.Mutex
	src     Source
	sch     *schema.Schema
	state   State
	pending ResetToken

	seenVersion uint64
	seenSort    SortSpec
	seenFilters FilterSpec
	last        View
}

// NewModel creates a model over src using sch and the given initial state.
func NewModel(src Source, sch *schema.Schema, initial State) *Model {
	if initial.Page.PageSize <= 0 {
		initial.Page.PageSize = DefaultPageSize
	}
	m := &Model{src: src, sch: sch, state: initial}
	snap := src.Snapshot()
	m.seenVersion = snap.Version()
	m.seenSort = initial.Sort
	m.seenFilters = initial.Filters
	m.last = Compute(snap, sch, initial)
	m.state.Page = m.last.Page
	return m
}

// Schema returns the column schema.
func (m *Model) Schema() *schema.Schema { return m.sch }

// State returns a copy of the current transient state.
func (m *Model) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SkipAutoReset arms the one-shot token so that the next recomputation
// keeps the current page even though the data changed.
func (m *Model) SkipAutoReset() {
	m.mu.Lock()
	m.pending = SkipReset
	m.mu.Unlock()
}

// View consumes the pending token and recomputes.
func (m *Model) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := m.pending
	m.pending = ResetOnChange
	return m.recomputeLocked(token)
}

// Recompute recomputes with an explicit token, clearing any pending one.
func (m *Model) Recompute(token ResetToken) View {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = ResetOnChange
	return m.recomputeLocked(token)
}

func (m *Model) recomputeLocked(token ResetToken) View {
	snap := m.src.Snapshot()
	changed := snap.Version() != m.seenVersion ||
		!m.state.Sort.Equal(m.seenSort) ||
		!m.state.Filters.Equal(m.seenFilters)
	if changed && token != SkipReset {
		m.state.Page.PageIndex = 0
	}
	m.seenVersion = snap.Version()
	m.seenSort = m.state.Sort
	m.seenFilters = m.state.Filters

	m.last = Compute(snap, m.sch, m.state)
	m.state.Page = m.last.Page
	return m.last
}

// ToggleSort cycles the sort state of a sortable column. A sort change
// always returns to the first page, even when an edit armed the skip token
// in the same cycle.
func (m *Model) ToggleSort(columnID string) {
	col, ok := m.sch.Leaf(columnID)
	if !ok || !col.Sortable {
		return
	}
	m.mu.Lock()
	m.state.Sort = m.state.Sort.Toggle(columnID)
	m.pending = ResetOnChange
	m.mu.Unlock()
}

// SetSort replaces the sort spec.
func (m *Model) SetSort(spec SortSpec) {
	m.mu.Lock()
	m.state.Sort = append(SortSpec(nil), spec...)
	m.pending = ResetOnChange
	m.mu.Unlock()
}

// SetPageIndex moves to page i; the index is clamped on recomputation.
func (m *Model) SetPageIndex(i int) {
	m.mu.Lock()
	m.state.Page.PageIndex = i
	m.mu.Unlock()
}

// NextPage advances one page if possible.
func (m *Model) NextPage() {
	m.mu.Lock()
	if m.state.Page.PageIndex < m.last.PageCount-1 {
		m.state.Page.PageIndex++
	}
	m.mu.Unlock()
}

// PreviousPage goes back one page if possible.
func (m *Model) PreviousPage() {
	m.mu.Lock()
	if m.state.Page.PageIndex > 0 {
		m.state.Page.PageIndex--
	}
	m.mu.Unlock()
}

// FirstPage jumps to page 0.
func (m *Model) FirstPage() { m.SetPageIndex(0) }

// LastPage jumps to the final page of the last computed view.
func (m *Model) LastPage() {
	m.mu.Lock()
	m.state.Page.PageIndex = m.last.PageCount - 1
	m.mu.Unlock()
}

// SetPageSize changes the page size keeping the first row of the current
// page visible. Non-positive sizes are ignored.
func (m *Model) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	top := m.state.Page.PageIndex * m.state.Page.PageSize
	m.state.Page.PageSize = size
	m.state.Page.PageIndex = top / size
}

// SetGlobalFilter filters rows on every filterable column.
func (m *Model) SetGlobalFilter(query string) {
	m.setFilter(Filter{Query: query})
}

// SetColumnFilter filters rows on one column; an empty query removes it.
func (m *Model) SetColumnFilter(columnID, query string) {
	m.setFilter(Filter{ColumnID: columnID, Query: query})
}

func (m *Model) setFilter(f Filter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make(FilterSpec, 0, len(m.state.Filters)+1)
	for _, old := range m.state.Filters {
		if old.ColumnID != f.ColumnID {
			next = append(next, old)
		}
	}
	if f.Query != "" {
		next = append(next, f)
	}
	m.state.Filters = next
	m.pending = ResetOnChange
}

// GlobalFilter returns the current global filter query.
func (m *Model) GlobalFilter() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.state.Filters {
		if f.ColumnID == "" {
			return f.Query
		}
	}
	return ""
}
