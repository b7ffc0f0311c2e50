// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/schema/schema.go
// Summary: Validated column schema with flattened leaves and header layout.

package schema

import (
	"errors"
	"fmt"
)

var (
	ErrMissingID       = errors.New("schema: leaf column without id")
	ErrDuplicateColumn = errors.New("schema: duplicate column id")
	ErrEmptyGroup      = errors.New("schema: group without columns")
)

// HeaderCell is one cell of the header grid.
type HeaderCell struct {
	Label    string
	ColumnID string // leaf id; empty for groups
	Group    bool
	Sortable bool
	Col      int // index of the first leaf column covered
	ColSpan  int
	RowSpan  int
}

// Schema is an immutable, validated column declaration.
type Schema struct {
	roots  []Column
	leaves []Column
	index  map[string]int
	depth  int
	header [][]HeaderCell
}

// New validates the columns and precomputes the flattened leaves and the
// header layout.
func New(columns ...Column) (*Schema, error) {
	s := &Schema{index: make(map[string]int)}
	for _, c := range columns {
		if err := s.collect(c, ""); err != nil {
			return nil, err
		}
		if d := c.depth(); d > s.depth {
			s.depth = d
		}
	}
	s.roots = columns
	s.header = s.layout()
	return s, nil
}

// MustNew is New for static declarations known to be valid.
func MustNew(columns ...Column) *Schema {
	s, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) collect(c Column, path string) error {
	if !c.IsLeaf() {
		if len(c.Children) == 0 {
			return fmt.Errorf("%w: %q", ErrEmptyGroup, path+c.Header)
		}
		for _, child := range c.Children {
			if err := s.collect(child, path+c.Header+"/"); err != nil {
				return err
			}
		}
		return nil
	}
	if c.ID == "" {
		return fmt.Errorf("%w under %q (header %q)", ErrMissingID, path, c.Header)
	}
	if _, dup := s.index[c.ID]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.ID)
	}
	s.index[c.ID] = len(s.leaves)
	s.leaves = append(s.leaves, c)
	return nil
}

// Leaves returns the leaf columns in display order.
func (s *Schema) Leaves() []Column {
	out := make([]Column, len(s.leaves))
	copy(out, s.leaves)
	return out
}

// Leaf looks up a leaf column by id.
func (s *Schema) Leaf(id string) (Column, bool) {
	i, ok := s.index[id]
	if !ok {
		return Column{}, false
	}
	return s.leaves[i], true
}

// LeafIndex returns the display position of a leaf column.
func (s *Schema) LeafIndex(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Depth is the number of header rows.
func (s *Schema) Depth() int { return s.depth }

// HeaderRows returns the header grid, one slice per header row.
func (s *Schema) HeaderRows() [][]HeaderCell {
	out := make([][]HeaderCell, len(s.header))
	for i, row := range s.header {
		out[i] = append([]HeaderCell(nil), row...)
	}
	return out
}

// Footers returns the footer label of every leaf column.
func (s *Schema) Footers() []string {
	out := make([]string, len(s.leaves))
	for i, c := range s.leaves {
		out[i] = c.Footer()
	}
	return out
}

// layout places every descriptor on the header row matching its nesting
// level. Leaves above the deepest level row-span down to the last row so
// the grid stays rectangular.
func (s *Schema) layout() [][]HeaderCell {
	rows := make([][]HeaderCell, s.depth)
	col := 0
	var place func(c Column, level int)
	place = func(c Column, level int) {
		if c.IsLeaf() {
			rows[level] = append(rows[level], HeaderCell{
				Label:    c.Header,
				ColumnID: c.ID,
				Sortable: c.Sortable,
				Col:      col,
				ColSpan:  1,
				RowSpan:  s.depth - level,
			})
			col++
			return
		}
		rows[level] = append(rows[level], HeaderCell{
			Label:   c.Header,
			Group:   true,
			Col:     col,
			ColSpan: c.leafCount(),
			RowSpan: 1,
		})
		for _, child := range c.Children {
			place(child, level+1)
		}
	}
	for _, c := range s.roots {
		place(c, 0)
	}
	return rows
}
