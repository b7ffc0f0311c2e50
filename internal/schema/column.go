// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/schema/column.go
// Summary: Declarative column descriptors (leaf columns and header groups).

package schema

// Kind tags a column descriptor as a leaf column or a header group.
type Kind int

const (
	KindLeaf Kind = iota
	KindGroup
)

// Alignment of cell content inside a leaf column.
type Alignment int

const (
	AlignAuto Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Column describes one leaf column or one header group. Descriptors are
// plain data; the header layout is computed from them without callbacks.
type Column struct {
	Kind   Kind
	Header string

	// Leaf only.
	ID         string
	Field      string
	FooterText string
	Sortable   bool
	ReadOnly   bool
	Filterable bool
	Align      Alignment

	// Group only.
	Children []Column
}

// LeafOption customises a leaf column.
type LeafOption func(*Column)

// Leaf declares a sortable, editable leaf column whose field defaults to id.
func Leaf(id, header string, opts ...LeafOption) Column {
	c := Column{
		Kind:       KindLeaf,
		ID:         id,
		Field:      id,
		Header:     header,
		Sortable:   true,
		Filterable: true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Group declares a header band spanning its children.
func Group(header string, children ...Column) Column {
	return Column{Kind: KindGroup, Header: header, Children: children}
}

// Field maps the column to a record field other than its id.
func Field(name string) LeafOption { return func(c *Column) { c.Field = name } }

// NotSortable disables sort toggling for the column.
func NotSortable() LeafOption { return func(c *Column) { c.Sortable = false } }

// ReadOnly renders the column as plain text without an editor.
func ReadOnly() LeafOption { return func(c *Column) { c.ReadOnly = true } }

// Footer sets the footer label; it defaults to the column id.
func Footer(label string) LeafOption { return func(c *Column) { c.FooterText = label } }

// NotFilterable excludes the column from filtering.
func NotFilterable() LeafOption { return func(c *Column) { c.Filterable = false } }

// Align sets the content alignment.
func Align(a Alignment) LeafOption { return func(c *Column) { c.Align = a } }

// IsLeaf reports whether c is a leaf column.
func (c Column) IsLeaf() bool { return c.Kind == KindLeaf }

// Footer returns the footer label.
func (c Column) Footer() string {
	if c.FooterText != "" {
		return c.FooterText
	}
	return c.ID
}

// leafCount returns the number of leaf descendants (1 for a leaf).
func (c Column) leafCount() int {
	if c.IsLeaf() {
		return 1
	}
	n := 0
	for _, child := range c.Children {
		n += child.leafCount()
	}
	return n
}

// depth returns the number of header levels c occupies.
func (c Column) depth() int {
	if c.IsLeaf() {
		return 1
	}
	d := 0
	for _, child := range c.Children {
		if cd := child.depth(); cd > d {
			d = cd
		}
	}
	return d + 1
}
