// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewmodel/sort.go
// Summary: Sort specification, tri-state toggling and value comparison.

package viewmodel

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Direction of a sort key.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

// Glyph returns the indicator drawn next to a sorted header.
func (d Direction) Glyph() string {
	switch d {
	case Ascending:
		return "▲"
	case Descending:
		return "▼"
	}
	return ""
}

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	}
	return "none"
}

// SortKey orders rows by one column.
type SortKey struct {
	ColumnID string
	Desc     bool
}

// SortSpec is an ordered list of sort keys; empty keeps the source order.
type SortSpec []SortKey

// Direction returns the direction applied to the column.
func (s SortSpec) Direction(columnID string) Direction {
	for _, k := range s {
		if k.ColumnID == columnID {
			if k.Desc {
				return Descending
			}
			return Ascending
		}
	}
	return Unsorted
}

// Toggle cycles the column through ascending, descending and unsorted.
// A different column always starts ascending and replaces the current key.
func (s SortSpec) Toggle(columnID string) SortSpec {
	switch s.Direction(columnID) {
	case Unsorted:
		return SortSpec{{ColumnID: columnID}}
	case Ascending:
		return SortSpec{{ColumnID: columnID, Desc: true}}
	default:
		return nil
	}
}

// Equal reports whether both specs hold the same keys in the same order.
func (s SortSpec) Equal(o SortSpec) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// ParseSort reads "column" or "column:desc" / "-column".
func ParseSort(v string) SortSpec {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	desc := false
	if strings.HasPrefix(v, "-") {
		desc, v = true, v[1:]
	}
	if col, dir, ok := strings.Cut(v, ":"); ok {
		v = col
		desc = strings.EqualFold(dir, "desc")
	}
	return SortSpec{{ColumnID: v, Desc: desc}}
}

// Compare orders two display values: numerically when both parse as
// numbers, lexicographically otherwise.
func Compare(a, b string) int {
	fa, errA := parseNumber(a)
	fb, errB := parseNumber(b)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

var errNotFinite = errors.New("not a finite number")

// parseNumber accepts finite decimal numbers only, so "NaN", "Inf" and hex
// floats compare as text.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xXpP") {
		return 0, errNotFinite
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}
