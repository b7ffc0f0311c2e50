// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tablefmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/framegrace/texeltable/internal/records"
	"github.com/framegrace/texeltable/internal/schema"
	"github.com/framegrace/texeltable/internal/viewmodel"
)

func testSchema() *schema.Schema {
	return schema.MustNew(
		schema.Leaf(records.FieldID, "#", schema.NotSortable(), schema.ReadOnly(), schema.Align(schema.AlignRight)),
		schema.Group("Контакт",
			schema.Leaf(records.FieldName, "Имя"),
			schema.Leaf(records.FieldPhone, "Тел"),
		),
	)
}

func testView(st viewmodel.State) viewmodel.View {
	store := records.NewStore([]records.Record{
		{ID: 1, Name: "Аня", Phone: "1"},
		{ID: 2, Name: "Борис", Phone: "22"},
	})
	return viewmodel.Compute(store.Snapshot(), testSchema(), st)
}

func TestRender_GroupedHeaders(t *testing.T) {
	lines := Render(testView(viewmodel.State{}), Options{})
	want := []string{
		"╭────┬───────────────╮",
		"│  # │    Контакт    │",
		"│    │ Имя   │   Тел │",
		"├────┼───────┼───────┤",
		"│  1 │ Аня   │     1 │",
		"│  2 │ Борис │    22 │",
		"├────┼───────┼───────┤",
		"│ id │ name  │ phone │",
		"╰────┴───────┴───────╯",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(lines), strings.Join(lines, "\n"))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d:\n got %q\nwant %q", i, lines[i], want[i])
		}
	}
}

func TestRender_SortGlyphAndOrder(t *testing.T) {
	v := testView(viewmodel.State{Sort: viewmodel.SortSpec{{ColumnID: records.FieldName, Desc: true}}})
	lines := Render(v, Options{})
	if !strings.Contains(lines[2], "Имя ▼") {
		t.Errorf("header missing glyph: %q", lines[2])
	}
	if !strings.Contains(lines[4], "Борис") || !strings.Contains(lines[5], "Аня") {
		t.Errorf("rows not sorted descending:\n%s\n%s", lines[4], lines[5])
	}
}

func TestRender_EmptyPage(t *testing.T) {
	v := testView(viewmodel.State{Filters: viewmodel.FilterSpec{{Query: "zzz"}}})
	lines := Render(v, Options{})
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[4], EmptyText) {
		t.Errorf("empty marker missing: %q", lines[4])
	}
	// without rows the name column shrinks to its footer width
	if lines[5] != "├────┬──────┬───────┤" {
		t.Errorf("separator under empty body = %q", lines[5])
	}
	if got := Status(v); got != "Страница 1 из 1 · нет строк (отбор из 2)" {
		t.Errorf("status = %q", got)
	}
}

func TestRender_MaxColumnWidthTruncates(t *testing.T) {
	lines := Render(testView(viewmodel.State{}), Options{MaxColumnWidth: 3})
	if !strings.Contains(lines[5], "Бо…") {
		t.Errorf("expected truncated name, got %q", lines[5])
	}
}

func TestStatus_Humanized(t *testing.T) {
	recs := make([]records.Record, 1000)
	for i := range recs {
		recs[i].ID = i + 1
	}
	store := records.NewStore(recs)
	v := viewmodel.Compute(store.Snapshot(), testSchema(), viewmodel.State{
		Page: viewmodel.Pagination{PageSize: 8, PageIndex: 1},
	})
	if got := Status(v); got != "Страница 2 из 125 · строки 9–16 из 1,000" {
		t.Errorf("status = %q", got)
	}
}

func TestWrite_AppendsStatus(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testView(viewmodel.State{}), Options{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if got := lines[len(lines)-1]; got != "Страница 1 из 1 · строки 1–2 из 2" {
		t.Errorf("last line = %q", got)
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		values []string
		want   bool
	}{
		{[]string{"1", "2,5", "-3", "40%"}, true},
		{[]string{"1", "2", "x"}, true},
		{[]string{"1", "x", "y"}, false},
		{[]string{"", "-"}, false},
		{[]string{"+7 (900) 000-00-00"}, false},
	}
	for _, tt := range tests {
		if got := isNumeric(tt.values); got != tt.want {
			t.Errorf("isNumeric(%q) = %v, want %v", tt.values, got, tt.want)
		}
	}
}

func TestLayout_HeaderAt(t *testing.T) {
	l := NewLayout(testView(viewmodel.State{}), Options{})
	tests := []struct {
		row, col   int
		label      string
		starts, ok bool
	}{
		{0, 0, "#", true, true},
		{1, 0, "#", false, true},
		{0, 1, "Контакт", true, true},
		{0, 2, "Контакт", true, true},
		{1, 2, "Тел", true, true},
		{2, 0, "", false, false},
		{0, 3, "", false, false},
	}
	for _, tt := range tests {
		h, starts, ok := l.HeaderAt(tt.row, tt.col)
		if ok != tt.ok || starts != tt.starts || h.Label != tt.label {
			t.Errorf("HeaderAt(%d,%d) = %q starts=%v ok=%v, want %q starts=%v ok=%v",
				tt.row, tt.col, h.Label, starts, ok, tt.label, tt.starts, tt.ok)
		}
	}
	if got := l.SpanWidth(1, 2); got != 13 {
		t.Fatalf("span width = %d, want 13", got)
	}
}
