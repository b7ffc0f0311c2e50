// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texeltable/internal/viewmodel"
)

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-dump", "-page", "3", "-sort", "-name", "-rows", "40", "extra.csv"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !o.dump || o.page != 3 || o.sort != "-name" || o.rows != 40 {
		t.Fatalf("options = %+v", o)
	}
	if len(o.args) != 1 || o.args[0] != "extra.csv" {
		t.Fatalf("args = %v", o.args)
	}

	if _, err := parseFlags([]string{"-page", "0"}); err == nil {
		t.Fatal("expected error for page 0")
	}
}

func TestSettingsForAppliesOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	s := settingsFor(options{seed: "users.csv", rows: 12, page: 2, pageSize: 20, sort: "name:desc"})
	if s.Seed.Path != "users.csv" || s.Seed.Rows != 12 {
		t.Fatalf("seed = %+v", s.Seed)
	}
	if s.Page != 1 || s.PageSize != 20 {
		t.Fatalf("page %d size %d", s.Page, s.PageSize)
	}
	if d := s.Sort.Direction("name"); d != viewmodel.Descending {
		t.Fatalf("sort direction = %v", d)
	}
}

func TestDumpPrintsRequestedPage(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	s := settingsFor(options{rows: 30, page: 2, pageSize: 10})

	var buf bytes.Buffer
	if err := dump(context.Background(), &buf, s, options{}, 0); err != nil {
		t.Fatalf("dump: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if got := lines[len(lines)-1]; got != "Страница 2 из 3 · строки 11–20 из 30" {
		t.Fatalf("status = %q", got)
	}
	if !strings.Contains(lines[1], "Основная информация") {
		t.Fatalf("header = %q", lines[1])
	}
}

func TestDumpFilter(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	s := settingsFor(options{rows: 30, page: 1, filter: "нет такого текста"})
	if s.Filter != "нет такого текста" {
		t.Fatalf("filter = %q", s.Filter)
	}

	var buf bytes.Buffer
	if err := dump(context.Background(), &buf, s, options{}, 0); err != nil {
		t.Fatalf("dump: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Нет данных") || !strings.Contains(out, "нет строк (отбор из 30)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDumpFitsWidth(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	s := settingsFor(options{rows: 10, page: 1})

	var buf bytes.Buffer
	if err := dump(context.Background(), &buf, s, options{}, 160); err != nil {
		t.Fatalf("dump: %v", err)
	}
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if w := runewidth.StringWidth(first); w > 160 {
		t.Fatalf("table is %d wide, want at most 160", w)
	}
}
