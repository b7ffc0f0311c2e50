// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package usertable

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/framegrace/texeltable/config"
	"github.com/framegrace/texeltable/internal/seed"
)

func TestLoadSettingsNilConfig(t *testing.T) {
	s := LoadSettings(nil)
	if s.PageSize != 8 || !s.Zebra || s.Seed.Path != "" || s.Seed.Rows != seed.DefaultRows {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if !reflect.DeepEqual(s.PageSizes, DefaultPageSizes) {
		t.Fatalf("page sizes = %v", s.PageSizes)
	}
}

func TestLoadSettingsReadsSections(t *testing.T) {
	cfg := config.Config{
		config.UserTableSection: map[string]interface{}{
			"page_size":         float64(15),
			"page_size_options": []interface{}{float64(10), "x", float64(-3), float64(30)},
			"zebra":             false,
		},
		config.UserTableSeed: map[string]interface{}{
			"source":      "/tmp/users.csv",
			"table":       "people",
			"rows":        float64(12),
			"random_seed": float64(7),
		},
	}
	s := LoadSettings(cfg)
	if s.PageSize != 15 || s.Zebra {
		t.Fatalf("page size %d zebra %v", s.PageSize, s.Zebra)
	}
	// The configured page size joins the menu when it is not offered.
	if want := []int{15, 10, 30}; !reflect.DeepEqual(s.PageSizes, want) {
		t.Fatalf("page sizes = %v, want %v", s.PageSizes, want)
	}
	want := seed.Source{Path: "/tmp/users.csv", Table: "people", Rows: 12, RandomSeed: 7}
	if s.Seed != want {
		t.Fatalf("seed = %+v, want %+v", s.Seed, want)
	}
}

func TestNormalizedFallsBackToDefaultMenu(t *testing.T) {
	s := Settings{PageSize: 0, PageSizes: []int{0, -1}}.normalized()
	if s.PageSize != DefaultPageSizes[0] || !reflect.DeepEqual(s.PageSizes, DefaultPageSizes) {
		t.Fatalf("normalized = %+v", s)
	}
}

func TestBuildFromCSVSeed(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "users.csv")
	data := "№,Имя,Номер телефона\n1,Анна,+7 111\n2,Борис\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	s := DefaultSettings()
	s.Seed.Path = path

	app, err := Build(context.Background(), s)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer app.Stop()
	v := app.Grid().View()
	if v.TotalRows != 2 {
		t.Fatalf("rows = %d, want 2", v.TotalRows)
	}
	if got := v.Rows[1].Cells[colName].Value; got != "Борис" {
		t.Fatalf("second name = %q", got)
	}
}

func TestBuildMissingSeed(t *testing.T) {
	s := DefaultSettings()
	s.Seed.Path = filepath.Join(t.TempDir(), "missing.csv")
	if _, err := Build(context.Background(), s); err == nil {
		t.Fatal("expected error for a missing seed file")
	}
}
