// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

func resetStore(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	once = sync.Once{}
	system = nil
	apps = nil
	loadErr = nil
	return root
}

func readDisk(t *testing.T, path string) Config {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	return disk
}

func TestSystemDefaultsWritten(t *testing.T) {
	resetStore(t)

	cfg := System()
	if got := cfg.GetString("", "defaultApp", ""); got != UserTableApp {
		t.Fatalf("defaultApp = %q", got)
	}
	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	if readDisk(t, path).Section("log") == nil {
		t.Fatalf("expected log section on disk")
	}
	if err := Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
}

func TestSaveSystemWritesUpdates(t *testing.T) {
	resetStore(t)

	SetSystem(Config{"defaultApp": "other"})
	if err := SaveSystem(); err != nil {
		t.Fatalf("SaveSystem: %v", err)
	}
	path, _ := systemConfigPath()
	if got := readDisk(t, path).GetString("", "defaultApp", ""); got != "other" {
		t.Fatalf("defaultApp on disk = %q", got)
	}
}

func TestAppDefaultsWritten(t *testing.T) {
	resetStore(t)

	cfg := App(UserTableApp)
	if got := cfg.GetInt(UserTableSection, "page_size", 0); got != 8 {
		t.Fatalf("page_size = %d", got)
	}
	want := []int{8, 20, 30, 40, 50}
	if got := cfg.GetIntSlice(UserTableSection, "page_size_options", nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("page_size_options = %v", got)
	}
	if got := cfg.GetString(UserTableSeed, "table", ""); got != "users" {
		t.Fatalf("seed table = %q", got)
	}

	path, err := appConfigPath(UserTableApp)
	if err != nil {
		t.Fatalf("appConfigPath: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected app config to be written: %v", err)
	}
}

func TestUserKeysWinOverDefaults(t *testing.T) {
	root := resetStore(t)

	path := filepath.Join(root, rootDirName, "apps", UserTableApp, "config.json")
	if err := writeConfig(path, Config{
		UserTableSection: map[string]interface{}{"page_size": 20},
	}); err != nil {
		t.Fatal(err)
	}

	cfg := App(UserTableApp)
	if got := cfg.GetInt(UserTableSection, "page_size", 0); got != 20 {
		t.Fatalf("page_size = %d, want user value 20", got)
	}
	if !cfg.GetBool(UserTableSection, "zebra", false) {
		t.Fatalf("missing key did not get its default")
	}
	if readDisk(t, path).Section(UserTableSeed) != nil {
		t.Fatalf("defaults were written over an existing user file")
	}
}

func TestCorruptAppFileFallsBack(t *testing.T) {
	root := resetStore(t)

	path := filepath.Join(root, rootDirName, "apps", UserTableApp, "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := App(UserTableApp)
	if got := cfg.GetInt(UserTableSeed, "rows", 0); got != 100 {
		t.Fatalf("rows = %d", got)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{broken" {
		t.Fatalf("corrupt file was overwritten")
	}
}

func TestSaveAppWritesUpdates(t *testing.T) {
	resetStore(t)

	SetApp(UserTableApp, Config{
		UserTableSection: map[string]interface{}{"zebra": false},
	})
	if err := SaveApp(UserTableApp); err != nil {
		t.Fatalf("SaveApp: %v", err)
	}
	path, _ := appConfigPath(UserTableApp)
	if readDisk(t, path).GetBool(UserTableSection, "zebra", true) {
		t.Fatalf("expected zebra false on disk")
	}
}

func TestTypedGetters(t *testing.T) {
	cfg := Config{
		"s": map[string]interface{}{
			"str":    "x",
			"num":    float64(3),
			"numstr": "7",
			"flag":   "true",
			"list":   []interface{}{float64(1), "2", "nope", float64(3)},
			"empty":  []interface{}{"a"},
			"color":  "#ff0000",
		},
	}
	if got := cfg.GetString("s", "str", ""); got != "x" {
		t.Errorf("GetString = %q", got)
	}
	if got := cfg.GetString("s", "num", "def"); got != "def" {
		t.Errorf("GetString on number = %q", got)
	}
	if got := cfg.GetInt("s", "num", 0); got != 3 {
		t.Errorf("GetInt = %d", got)
	}
	if got := cfg.GetInt("s", "numstr", 0); got != 7 {
		t.Errorf("GetInt on string = %d", got)
	}
	if got := cfg.GetFloat("missing", "num", 1.5); got != 1.5 {
		t.Errorf("GetFloat default = %v", got)
	}
	if !cfg.GetBool("s", "flag", false) {
		t.Errorf("GetBool on string")
	}
	if got := cfg.GetIntSlice("s", "list", nil); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("GetIntSlice = %v", got)
	}
	if got := cfg.GetIntSlice("s", "empty", []int{9}); !reflect.DeepEqual(got, []int{9}) {
		t.Errorf("GetIntSlice default = %v", got)
	}
	if got := cfg.GetStringMap("s"); got["color"] != "#ff0000" || len(got) != 4 {
		t.Errorf("GetStringMap = %v", got)
	}
}
