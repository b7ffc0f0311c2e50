// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltable/texelui/core"
)

type argsApp struct{ args []string }

func (a *argsApp) Run() error                     { return nil }
func (a *argsApp) Stop()                          {}
func (a *argsApp) Resize(int, int)                {}
func (a *argsApp) Render() [][]core.Cell          { return nil }
func (a *argsApp) HandleKey(*tcell.EventKey)      {}
func (a *argsApp) SetRefreshNotifier(chan<- bool) {}
func (a *argsApp) GetTitle() string               { return "args" }

func newTestRegistry() *Registry {
	r := &Registry{apps: map[string]*AppEntry{}, builtIn: map[string]*AppEntry{}}
	r.RegisterBuiltIn(&Manifest{Name: "table", DisplayName: "Table"}, func(args []string) (core.App, error) {
		return &argsApp{args: args}, nil
	})
	return r
}

func writeManifest(t *testing.T, dir, name, body string) {
	t.Helper()
	appDir := filepath.Join(dir, name)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(appDir, "manifest.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuiltInProviderReachesNewRegistries(t *testing.T) {
	RegisterBuiltInProvider(Manifest{Name: "provider-test", DisplayName: "P"}, func([]string) (core.App, error) {
		return &argsApp{}, nil
	})
	RegisterBuiltInProvider(Manifest{Name: "", DisplayName: "ignored"}, func([]string) (core.App, error) {
		return &argsApp{}, nil
	})

	entry := New().Get("provider-test")
	if entry == nil {
		t.Fatal("provider app not registered")
	}
	if entry.Manifest.Type != AppTypeBuiltIn {
		t.Fatalf("type = %q, want built-in", entry.Manifest.Type)
	}
}

func TestScanLoadsWrappersWithPresetArgs(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "staff", `{"name":"staff","displayName":"Staff","wraps":"table","args":["staff.csv"]}`)
	writeManifest(t, dir, "broken", `{"name":"broken","displayName":"Broken"}`)
	writeManifest(t, dir, "garbage", `{`)
	if err := os.Mkdir(filepath.Join(dir, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := newTestRegistry()
	if err := r.Scan(dir); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if r.Get("broken") != nil || r.Get("garbage") != nil || r.Get("empty") != nil {
		t.Fatal("invalid apps should be skipped")
	}

	app, err := r.Build("staff", []string{"--extra"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got := app.(*argsApp).args
	if want := []string{"staff.csv", "--extra"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("args = %v, want %v", got, want)
	}

	var names []string
	for _, e := range r.List() {
		names = append(names, e.Manifest.Name)
	}
	if want := []string{"staff", "table"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("list = %v, want %v", names, want)
	}
}

func TestScanMissingDirectory(t *testing.T) {
	r := newTestRegistry()
	if err := r.Scan(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Fatalf("missing dir should not fail: %v", err)
	}
}

func TestBuiltInShadowsWrapper(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "table", `{"name":"table","displayName":"Other","wraps":"table","args":["x"]}`)
	r := newTestRegistry()
	if err := r.Scan(dir); err != nil {
		t.Fatal(err)
	}
	app, err := r.Build("table", nil)
	if err != nil {
		t.Fatal(err)
	}
	if args := app.(*argsApp).args; len(args) != 0 {
		t.Fatalf("built-in should win, got args %v", args)
	}
	if n := len(r.List()); n != 1 {
		t.Fatalf("list has %d entries, want 1", n)
	}
}

func TestWrapperOfUnknownApp(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "orphan", `{"name":"orphan","displayName":"Orphan","wraps":"missing"}`)
	r := newTestRegistry()
	if err := r.Scan(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Build("orphan", nil); err == nil {
		t.Fatal("expected error for wrapper of unknown app")
	}
	if _, err := r.Build("nothing", nil); err == nil {
		t.Fatal("expected error for unknown app")
	}
}

func TestManifestValidate(t *testing.T) {
	tests := []struct {
		name string
		m    Manifest
		ok   bool
	}{
		{"wrapper", Manifest{Name: "a", DisplayName: "A", Type: AppTypeWrapper, Wraps: "table"}, true},
		{"built-in", Manifest{Name: "a", DisplayName: "A", Type: AppTypeBuiltIn}, true},
		{"no name", Manifest{DisplayName: "A", Type: AppTypeBuiltIn}, false},
		{"no display name", Manifest{Name: "a", Type: AppTypeBuiltIn}, false},
		{"wrapper without target", Manifest{Name: "a", DisplayName: "A", Type: AppTypeWrapper}, false},
		{"unknown type", Manifest{Name: "a", DisplayName: "A", Type: "external"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, ok want %v", err, tt.ok)
			}
		})
	}
}
