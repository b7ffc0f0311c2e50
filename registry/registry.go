// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: App registry: built-in builders plus wrapper apps from manifests.
// Usage: The devshell resolves the -app name through a Registry.

package registry

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/framegrace/texeltable/texelui/core"
)

// Builder constructs an app, optionally using command-line args.
type Builder func(args []string) (core.App, error)

// AppEntry is a registered application.
type AppEntry struct {
	Manifest *Manifest
	Dir      string
	Builder  Builder
}

// Registry maps app names to builders.
type Registry struct {
	mu      sync.RWMutex
	apps    map[string]*AppEntry // wrappers loaded by Scan
	builtIn map[string]*AppEntry
}

// New creates a registry holding the init-time built-ins.
func New() *Registry {
	r := &Registry{
		apps:    make(map[string]*AppEntry),
		builtIn: make(map[string]*AppEntry),
	}
	RegisterBuiltIns(r)
	return r
}

// RegisterBuiltIn registers a compiled-in app. Built-ins win over wrappers
// with the same name.
func (r *Registry) RegisterBuiltIn(manifest *Manifest, builder Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	manifest.Type = AppTypeBuiltIn
	r.builtIn[manifest.Name] = &AppEntry{Manifest: manifest, Builder: builder}
	log.Printf("Registry: Registered built-in app '%s'", manifest.Name)
}

// Scan loads wrapper apps from the subdirectories of baseDir that hold a
// manifest.json. A missing directory is not an error.
func (r *Registry) Scan(baseDir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps = make(map[string]*AppEntry)

	entries, err := os.ReadDir(baseDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read app directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(baseDir, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "manifest.json")); err != nil {
			continue
		}
		if err := r.loadApp(dir); err != nil {
			log.Printf("Registry: Failed to load app from %s: %v", dir, err)
		}
	}
	log.Printf("Registry: Loaded %d wrapper apps, %d built-in apps", len(r.apps), len(r.builtIn))
	return nil
}

func (r *Registry) loadApp(dir string) error {
	m, err := LoadManifest(dir)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("validate manifest: %w", err)
	}
	if m.Type != AppTypeWrapper {
		return fmt.Errorf("manifest type %s cannot be loaded from disk", m.Type)
	}
	r.apps[m.Name] = &AppEntry{Manifest: m, Dir: dir, Builder: r.wrapperBuilder(m)}
	log.Printf("Registry: Loaded wrapper app '%s' -> %s from %s", m.Name, m.Wraps, dir)
	return nil
}

func (r *Registry) wrapperBuilder(m *Manifest) Builder {
	return func(args []string) (core.App, error) {
		r.mu.RLock()
		wrapped, ok := r.builtIn[m.Wraps]
		r.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("app %q wraps unknown app %q", m.Name, m.Wraps)
		}
		return wrapped.Builder(append(append([]string(nil), m.Args...), args...))
	}
}

// Get returns the named entry, or nil.
func (r *Registry) Get(name string) *AppEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.builtIn[name]; ok {
		return entry
	}
	return r.apps[name]
}

// List returns all apps sorted by name.
func (r *Registry) List() []*AppEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var entries []*AppEntry
	for _, e := range r.builtIn {
		entries = append(entries, e)
	}
	for name, e := range r.apps {
		if _, shadowed := r.builtIn[name]; !shadowed {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Manifest.Name < entries[j].Manifest.Name
	})
	return entries
}

// Build creates the named app.
func (r *Registry) Build(name string, args []string) (core.App, error) {
	entry := r.Get(name)
	if entry == nil {
		return nil, fmt.Errorf("unknown app %q", name)
	}
	return entry.Builder(args)
}
