// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/manifest.go
// Summary: App manifest describing a built-in app or a wrapper around one.
// Usage: Wrapper apps are manifest.json files under <config root>/apps/<name>/.

package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppType specifies how the app is constructed.
type AppType string

const (
	// AppTypeBuiltIn uses a builder compiled into the binary.
	AppTypeBuiltIn AppType = "built-in"

	// AppTypeWrapper runs a built-in app with preset arguments,
	// e.g. usertable over a fixed CSV file.
	AppTypeWrapper AppType = "wrapper"
)

// Manifest describes an application.
type Manifest struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Description string  `json:"description"`
	Type        AppType `json:"type,omitempty"`

	// Wraps names the built-in app a wrapper runs.
	Wraps string `json:"wraps,omitempty"`
	// Args are passed to the wrapped app before any command-line args.
	Args []string `json:"args,omitempty"`
}

// LoadManifest reads manifest.json from dir. A missing type means wrapper.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Type == "" {
		m.Type = AppTypeWrapper
	}
	return &m, nil
}

// Validate checks that the manifest is well-formed.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if m.DisplayName == "" {
		return fmt.Errorf("displayName cannot be empty")
	}
	switch m.Type {
	case AppTypeWrapper:
		if m.Wraps == "" {
			return fmt.Errorf("wrapper app must specify 'wraps' field")
		}
	case AppTypeBuiltIn:
	default:
		return fmt.Errorf("unknown app type: %s", m.Type)
	}
	return nil
}
