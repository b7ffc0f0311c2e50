// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration files.

package defaults

import (
	"embed"
	"errors"
	"path"
)

//go:embed texeltable.json apps/*/config.json
var files embed.FS

// SystemConfig returns the embedded system config JSON.
func SystemConfig() ([]byte, error) {
	return files.ReadFile("texeltable.json")
}

// AppConfig returns the embedded config JSON for the named app.
func AppConfig(app string) ([]byte, error) {
	if app == "" {
		return nil, errors.New("defaults: app name is required")
	}
	return files.ReadFile(path.Join("apps", app, "config.json"))
}
