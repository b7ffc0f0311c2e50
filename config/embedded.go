// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parsed defaults from the embedded JSON files.
// The embedded JSON files in defaults/ are the single source of truth.

package config

import (
	"encoding/json"
	"sync"

	"github.com/framegrace/texeltable/defaults"
)

var (
	embeddedMu  sync.Mutex
	embeddedCfg = make(map[string]Config)
)

// embeddedConfig parses and caches one embedded file. A missing file yields
// nil without error.
func embeddedConfig(key string, read func() ([]byte, error)) (Config, error) {
	embeddedMu.Lock()
	defer embeddedMu.Unlock()
	if cfg, ok := embeddedCfg[key]; ok {
		return cfg, nil
	}
	data, err := read()
	if err != nil {
		embeddedCfg[key] = nil
		return nil, nil
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	embeddedCfg[key] = cfg
	return cfg, nil
}

// defaultSystemConfig returns a copy of the embedded system defaults.
func defaultSystemConfig() Config {
	cfg, err := embeddedConfig("", defaults.SystemConfig)
	if err != nil {
		return nil
	}
	return Clone(cfg)
}

// defaultAppConfig returns a copy of the embedded defaults for app.
func defaultAppConfig(app string) Config {
	cfg, err := embeddedConfig("apps/"+app, func() ([]byte, error) {
		return defaults.AppConfig(app)
	})
	if err != nil {
		return nil
	}
	return Clone(cfg)
}
