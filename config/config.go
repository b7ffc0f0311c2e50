// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System and per-app configuration store for texeltable.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	rootDirName      = "texeltable"
	systemConfigName = "texeltable.json"
)

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	system  Config
	apps    map[string]Config
	loadErr error
)

// Err returns the most recent system config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the system configuration (texeltable.json).
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// App returns the config for a named app (apps/<app>/config.json). A file
// that cannot be read falls back to the defaults.
func App(name string) Config {
	if name == "" {
		return nil
	}
	once.Do(initStore)

	mu.RLock()
	cfg := apps[name]
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	mu.Lock()
	defer mu.Unlock()
	if cfg, ok := apps[name]; ok {
		return cfg
	}
	loaded, err := loadLocked(appFile(name))
	if err != nil {
		log.Printf("Config: Failed to load app %q config: %v", name, err)
	}
	apps[name] = loaded
	return loaded
}

// Reload re-reads the system config and every cached app config.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()

	system, loadErr = loadLocked(systemFile())
	for name := range apps {
		cfg, err := loadLocked(appFile(name))
		if err != nil {
			log.Printf("Config: Failed to reload app %q config: %v", name, err)
		}
		apps[name] = cfg
	}
	return loadErr
}

// SaveSystem persists the in-memory system config.
func SaveSystem() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	return save(systemFile(), system)
}

// SaveApp persists a named app config.
func SaveApp(name string) error {
	if name == "" {
		return nil
	}
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	f := appFile(name)
	cfg := apps[name]
	if cfg == nil {
		cfg = make(Config)
		f.applyDefaults(cfg)
		apps[name] = cfg
	}
	return save(f, cfg)
}

// SetSystem replaces the in-memory system config.
func SetSystem(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	system = Clone(cfg)
}

// SetApp replaces the in-memory config of a named app.
func SetApp(name string, cfg Config) {
	if name == "" {
		return
	}
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	apps[name] = Clone(cfg)
}

// Clone returns a copy of cfg with each section copied one level deep.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, raw := range cfg {
		switch v := raw.(type) {
		case Section:
			out[name] = cloneSection(v)
		case map[string]interface{}:
			out[name] = cloneSection(v)
		default:
			out[name] = v
		}
	}
	return out
}

func cloneSection(src map[string]interface{}) Section {
	out := make(Section, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	apps = make(map[string]Config)
	system, loadErr = loadLocked(systemFile())
}

// configFile ties a path on disk to its embedded and built-in defaults.
type configFile struct {
	label    string
	path     func() (string, error)
	embedded func() Config
	defaults func(Config)
}

func systemFile() configFile {
	return configFile{
		label:    "system",
		path:     systemConfigPath,
		embedded: defaultSystemConfig,
		defaults: applySystemDefaults,
	}
}

func appFile(name string) configFile {
	return configFile{
		label:    fmt.Sprintf("app %q", name),
		path:     func() (string, error) { return appConfigPath(name) },
		embedded: func() Config { return defaultAppConfig(name) },
		defaults: func(cfg Config) { applyAppDefaults(name, cfg) },
	}
}

func (f configFile) applyDefaults(cfg Config) {
	if f.defaults != nil {
		f.defaults(cfg)
	}
}

// loadLocked reads a config file. Missing or empty files are seeded from
// the embedded defaults and written back. The returned config is never nil.
func loadLocked(f configFile) (Config, error) {
	path, err := f.path()
	if err != nil {
		log.Printf("Config: Failed to resolve %s config path: %v", f.label, err)
		cfg := make(Config)
		f.applyDefaults(cfg)
		return cfg, err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read %s config %s: %v", f.label, path, readErr)
		cfg = make(Config)
	}

	seeded := false
	if readErr == nil && len(cfg) == 0 {
		if def := f.embedded(); def != nil {
			cfg = def
		} else {
			cfg = make(Config)
		}
		seeded = true
	}
	f.applyDefaults(cfg)

	if seeded {
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("Config: Failed to write default %s config: %v", f.label, err)
			return cfg, err
		}
	}
	if readErr == nil && exists {
		log.Printf("Config: Loaded %s config from %s", f.label, path)
	}
	return cfg, readErr
}

func save(f configFile, cfg Config) error {
	path, err := f.path()
	if err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
