// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Built-in values for keys missing from the config files.

package config

// Section and key names of the usertable app config.
const (
	UserTableApp     = "usertable"
	UserTableSection = "usertable"
	UserTableSeed    = "usertable.seed"
	UserTableColors  = "usertable.colors"
)

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"defaultApp": UserTableApp,
		"theme":      "catppuccin-mocha",
	})
	cfg.RegisterDefaults("log", Section{
		"file": "texeltable.log",
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case UserTableApp:
		cfg.RegisterDefaults(UserTableSection, Section{
			"page_size":         8,
			"page_size_options": []interface{}{8, 20, 30, 40, 50},
			"theme":             "",
			"zebra":             true,
		})
		cfg.RegisterDefaults(UserTableSeed, Section{
			"source":      "",
			"table":       "users",
			"rows":        100,
			"random_seed": 42,
		})
		cfg.RegisterDefaults(UserTableColors, Section{})
	}
}
