// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/usertable/settings.go
// Summary: Reads the usertable app settings from its config sections.

package usertable

import (
	"github.com/framegrace/texeltable/config"
	"github.com/framegrace/texeltable/internal/seed"
	"github.com/framegrace/texeltable/internal/viewmodel"
)

// DefaultPageSizes is the page-size menu used when the config has none.
var DefaultPageSizes = []int{8, 20, 30, 40, 50}

// Settings configure one table app instance.
type Settings struct {
	PageSize  int
	PageSizes []int
	Page      int
	Sort      viewmodel.SortSpec
	Filter    string
	Zebra     bool
	Seed      seed.Source
}

// DefaultSettings match the embedded app defaults.
func DefaultSettings() Settings {
	return Settings{
		PageSize:  viewmodel.DefaultPageSize,
		PageSizes: append([]int(nil), DefaultPageSizes...),
		Zebra:     true,
		Seed:      seed.Source{Table: "users", Rows: seed.DefaultRows, RandomSeed: 42},
	}
}

// LoadSettings reads settings from the usertable app config. A nil config
// yields DefaultSettings.
func LoadSettings(cfg config.Config) Settings {
	s := DefaultSettings()
	if cfg == nil {
		return s
	}
	s.PageSize = cfg.GetInt(config.UserTableSection, "page_size", s.PageSize)
	s.PageSizes = cfg.GetIntSlice(config.UserTableSection, "page_size_options", s.PageSizes)
	s.Zebra = cfg.GetBool(config.UserTableSection, "zebra", s.Zebra)
	s.Seed.Path = cfg.GetString(config.UserTableSeed, "source", "")
	s.Seed.Table = cfg.GetString(config.UserTableSeed, "table", s.Seed.Table)
	s.Seed.Rows = cfg.GetInt(config.UserTableSeed, "rows", s.Seed.Rows)
	s.Seed.RandomSeed = uint64(max(0, cfg.GetInt(config.UserTableSeed, "random_seed", int(s.Seed.RandomSeed))))
	return s.normalized()
}

// normalized drops non-positive menu entries and makes sure the page size
// is selectable.
func (s Settings) normalized() Settings {
	sizes := s.PageSizes[:0:0]
	for _, n := range s.PageSizes {
		if n > 0 {
			sizes = append(sizes, n)
		}
	}
	if len(sizes) == 0 {
		sizes = append(sizes, DefaultPageSizes...)
	}
	if s.PageSize <= 0 {
		s.PageSize = sizes[0]
	}
	found := false
	for _, n := range sizes {
		if n == s.PageSize {
			found = true
			break
		}
	}
	if !found {
		sizes = append([]int{s.PageSize}, sizes...)
	}
	s.PageSizes = sizes
	return s
}
