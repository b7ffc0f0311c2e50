// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/usertable/register.go
// Summary: Builds the app from config and registers it as a built-in.

package usertable

import (
	"context"
	"fmt"
	"log"

	"github.com/framegrace/texeltable/config"
	"github.com/framegrace/texeltable/internal/records"
	"github.com/framegrace/texeltable/internal/seed"
	"github.com/framegrace/texeltable/internal/theming"
	"github.com/framegrace/texeltable/registry"
	"github.com/framegrace/texeltable/texelui/core"
)

// Name is the registry name of the app.
const Name = config.UserTableApp

func init() {
	registry.RegisterBuiltInProvider(registry.Manifest{
		Name:        Name,
		DisplayName: Title,
		Description: "Editable paginated user table",
	}, func(args []string) (core.App, error) {
		s := LoadSettings(config.App(Name))
		if len(args) > 0 {
			s.Seed.Path = args[0]
		}
		app, err := Build(context.Background(), s)
		if err != nil {
			return nil, err
		}
		return app, nil
	})
}

// Build seeds a store from s.Seed and creates the app with the configured
// palette.
func Build(ctx context.Context, s Settings) (*App, error) {
	recs, err := LoadRecords(ctx, s.Seed)
	if err != nil {
		return nil, err
	}
	return New(records.NewStore(recs), s, theming.ForApp(Name)), nil
}

// LoadRecords loads the seed and logs its warnings.
func LoadRecords(ctx context.Context, src seed.Source) ([]records.Record, error) {
	recs, warns, err := seed.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("usertable: %w", err)
	}
	for _, w := range warns {
		log.Printf("UserTable: seed: %s", w)
	}
	return recs, nil
}
