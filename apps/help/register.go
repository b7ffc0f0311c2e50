// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/help/register.go
// Summary: Registers the help app with the registry.

package help

import (
	"github.com/framegrace/texeltable/internal/theming"
	"github.com/framegrace/texeltable/registry"
	"github.com/framegrace/texeltable/texelui/core"
)

// Name is the registry name of the app.
const Name = "help"

func init() {
	registry.RegisterBuiltInProvider(registry.Manifest{
		Name:        Name,
		DisplayName: "Справка",
		Description: "Key reference for the user table",
	}, func([]string) (core.App, error) {
		return New(theming.ForApp(Name)), nil
	})
}
