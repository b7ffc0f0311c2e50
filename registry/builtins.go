// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/builtins.go
// Summary: Supports init-time registration of built-in apps.

package registry

import "sync"

type builtIn struct {
	manifest Manifest
	builder  Builder
}

var (
	builtInMu sync.RWMutex
	builtIns  []builtIn
)

// RegisterBuiltInProvider records a built-in app from an init function.
// It is added to every registry created afterwards by New.
func RegisterBuiltInProvider(manifest Manifest, builder Builder) {
	if builder == nil || manifest.Name == "" {
		return
	}
	builtInMu.Lock()
	builtIns = append(builtIns, builtIn{manifest: manifest, builder: builder})
	builtInMu.Unlock()
}

// RegisterBuiltIns adds every init-time built-in to reg.
func RegisterBuiltIns(reg *Registry) {
	if reg == nil {
		return
	}
	builtInMu.RLock()
	providers := append([]builtIn(nil), builtIns...)
	builtInMu.RUnlock()

	for _, p := range providers {
		m := p.manifest
		reg.RegisterBuiltIn(&m, p.builder)
	}
}
