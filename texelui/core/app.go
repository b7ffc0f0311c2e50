// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/app.go
// Summary: Contract between hosted applications and their host.

package core

import "github.com/gdamore/tcell/v2"

// App is a full-screen application driven by a host such as the devshell.
// Run blocks until Stop is called. Render returns the current frame; the
// app signals new frames through the refresh channel.
type App interface {
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(refreshChan chan<- bool)
	GetTitle() string
}

// MouseHandler is implemented by apps that accept mouse input.
type MouseHandler interface {
	HandleMouse(ev *tcell.EventMouse)
}

// PasteHandler is implemented by apps that accept bracketed paste.
type PasteHandler interface {
	HandlePaste(data []byte)
}
