// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/celleditor/editor.go
// Summary: Controlled single-line cell input that commits on blur.
// Usage: The grid keeps one Editor per editable cell it has shown.

package celleditor

import (
	"github.com/google/uuid"
)

// Target receives committed cell values.
type Target interface {
	CommitField(key uuid.UUID, field, value string)
}

// Editor mirrors one record field. Keystrokes change only the local value;
// the value reaches the Target when the editor loses focus.
type Editor struct {
	target Target
	key    uuid.UUID
	field  string

	source  string
	local   []rune
	caret   int
	focused bool
}

// New creates an editor showing source.
func New(target Target, key uuid.UUID, field, source string) *Editor {
	e := &Editor{target: target, key: key, field: field}
	e.reset(source)
	return e
}

func (e *Editor) reset(source string) {
	e.source = source
	e.local = []rune(source)
	e.caret = len(e.local)
}

// Key returns the record key the editor writes to.
func (e *Editor) Key() uuid.UUID { return e.key }

// Field returns the record field the editor writes to.
func (e *Editor) Field() string { return e.field }

// Sync adopts a new source value when it changed outside this editor.
func (e *Editor) Sync(source string) {
	if source == e.source {
		return
	}
	e.reset(source)
}

// Value returns the local value.
func (e *Editor) Value() string { return string(e.local) }

// Source returns the last synchronised source value.
func (e *Editor) Source() string { return e.source }

// Dirty reports whether the local value differs from the source.
func (e *Editor) Dirty() bool { return string(e.local) != e.source }

// Caret returns the caret position in runes.
func (e *Editor) Caret() int { return e.caret }

// Focused reports whether the editor holds focus.
func (e *Editor) Focused() bool { return e.focused }

// Focus starts an editing session.
func (e *Editor) Focus() {
	e.focused = true
	if e.caret > len(e.local) {
		e.caret = len(e.local)
	}
}

// Blur ends the session and commits the local value.
func (e *Editor) Blur() {
	if !e.focused {
		return
	}
	e.focused = false
	e.Commit()
}

// Commit writes the local value to the target.
func (e *Editor) Commit() {
	if e.target == nil {
		return
	}
	e.target.CommitField(e.key, e.field, string(e.local))
}

// Cancel drops local edits and leaves focus without committing.
func (e *Editor) Cancel() {
	e.focused = false
	e.reset(e.source)
}

// SetValue replaces the local value.
func (e *Editor) SetValue(v string) {
	e.local = []rune(v)
	e.caret = len(e.local)
}

// Insert adds r at the caret.
func (e *Editor) Insert(r rune) {
	e.local = append(e.local, 0)
	copy(e.local[e.caret+1:], e.local[e.caret:])
	e.local[e.caret] = r
	e.caret++
}

// Backspace removes the rune before the caret.
func (e *Editor) Backspace() {
	if e.caret == 0 {
		return
	}
	e.local = append(e.local[:e.caret-1], e.local[e.caret:]...)
	e.caret--
}

// Delete removes the rune under the caret.
func (e *Editor) Delete() {
	if e.caret >= len(e.local) {
		return
	}
	e.local = append(e.local[:e.caret], e.local[e.caret+1:]...)
}

// Left moves the caret one rune left.
func (e *Editor) Left() {
	if e.caret > 0 {
		e.caret--
	}
}

// Right moves the caret one rune right.
func (e *Editor) Right() {
	if e.caret < len(e.local) {
		e.caret++
	}
}

// Home moves the caret to the start.
func (e *Editor) Home() { e.caret = 0 }

// End moves the caret past the last rune.
func (e *Editor) End() { e.caret = len(e.local) }
