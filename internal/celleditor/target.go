// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/celleditor/target.go
// Summary: Commit target writing into the record store.

package celleditor

import (
	"log"

	"github.com/google/uuid"
)

// FieldUpdater is the write side of the record store.
type FieldUpdater interface {
	UpdateFieldByKey(key uuid.UUID, field, value string) bool
}

// ResetSkipper suppresses the next automatic pagination reset.
type ResetSkipper interface {
	SkipAutoReset()
}

// StoreTarget commits edits to a store and keeps the table on its page.
type StoreTarget struct {
	Store FieldUpdater
	Table ResetSkipper
}

// CommitField arms the skip-reset token, then writes the value.
func (t StoreTarget) CommitField(key uuid.UUID, field, value string) {
	if t.Table != nil {
		t.Table.SkipAutoReset()
	}
	if t.Store == nil {
		return
	}
	if t.Store.UpdateFieldByKey(key, field, value) {
		log.Printf("UserTable: committed %s on %s", field, key)
	}
}
