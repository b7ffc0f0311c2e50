// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/records/store.go
// Summary: Snapshot-based record store with bulk replace and field updates.
// Usage: Seeded once at startup; written only by the cell editor commit path.

package records

import (
	"sync"

	"github.com/google/uuid"
)

// Snapshot is an immutable, versioned view of the record collection.
// A Snapshot is never modified after the Store publishes it.
type Snapshot struct {
	version uint64
	records []Record
	index   map[uuid.UUID]int
}

func newSnapshot(version uint64, recs []Record) *Snapshot {
	idx := make(map[uuid.UUID]int, len(recs))
	for i, r := range recs {
		idx[r.Key] = i
	}
	return &Snapshot{version: version, records: recs, index: idx}
}

// Version increases by one for every published snapshot.
func (s *Snapshot) Version() uint64 {
	if s == nil {
		return 0
	}
	return s.version
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// At returns the record at position i.
func (s *Snapshot) At(i int) (Record, bool) {
	if s == nil || i < 0 || i >= len(s.records) {
		return Record{}, false
	}
	return s.records[i], true
}

// IndexOf resolves a stable key to its current position.
func (s *Snapshot) IndexOf(key uuid.UUID) (int, bool) {
	if s == nil {
		return -1, false
	}
	i, ok := s.index[key]
	return i, ok
}

// Records returns a copy of the ordered collection.
func (s *Snapshot) Records() []Record {
	if s == nil {
		return nil
	}
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Store holds the current snapshot and notifies subscribers on change.
type Store struct {
	mu        sync.RWMutex
	snap      *Snapshot
	listeners map[int]func(*Snapshot)
	nextID    int
}

// NewStore seeds a store with the given records.
func NewStore(recs []Record) *Store {
	return &Store{
		snap:      newSnapshot(1, withKeys(recs)),
		listeners: make(map[int]func(*Snapshot)),
	}
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe registers fn to be called after every published snapshot.
func (s *Store) Subscribe(fn func(*Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// ReplaceAll replaces the whole collection. Records without a key get one.
func (s *Store) ReplaceAll(recs []Record) {
	s.publish(func(cur *Snapshot) (*Snapshot, bool) {
		return newSnapshot(cur.version+1, withKeys(recs)), true
	})
}

// UpdateField replaces one field of the record at rowIndex. Out-of-range
// rows, unknown fields and unrepresentable values are ignored.
func (s *Store) UpdateField(rowIndex int, field, value string) bool {
	return s.publish(func(cur *Snapshot) (*Snapshot, bool) {
		return cur.withField(rowIndex, field, value)
	})
}

// UpdateFieldByKey is UpdateField addressed by stable record key.
func (s *Store) UpdateFieldByKey(key uuid.UUID, field, value string) bool {
	return s.publish(func(cur *Snapshot) (*Snapshot, bool) {
		i, ok := cur.IndexOf(key)
		if !ok {
			return nil, false
		}
		return cur.withField(i, field, value)
	})
}

func (s *Store) publish(next func(cur *Snapshot) (*Snapshot, bool)) bool {
	s.mu.Lock()
	snap, ok := next(s.snap)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.snap = snap
	listeners := make([]func(*Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return true
}

func (s *Snapshot) withField(i int, field, value string) (*Snapshot, bool) {
	old, ok := s.At(i)
	if !ok {
		return nil, false
	}
	updated, ok := old.With(field, value)
	if !ok || updated == old {
		return nil, false
	}
	recs := make([]Record, len(s.records))
	copy(recs, s.records)
	recs[i] = updated
	return &Snapshot{version: s.version + 1, records: recs, index: s.index}, true
}

func withKeys(recs []Record) []Record {
	out := make([]Record, len(recs))
	seen := make(map[uuid.UUID]bool, len(recs))
	for i, r := range recs {
		if r.Key == uuid.Nil || seen[r.Key] {
			r.Key = uuid.New()
		}
		seen[r.Key] = true
		out[i] = r
	}
	return out
}
