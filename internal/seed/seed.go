// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/seed/seed.go
// Summary: Seed source selection.
// Usage: The usertable app calls Load once at startup to fill the record store.

package seed

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/framegrace/texeltable/internal/records"
)

// DefaultRows is the mock collection size when none is configured.
const DefaultRows = 100

// Source describes where the initial records come from. An empty Path
// selects the mock generator.
type Source struct {
	Path       string
	Table      string
	Rows       int
	RandomSeed uint64
}

// Format resolves the source kind, reading the head of the file if needed.
func (s Source) Format() (Format, error) {
	if s.Path == "" {
		return FormatMock, nil
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FormatUnknown, fmt.Errorf("read seed: %w", err)
	}
	return DetectFormat(s.Path, head[:n])
}

// Load produces the initial records for s.
func Load(ctx context.Context, s Source) ([]records.Record, []Warning, error) {
	format, err := s.Format()
	if err != nil {
		return nil, nil, err
	}

	var (
		recs  []records.Record
		warns []Warning
	)
	switch format {
	case FormatMock:
		n := s.Rows
		if n <= 0 {
			n = DefaultRows
		}
		recs = Mock(n, s.RandomSeed)
	case FormatCSV:
		recs, warns, err = LoadCSV(s.Path)
	case FormatTSV:
		recs, warns, err = LoadTSV(s.Path)
	case FormatJSON:
		recs, warns, err = LoadJSON(s.Path)
	case FormatSQLite:
		table := s.Table
		if table == "" {
			table = "users"
		}
		recs, warns, err = LoadSQLite(ctx, s.Path, table)
	default:
		err = ErrUnknownFormat
	}
	if err != nil {
		return nil, warns, err
	}
	for _, w := range warns {
		log.Printf("Seed: %s: %s", s.Path, w)
	}
	log.Printf("Seed: loaded %d records (%s)", len(recs), format)
	return recs, warns, nil
}
