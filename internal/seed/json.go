// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/seed/json.go
// Summary: JSON array seed files.

package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/framegrace/texeltable/internal/records"
)

// LoadJSON reads a JSON array of user objects keyed by field id.
func LoadJSON(path string) ([]records.Record, []Warning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read seed: %w", err)
	}
	data, _, err := DetectAndDecode(raw)
	if err != nil {
		return nil, nil, err
	}
	var recs []records.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var warns []Warning
	for i := range recs {
		if recs[i].ID == 0 {
			recs[i].ID = i + 1
			warns = append(warns, Warning{Line: i + 1, Message: "missing id, numbered by position"})
		}
	}
	return recs, warns, nil
}

// SaveJSON writes recs as an indented JSON array.
func SaveJSON(path string, recs []records.Record) error {
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
