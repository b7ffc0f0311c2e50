// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/seed/detect.go
// Summary: Seed file format detection.

package seed

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-enry/go-enry/v2"
)

// Format identifies a seed source kind.
type Format int

const (
	FormatUnknown Format = iota
	FormatMock
	FormatCSV
	FormatTSV
	FormatJSON
	FormatSQLite
)

func (f Format) String() string {
	switch f {
	case FormatMock:
		return "mock"
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatJSON:
		return "json"
	case FormatSQLite:
		return "sqlite"
	}
	return "unknown"
}

// ErrUnknownFormat is returned when a seed file cannot be classified.
var ErrUnknownFormat = errors.New("seed: unknown format")

var sqliteMagic = []byte("SQLite format 3\x00")

// DetectFormat classifies a seed file from its name and leading bytes.
func DetectFormat(path string, head []byte) (Format, error) {
	if bytes.HasPrefix(head, sqliteMagic) {
		return FormatSQLite, nil
	}
	for _, lang := range enry.GetLanguagesByExtension(path, head, nil) {
		switch lang {
		case "CSV":
			return FormatCSV, nil
		case "TSV":
			return FormatTSV, nil
		case "JSON", "JSON with Comments":
			return FormatJSON, nil
		}
	}
	if enry.IsBinary(head) {
		return FormatUnknown, fmt.Errorf("%w: %s is binary", ErrUnknownFormat, path)
	}
	// Extensionless text: sniff the first significant byte.
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(head, bomUTF8), " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return FormatJSON, nil
	}
	if bytes.ContainsRune(head, '\t') && !bytes.ContainsRune(head, ',') {
		return FormatTSV, nil
	}
	if bytes.ContainsRune(head, ',') {
		return FormatCSV, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}
