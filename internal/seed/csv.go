// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/seed/csv.go
// Summary: CSV and TSV seed files with header-mapped columns.

package seed

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/framegrace/texeltable/internal/records"
	"github.com/framegrace/texeltable/internal/schema"
)

// ErrNoKnownColumns is returned when no header matches a record field.
var ErrNoKnownColumns = errors.New("seed: header has no known columns")

// Warning describes a recoverable problem in a seed file.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}

// LoadCSV reads a comma separated seed file.
func LoadCSV(path string) ([]records.Record, []Warning, error) {
	return loadDelimited(path, ',')
}

// LoadTSV reads a tab separated seed file.
func LoadTSV(path string) ([]records.Record, []Warning, error) {
	return loadDelimited(path, '\t')
}

func loadDelimited(path string, comma rune) ([]records.Record, []Warning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read seed: %w", err)
	}
	data, enc, err := DetectAndDecode(raw)
	if err != nil {
		return nil, nil, err
	}
	recs, warns, err := ParseDelimited(bytes.NewReader(data), comma)
	if err != nil {
		return nil, warns, fmt.Errorf("%s: %w", path, err)
	}
	if enc != "utf-8" {
		warns = append([]Warning{{Message: "decoded from " + enc}}, warns...)
	}
	return recs, warns, nil
}

// ParseDelimited reads UTF-8 delimited text. The first row names the
// columns by field id or by the users table header label; unknown columns
// are skipped. Short rows are padded and long rows truncated.
func ParseDelimited(r io.Reader, comma rune) ([]records.Record, []Warning, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("header: %w", err)
	}

	var warns []Warning
	aliases := headerAliases()
	fields := make([]string, len(header))
	known := 0
	for i, h := range header {
		f, ok := aliases[normalizeHeader(h)]
		if !ok {
			warns = append(warns, Warning{Line: 1, Message: fmt.Sprintf("unknown column %q ignored", h)})
			continue
		}
		fields[i] = f
		known++
	}
	if known == 0 {
		return nil, warns, ErrNoKnownColumns
	}

	var out []records.Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warns = append(warns, Warning{Line: line, Message: err.Error()})
			continue
		}
		switch {
		case len(row) < len(header):
			warns = append(warns, Warning{Line: line, Message: fmt.Sprintf("%d fields, padded to %d", len(row), len(header))})
			row = append(row, make([]string, len(header)-len(row))...)
		case len(row) > len(header):
			warns = append(warns, Warning{Line: line, Message: fmt.Sprintf("%d fields, truncated to %d", len(row), len(header))})
			row = row[:len(header)]
		}

		rec := records.Record{}
		for i, f := range fields {
			if f == "" {
				continue
			}
			v := strings.TrimSpace(row[i])
			if v == "" {
				continue
			}
			next, ok := rec.With(f, v)
			if !ok {
				warns = append(warns, Warning{Line: line, Message: fmt.Sprintf("invalid %s %q", f, row[i])})
				continue
			}
			rec = next
		}
		if rec.ID == 0 {
			rec.ID = len(out) + 1
		}
		out = append(out, rec)
	}
	return out, warns, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

func headerAliases() map[string]string {
	m := make(map[string]string)
	for _, f := range records.Fields() {
		m[f] = f
	}
	for _, leaf := range schema.Users().Leaves() {
		m[normalizeHeader(leaf.Header)] = leaf.Field
	}
	return m
}
