// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/seed/sqlite.go
// Summary: SQLite seed tables read and written through modernc.org/sqlite.

package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texeltable/internal/records"
)

// ErrBadTableName is returned for table names that are not plain identifiers.
var ErrBadTableName = errors.New("seed: invalid table name")

var reIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func openSQLite(path, table string) (*sql.DB, error) {
	if !reIdent.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrBadTableName, table)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}

// LoadSQLite reads every row of table. Columns are matched to record fields
// the same way CSV headers are; other columns are ignored.
func LoadSQLite(ctx context.Context, path, table string) ([]records.Record, []Warning, error) {
	db, err := openSQLite(path, table)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+table+`"`)
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	aliases := headerAliases()
	fields := make([]string, len(cols))
	known := 0
	var warns []Warning
	for i, c := range cols {
		if f, ok := aliases[normalizeHeader(c)]; ok {
			fields[i] = f
			known++
		} else {
			warns = append(warns, Warning{Message: fmt.Sprintf("unknown column %q ignored", c)})
		}
	}
	if known == 0 {
		return nil, warns, ErrNoKnownColumns
	}

	var out []records.Record
	vals := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, warns, fmt.Errorf("scan %s: %w", table, err)
		}
		rec := records.Record{}
		for i, f := range fields {
			if f == "" || !vals[i].Valid {
				continue
			}
			next, ok := rec.With(f, vals[i].String)
			if !ok {
				warns = append(warns, Warning{Line: len(out) + 1, Message: fmt.Sprintf("invalid %s %q", f, vals[i].String)})
				continue
			}
			rec = next
		}
		if rec.ID == 0 {
			rec.ID = len(out) + 1
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, warns, err
	}
	return out, warns, nil
}

// SaveSQLite replaces table with recs.
func SaveSQLite(ctx context.Context, path, table string, recs []records.Record) error {
	db, err := openSQLite(path, table)
	if err != nil {
		return err
	}
	defer db.Close()

	fields := records.Fields()
	defs := make([]string, len(fields))
	for i, f := range fields {
		if f == records.FieldID {
			defs[i] = f + " INTEGER"
		} else {
			defs[i] = f + " TEXT"
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`DROP TABLE IF EXISTS "` + table + `"`,
		`CREATE TABLE "` + table + `" (` + strings.Join(defs, ", ") + `)`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("prepare %s: %w", table, err)
		}
	}

	ins, err := tx.PrepareContext(ctx, `INSERT INTO "`+table+`" (`+strings.Join(fields, ", ")+
		`) VALUES (?`+strings.Repeat(", ?", len(fields)-1)+`)`)
	if err != nil {
		return err
	}
	defer ins.Close()

	args := make([]any, len(fields))
	for _, r := range recs {
		args[0] = r.ID
		for i, f := range fields[1:] {
			args[i+1] = r.Get(f)
		}
		if _, err := ins.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert %d: %w", r.ID, err)
		}
	}
	return tx.Commit()
}
