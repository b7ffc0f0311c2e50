// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeltable/main.go
// Summary: Runs the user table interactively, or prints one page as text.
// Usage: `texeltable` on a terminal; `texeltable -dump` or a pipe prints a page.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	_ "github.com/framegrace/texeltable/apps/help"
	"github.com/framegrace/texeltable/apps/usertable"
	"github.com/framegrace/texeltable/config"
	"github.com/framegrace/texeltable/internal/devshell"
	"github.com/framegrace/texeltable/internal/records"
	"github.com/framegrace/texeltable/internal/schema"
	"github.com/framegrace/texeltable/internal/tablefmt"
	"github.com/framegrace/texeltable/internal/viewmodel"
	"github.com/framegrace/texeltable/texelui/core"
)

// minDumpColumnWidth bounds how far a static dump shrinks columns to fit
// the terminal.
const minDumpColumnWidth = 6

type options struct {
	app      string
	seed     string
	rows     int
	dump     bool
	page     int
	pageSize int
	sort     string
	filter   string
	logPath  string
	maxWidth int
	args     []string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("texeltable", flag.ContinueOnError)
	fs.StringVar(&o.app, "app", "", "app to run (default from config defaultApp)")
	fs.StringVar(&o.seed, "seed", "", "seed file: CSV, TSV, JSON or SQLite (default: mock data)")
	fs.IntVar(&o.rows, "rows", 0, "number of mock rows when no seed file is given")
	fs.BoolVar(&o.dump, "dump", false, "print one page as text instead of running interactively")
	fs.IntVar(&o.page, "page", 1, "page to show, starting at 1")
	fs.IntVar(&o.pageSize, "page-size", 0, "rows per page")
	fs.StringVar(&o.sort, "sort", "", "sort column, e.g. name, name:desc or -name")
	fs.StringVar(&o.filter, "filter", "", "show only rows containing this text")
	fs.StringVar(&o.logPath, "log", "", "log file for interactive mode (default from config)")
	fs.IntVar(&o.maxWidth, "max-width", 0, "maximum column width in text output")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.page < 1 {
		return o, fmt.Errorf("-page must be at least 1, got %d", o.page)
	}
	o.args = fs.Args()
	return o, nil
}

func run(args []string, stdout *os.File) error {
	o, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if o.app == "" {
		o.app = config.System().GetString("", "defaultApp", usertable.Name)
	}

	s := settingsFor(o)
	interactive := !o.dump && term.IsTerminal(int(stdout.Fd()))
	if !interactive {
		if o.app != usertable.Name {
			return fmt.Errorf("app %q has no text output", o.app)
		}
		width := 0
		if w, _, err := term.GetSize(int(stdout.Fd())); err == nil {
			width = w
		}
		return dump(context.Background(), stdout, s, o, width)
	}

	closeLog, err := redirectLog(o.logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	if o.app != usertable.Name {
		return devshell.RunApp(o.app, o.args)
	}
	return devshell.Run(func(args []string) (core.App, error) {
		if len(args) > 0 {
			s.Seed.Path = args[0]
		}
		app, err := usertable.Build(context.Background(), s)
		if err != nil {
			return nil, err
		}
		return app, nil
	}, o.args)
}

// settingsFor applies the command-line overrides to the configured settings.
func settingsFor(o options) usertable.Settings {
	s := usertable.LoadSettings(config.App(usertable.Name))
	if o.seed != "" {
		s.Seed.Path = o.seed
	}
	if o.rows > 0 {
		s.Seed.Rows = o.rows
	}
	if o.pageSize > 0 {
		s.PageSize = o.pageSize
	}
	if o.sort != "" {
		s.Sort = viewmodel.ParseSort(o.sort)
	}
	s.Page = o.page - 1
	s.Filter = o.filter
	return s
}

// dump writes one page of the table and its status line to w. A positive
// width shrinks columns until the table fits, unless -max-width is set.
func dump(ctx context.Context, w io.Writer, s usertable.Settings, o options, width int) error {
	recs, err := usertable.LoadRecords(ctx, s.Seed)
	if err != nil {
		return err
	}
	var filters viewmodel.FilterSpec
	if s.Filter != "" {
		filters = viewmodel.FilterSpec{{Query: s.Filter}}
	}
	model := viewmodel.NewModel(records.NewStore(recs), schema.Users(), viewmodel.State{
		Sort:    s.Sort,
		Page:    viewmodel.Pagination{PageSize: s.PageSize, PageIndex: s.Page},
		Filters: filters,
	})
	v := model.View()

	opts := tablefmt.Options{MaxColumnWidth: o.maxWidth}
	if o.maxWidth <= 0 && width > 0 {
		opts.MaxColumnWidth = fitColumnWidth(v, width)
	}
	return tablefmt.Write(w, v, opts)
}

// fitColumnWidth returns the largest column cap at which the table is no
// wider than width.
func fitColumnWidth(v viewmodel.View, width int) int {
	for mw := tablefmt.DefaultMaxColumnWidth; mw > minDumpColumnWidth; mw-- {
		lines := tablefmt.Render(v, tablefmt.Options{MaxColumnWidth: mw})
		if len(lines) == 0 || runewidth.StringWidth(lines[0]) <= width {
			return mw
		}
	}
	return minDumpColumnWidth
}

// redirectLog sends log output to path, or to the configured log file in
// the config root.
func redirectLog(path string) (func(), error) {
	if path == "" {
		root, err := config.Root()
		if err != nil {
			return nil, fmt.Errorf("resolve config root: %w", err)
		}
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("create config directory: %w", err)
		}
		path = filepath.Join(root, config.System().GetString("log", "file", "texeltable.log"))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
