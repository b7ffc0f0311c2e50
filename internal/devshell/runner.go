// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Hosts a single app on a local tcell screen.
// Usage: Interactive mode of cmd/texeltable.

package devshell

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltable/config"
	"github.com/framegrace/texeltable/registry"
	"github.com/framegrace/texeltable/texelui/core"
)

// Builder constructs an app, optionally using CLI args.
type Builder = registry.Builder

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Run executes the provided builder inside a local tcell screen. It
// returns when the app's Run returns or on Ctrl+C.
func Run(builder Builder, args []string) error {
	app, err := builder(args)
	if err != nil {
		return err
	}
	log.Printf("DevShell: running %s", app.GetTitle())

	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse()
	defer screen.DisableMouse()
	screen.EnablePaste()

	width, height := screen.Size()
	app.Resize(width, height)
	refreshCh := make(chan bool, 1)
	app.SetRefreshNotifier(refreshCh)

	draw := func() {
		buffer := app.Render()
		for y, row := range buffer {
			for x, cell := range row {
				if cell.Ch == 0 {
					// right half of a wide rune
					continue
				}
				screen.SetContent(x, y, cell.Ch, nil, cell.Style)
			}
		}
		screen.Show()
	}

	draw()

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run()
	}()
	defer app.Stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-refreshCh:
				screen.PostEvent(tcell.NewEventInterrupt(nil))
			case <-done:
				return
			}
		}
	}()

	var pasteBuffer []byte
	var inPaste bool

	for {
		select {
		case err := <-runErr:
			return err
		default:
		}

		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			draw()
		case *tcell.EventResize:
			w, h := tev.Size()
			app.Resize(w, h)
			screen.Sync()
			draw()
		case *tcell.EventPaste:
			if tev.Start() {
				inPaste = true
				pasteBuffer = nil
			} else if tev.End() {
				inPaste = false
				if ph, ok := app.(core.PasteHandler); ok && len(pasteBuffer) > 0 {
					ph.HandlePaste(pasteBuffer)
					draw()
				}
				pasteBuffer = nil
			}
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				return nil
			}
			if inPaste {
				if tev.Key() == tcell.KeyRune {
					pasteBuffer = append(pasteBuffer, string(tev.Rune())...)
				} else if tev.Key() == tcell.KeyEnter || tev.Key() == tcell.KeyLF {
					pasteBuffer = append(pasteBuffer, '\n')
				}
			} else {
				app.HandleKey(tev)
				draw()
			}
		case *tcell.EventMouse:
			if mh, ok := app.(core.MouseHandler); ok {
				mh.HandleMouse(tev)
				draw()
			}
		}
	}
}

// RunApp builds a registered app by name and runs it. Wrapper apps are
// loaded from the apps directory of the config root.
func RunApp(name string, args []string) error {
	reg := registry.New()
	if root, err := config.Root(); err == nil {
		if err := reg.Scan(filepath.Join(root, "apps")); err != nil {
			log.Printf("DevShell: %v", err)
		}
	}
	entry := reg.Get(name)
	if entry == nil {
		return fmt.Errorf("unknown app %q", name)
	}
	return Run(entry.Builder, args)
}
