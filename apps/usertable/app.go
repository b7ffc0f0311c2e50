// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/usertable/app.go
// Summary: Editable, paginated user table application.
// Usage: Built through the app registry and hosted by the devshell.

package usertable

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltable/internal/celleditor"
	"github.com/framegrace/texeltable/internal/records"
	"github.com/framegrace/texeltable/internal/schema"
	"github.com/framegrace/texeltable/internal/theming"
	"github.com/framegrace/texeltable/internal/viewmodel"
	"github.com/framegrace/texeltable/texelui/core"
)

// Title is the window title of the app.
const Title = "Пользователи"

// App shows a records.Store through a viewmodel.Model. Widgets only raise
// requests; the app applies them to the model and pushes the recomputed
// view back into the widgets after every input event.
type App struct {
	ui    *core.UIManager
	store *records.Store
	model *viewmodel.Model
	grid  *Grid
	pager *Pager

	width, height int

	stale       atomic.Bool
	stopCh      chan struct{}
	stopOnce    sync.Once
	unsubscribe func()
}

// New creates the app over store.
func New(store *records.Store, s Settings, pal theming.Palette) *App {
	s = s.normalized()
	a := &App{store: store, stopCh: make(chan struct{})}
	var filters viewmodel.FilterSpec
	if s.Filter != "" {
		filters = viewmodel.FilterSpec{{Query: s.Filter}}
	}
	a.model = viewmodel.NewModel(store, schema.Users(), viewmodel.State{
		Sort:    s.Sort,
		Page:    viewmodel.Pagination{PageSize: s.PageSize, PageIndex: s.Page},
		Filters: filters,
	})

	a.grid = NewGrid(celleditor.StoreTarget{Store: store, Table: a.model}, pal)
	a.grid.Zebra = s.Zebra
	a.grid.OnSort = a.model.ToggleSort
	a.grid.OnFilter = func(q string) {
		log.Printf("UserTable: filter %q", q)
		a.model.SetGlobalFilter(q)
	}
	a.grid.OnPage = func(act PageAction) {
		switch act {
		case PagePrevious:
			a.model.PreviousPage()
		case PageNext:
			a.model.NextPage()
		case PageFirst:
			a.model.FirstPage()
		case PageLast:
			a.model.LastPage()
		}
	}

	a.pager = NewPager(s.PageSizes, pal)
	a.pager.OnPrevious = a.model.PreviousPage
	a.pager.OnLast = a.model.LastPage
	a.pager.OnPage = a.model.SetPageIndex
	a.pager.OnPageSize = a.model.SetPageSize

	a.ui = core.NewUIManager(pal.Base)
	a.ui.AddWidget(a.grid)
	a.ui.AddWidget(a.pager)
	a.ui.Focus(a.grid)

	a.unsubscribe = store.Subscribe(func(*records.Snapshot) {
		a.stale.Store(true)
		a.ui.RequestRefresh()
	})
	a.refresh()
	return a
}

// Model returns the table state.
func (a *App) Model() *viewmodel.Model { return a.model }

// Store returns the record store.
func (a *App) Store() *records.Store { return a.store }

// Grid returns the table widget.
func (a *App) Grid() *Grid { return a.grid }

// Pager returns the pagination bar.
func (a *App) Pager() *Pager { return a.pager }

// UI returns the widget manager.
func (a *App) UI() *core.UIManager { return a.ui }

// refresh recomputes the view and pushes it into the widgets.
func (a *App) refresh() {
	a.stale.Store(false)
	v := a.model.View()
	a.grid.SetView(v)
	a.pager.Sync(v)
	a.layout()
}

func (a *App) layout() {
	pageSize := a.model.State().Page.PageSize
	gridH := max(0, min(a.height-PagerHeight, a.grid.HeightFor(pageSize)))
	gx, gy := a.grid.Position()
	gw, gh := a.grid.Size()
	if gx == 0 && gy == 0 && gw == a.width && gh == gridH {
		return
	}
	a.grid.SetPosition(0, 0)
	a.grid.Resize(a.width, gridH)
	a.pager.SetPosition(0, gridH)
	a.pager.Resize(a.width, PagerHeight)
	a.ui.InvalidateAll()
}

func (a *App) Run() error {
	<-a.stopCh
	return nil
}

func (a *App) Stop() {
	a.stopOnce.Do(func() {
		a.unsubscribe()
		close(a.stopCh)
	})
}

func (a *App) Resize(cols, rows int) {
	a.width, a.height = cols, rows
	a.ui.Resize(cols, rows)
	a.layout()
}

// Render recomputes first when the store changed since the last frame.
func (a *App) Render() [][]core.Cell {
	if a.stale.Load() {
		a.refresh()
	}
	return a.ui.Render()
}

func (a *App) HandleKey(ev *tcell.EventKey) {
	a.ui.HandleKey(ev)
	a.refresh()
}

// HandleMouse commits an edit in progress when the press lands outside the
// grid, even on a widget that does not take focus.
func (a *App) HandleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if ev.Buttons()&tcell.Button1 != 0 && a.grid.Editing() && !a.grid.HitTest(x, y) {
		a.grid.CommitEdit()
	}
	a.ui.HandleMouse(ev)
	a.refresh()
}

// HandlePaste inserts pasted text into the active editor. Line breaks end
// the paste.
func (a *App) HandlePaste(data []byte) {
	e := a.grid.ActiveEditor()
	if e == nil {
		return
	}
	for _, r := range string(data) {
		if r == '\n' || r == '\r' {
			break
		}
		e.Insert(r)
	}
	a.grid.invalidate()
}

func (a *App) SetRefreshNotifier(ch chan<- bool) { a.ui.SetRefreshNotifier(ch) }

func (a *App) GetTitle() string { return Title }
