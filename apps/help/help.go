// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/help/help.go
// Summary: Static key reference for the user table.
// Notes: Displays the bindings as a centred two-column grid.

package help

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltable/internal/theming"
	"github.com/framegrace/texeltable/texelui/core"
)

// Title is the heading drawn above the sections.
const Title = "Справка: таблица пользователей"

// Entry pairs a key with what it does.
type Entry struct {
	Key  string
	Desc string
}

// Section is a titled group of entries.
type Section struct {
	Title   string
	Entries []Entry
}

// Sections lists the table key and mouse bindings.
func Sections() []Section {
	return []Section{
		{
			Title: "Навигация",
			Entries: []Entry{
				{"Стрелки", "Переместить курсор"},
				{"Home/End", "Первая/последняя колонка"},
				{"PgUp/PgDn", "Предыдущая/следующая страница"},
				{"Ctrl+Home/End", "Первая/последняя страница"},
				{"Tab", "Следующий элемент"},
			},
		},
		{
			Title: "Редактирование",
			Entries: []Entry{
				{"Enter", "Изменить ячейку"},
				{"Буква", "Заменить значение"},
				{"Enter/Tab", "Сохранить"},
				{"Esc", "Отменить"},
			},
		},
		{
			Title: "Таблица",
			Entries: []Entry{
				{"Ctrl+S", "Сортировка по колонке"},
				{"/", "Фильтр (Esc сбрасывает)"},
				{"Клик", "Сортировка по заголовку"},
				{"Ctrl+C", "Выход"},
			},
		},
	}
}

type helpApp struct {
	width, height int
	mu            sync.RWMutex
	stop          chan struct{}
	stopOnce      sync.Once
	pal           theming.Palette
	sections      []Section
}

// New returns the help app drawn with pal.
func New(pal theming.Palette) core.App {
	return &helpApp{
		stop:     make(chan struct{}),
		pal:      pal,
		sections: Sections(),
	}
}

func (a *helpApp) Run() error {
	<-a.stop
	return nil
}

func (a *helpApp) Stop() {
	a.stopOnce.Do(func() {
		close(a.stop)
	})
}

func (a *helpApp) Resize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.width, a.height = cols, rows
}

func (a *helpApp) Render() [][]core.Cell {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.width <= 0 || a.height <= 0 {
		return [][]core.Cell{}
	}

	base := a.pal.Base
	titleStyle := a.pal.HeaderSorted
	keyStyle := a.pal.Header
	descStyle := a.pal.ReadOnly

	buf := core.NewBuffer(a.width, a.height, base)
	p := core.NewPainter(buf, core.Rect{W: a.width, H: a.height})

	totalLines := 1
	keyWidth := 0
	for _, s := range a.sections {
		totalLines += 2 + len(s.Entries)
		for _, e := range s.Entries {
			keyWidth = max(keyWidth, core.TextWidth(e.Key))
		}
	}
	keyWidth += 2

	contentWidth := min(keyWidth+32, a.width-4)
	startX := max(2, (a.width-contentWidth)/2)
	y := max(1, (a.height-totalLines)/2)

	p.DrawTextIn(0, y, a.width, Title, titleStyle, core.AlignCenter)
	y += 2
	for _, s := range a.sections {
		if y >= a.height {
			break
		}
		p.DrawTextIn(0, y, a.width, s.Title, titleStyle, core.AlignCenter)
		y++
		for _, e := range s.Entries {
			if y >= a.height {
				break
			}
			p.DrawTextIn(startX, y, keyWidth-1, e.Key, keyStyle, core.AlignRight)
			p.DrawText(startX+keyWidth+1, y, e.Desc, descStyle)
			y++
		}
		y++
	}
	return buf
}

func (a *helpApp) GetTitle() string { return "Справка" }

func (a *helpApp) HandleKey(ev *tcell.EventKey) {}

func (a *helpApp) SetRefreshNotifier(refreshChan chan<- bool) {}
