// Package tui is the interactive terminal dashboard: one tab per card.
package tui

import (
	"os"
	"time"

	"github.com/akasprzok/cubeplot/internal/dashboard"
	"github.com/akasprzok/cubeplot/internal/tables"
	"github.com/charmbracelet/bubbles/spinner"
	"golang.org/x/term"
)

// DefaultTerminalWidth is the fallback terminal width when detection fails.
const DefaultTerminalWidth = 80

// chartPadding is the horizontal space taken by the panel border and padding.
const chartPadding = 6

// State is the load state of the dashboard.
type State int

const (
	StateLoading State = iota
	StateReady
)

// loadedMsg carries a finished dashboard load.
type loadedMsg struct {
	dashboard dashboard.Dashboard
}

// Model is the Bubble Tea model of the terminal dashboard.
type Model struct {
	composer *dashboard.Composer
	timeout  time.Duration

	dashboard dashboard.Dashboard
	active    int
	tables    map[string]tables.Model
	content   string

	state   State
	width   int
	height  int
	spinner spinner.Model
}

// NewModel returns a dashboard model that loads through composer. Until the
// first load finishes every card shows its placeholder values.
func NewModel(composer *dashboard.Composer, timeout time.Duration) Model {
	m := Model{
		composer: composer,
		timeout:  timeout,
		state:    StateLoading,
		spinner:  NewLoadingSpinner(),
	}
	m.dashboard = composer.Placeholders()
	m = m.buildTables()
	return m.render()
}

// ActiveCard returns the card on the selected tab.
func (m Model) ActiveCard() (dashboard.Card, bool) {
	if len(m.dashboard.Views) == 0 {
		return dashboard.Card{}, false
	}
	return m.dashboard.Views[m.active].Card, true
}

func (m Model) activeView() (dashboard.View, bool) {
	if len(m.dashboard.Views) == 0 {
		return dashboard.View{}, false
	}
	return m.dashboard.Views[m.active], true
}

func (m Model) chartWidth() int {
	width := m.width - chartPadding
	if width <= 0 {
		termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err == nil && termWidth > 0 {
			width = termWidth - chartPadding
		} else {
			width = DefaultTerminalWidth - chartPadding
		}
	}
	return width
}
