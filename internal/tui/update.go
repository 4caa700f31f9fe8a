package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/akasprzok/cubeplot/internal/charts"
	"github.com/akasprzok/cubeplot/internal/dashboard"
	"github.com/akasprzok/cubeplot/internal/tables"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.load(),
	)
}

func (m Model) load() tea.Cmd {
	composer, timeout := m.composer, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return loadedMsg{dashboard: composer.Load(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.render(), nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case loadedMsg:
		m.dashboard = msg.dashboard
		m.state = StateReady
		if m.active >= len(m.dashboard.Views) {
			m.active = 0
		}
		m = m.buildTables()
		return m.render(), nil

	case spinner.TickMsg:
		if m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// A focused table filter owns every other key.
	if t, ok := m.activeTable(); ok && t.Filtering() {
		return m.updateTable(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "right", "l":
		return m.selectTab(m.active + 1), nil
	case "shift+tab", "left", "h":
		return m.selectTab(m.active - 1), nil
	case "r":
		if m.state == StateLoading {
			return m, nil
		}
		m.state = StateLoading
		return m, tea.Batch(m.spinner.Tick, m.load())
	}

	if _, ok := m.activeTable(); ok {
		return m.updateTable(msg)
	}
	return m, nil
}

func (m Model) selectTab(i int) Model {
	n := len(m.dashboard.Views)
	if n == 0 {
		return m
	}
	m.active = (i%n + n) % n
	return m.render()
}

func (m Model) activeTable() (tables.Model, bool) {
	v, ok := m.activeView()
	if !ok || v.Card.Kind != dashboard.KindTable {
		return tables.Model{}, false
	}
	t, ok := m.tables[v.Card.ID]
	return t, ok
}

func (m Model) updateTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	v, _ := m.activeView()
	updated, cmd := m.tables[v.Card.ID].Update(msg)
	m.tables[v.Card.ID] = updated.(tables.Model)
	return m.render(), cmd
}

// buildTables rebuilds the table models from the current views.
func (m Model) buildTables() Model {
	m.tables = make(map[string]tables.Model)
	for _, v := range m.dashboard.Views {
		if v.Card.Kind == dashboard.KindTable {
			m.tables[v.Card.ID] = tables.NewModel(tables.Columns(v.Card), v.Rows)
		}
	}
	return m
}

// render redraws the content of the active tab.
func (m Model) render() Model {
	v, ok := m.activeView()
	if !ok {
		m.content = ""
		return m
	}

	switch v.Card.Kind {
	case dashboard.KindLine:
		m.content = m.renderLine(v)
	case dashboard.KindGauge:
		m.content = m.renderGauge(v)
	case dashboard.KindTable:
		m.content = m.renderTable(v)
	}
	return m
}

func (m Model) renderLine(v dashboard.View) string {
	var s strings.Builder
	s.WriteString(TitleStyle.Render(v.Card.Title))
	s.WriteString("  ")
	s.WriteString(dashboard.FormatTotal(v.Card, v.Total))
	s.WriteString("\n")

	chart, legend := charts.Timeseries(v.LineChart(), m.dashboard.Dates.From, m.chartWidth())
	s.WriteString(chart)
	s.WriteString("\n")
	s.WriteString(legend)
	return s.String()
}

func (m Model) renderGauge(v dashboard.View) string {
	var s strings.Builder
	s.WriteString(TitleStyle.Render(v.Card.Title))
	s.WriteString("  ")
	s.WriteString(dashboard.FormatCurrency(v.Total))
	s.WriteString("\n")

	s.WriteString(charts.Barchart(v.Breakdown, m.chartWidth()))
	s.WriteString("\n")

	for _, e := range v.Breakdown.All() {
		dot := charts.TerminalStyle(e.Color).Render("●")
		s.WriteString(fmt.Sprintf("%s %-14s %12s %5s", dot, e.Label, dashboard.FormatCurrency(e.Value), e.PercentLabel()))
		if e.Label != charts.OthersLabel {
			s.WriteString("  ")
			s.WriteString(changeStyle(e.Change).Render(dashboard.FormatChange(e.Change)))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) renderTable(v dashboard.View) string {
	var s strings.Builder
	s.WriteString(TitleStyle.Render(v.Card.Title))
	if v.Demo {
		s.WriteString("  ")
		s.WriteString(MutedStyle.Render("(demo data)"))
	}
	s.WriteString("\n")
	s.WriteString(m.tables[v.Card.ID].View())
	return s.String()
}
