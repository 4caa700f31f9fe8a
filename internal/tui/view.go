package tui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(m.renderStatusBar())
	s.WriteString("\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n")
	s.WriteString(panelStyle.Render(m.content))
	s.WriteString("\n")
	s.WriteString(m.renderHelpBar())

	return s.String()
}

func (m Model) renderStatusBar() string {
	text := fmt.Sprintf("%s   %s", m.dashboard.Title, m.dashboard.Dates)
	switch {
	case m.state == StateLoading:
		text += fmt.Sprintf("   %s loading", m.spinner.View())
	case m.dashboard.Err() != nil:
		text += "   " + ErrorStyle.Render(fmt.Sprintf("Error: %d card(s) failed, showing placeholders", m.failed()))
	}
	return barStyle.Width(m.width).Render(text)
}

func (m Model) failed() int {
	n := 0
	for _, v := range m.dashboard.Views {
		if v.Err != nil {
			n++
		}
	}
	return n
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.dashboard.Views))
	for i, v := range m.dashboard.Views {
		style := tabStyle
		if i == m.active {
			style = activeTabStyle
		}
		label := v.Card.Title
		if v.Err != nil {
			label += " !"
		}
		tabs = append(tabs, style.Render(label))
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderHelpBar() string {
	helpText := "  Tab/←/→: card | r: reload"
	if _, ok := m.activeTable(); ok {
		helpText += " | /: filter"
	}
	if v, ok := m.activeView(); ok && v.Err != nil {
		helpText += " | " + WarningStyle.Render(v.Err.Error())
	}
	helpText += " | q: quit"
	return barStyle.Width(m.width).Render(helpText)
}
