package tui

import (
	"github.com/akasprzok/cubeplot/internal/charts"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Shared styles used across TUI components.
var (
	SpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	TitleStyle   = lipgloss.NewStyle().Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(charts.LabelColor)
	UpStyle      = charts.TerminalStyle(charts.CurrentHex)
	DownStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#db3500"))

	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	activeTabStyle = tabStyle.Background(lipgloss.Color("63")).Foreground(lipgloss.Color("231"))
	panelStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// NewLoadingSpinner creates a spinner with consistent styling for loading states.
func NewLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return s
}

func changeStyle(change float64) lipgloss.Style {
	if change < 0 {
		return DownStyle
	}
	return UpStyle
}
