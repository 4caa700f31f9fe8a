package charts

import (
	"image/color"

	"github.com/akasprzok/cubeplot/internal/canvas"
	"github.com/charmbracelet/lipgloss"
)

// Dashboard colors.
const (
	CurrentHex    = "#1d874f" // Green - current period trace
	ComparisonHex = "#ea6153" // Coral - comparison period trace
	GridHex       = "#ebebeb"
	AxisLabelHex  = "#8c9198"
	LegendTextHex = "#4f4d55"
	NeedleHex     = "#4f4d55"
	OthersHex     = "#d9d9d9"
	GaugeTrackHex = "#dfeae8"
)

// BreakdownPalette colors the named entries of a breakdown, in rank order.
var BreakdownPalette = []string{
	"#6c4fed", // Violet
	"#ea6153", // Coral
	"#f7c245", // Saffron
}

// AxisColor is the color used for terminal chart axes.
var AxisColor = lipgloss.Color(AxisLabelHex)

// LabelColor is the color used for terminal chart labels.
var LabelColor = lipgloss.Color(LegendTextHex)

// Color converts a hex string to a color for the canvas backends.
func Color(hex string) color.Color {
	return canvas.HexColor(hex)
}

// BreakdownColor returns the color for a breakdown rank, cycling through the palette.
func BreakdownColor(index int) string {
	return BreakdownPalette[index%len(BreakdownPalette)]
}

// TerminalStyle returns a lipgloss style with the given hex color as foreground.
func TerminalStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
