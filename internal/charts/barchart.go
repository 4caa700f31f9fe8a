package charts

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

// Barchart renders a breakdown as horizontal bars, one per entry including Others.
func Barchart(b Breakdown, width int) string {
	entries := b.All()
	barData := make([]barchart.BarData, 0, len(entries))
	for _, e := range entries {
		barData = append(barData, barchart.BarData{
			Label: fmt.Sprintf("%s (%s)", e.Label, e.PercentLabel()),
			Values: []barchart.BarValue{
				{Name: e.Label, Value: max(e.Value, 0), Style: lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color))},
			},
		})
	}

	bc := barchart.New(width, len(barData)*2, barchart.WithDataSet(barData), barchart.WithHorizontalBars())
	bc.Draw()

	return bc.View()
}
