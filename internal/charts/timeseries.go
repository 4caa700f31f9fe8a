package charts

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

// TerminalHeight returns the chart height for a terminal of the given width.
func TerminalHeight(width int) int {
	return max(width/ChartHeightRatio, MinChartHeight)
}

// dayTimes places the day-of-month ordinals of s on the calendar, starting in
// the month of start. An ordinal that does not increase moves on to the next
// month, so a range crossing a month boundary keeps its point order.
func dayTimes(start time.Time, s Series) []time.Time {
	year, month := start.Year(), start.Month()
	times := make([]time.Time, len(s))
	prev := 0
	for i, p := range s {
		if i > 0 && p.Ordinal <= prev {
			month++
		}
		times[i] = time.Date(year, month, p.Ordinal, 0, 0, 0, 0, time.UTC)
		prev = p.Ordinal
	}
	return times
}

// Timeseries renders the chart as a braille line chart for the terminal and
// returns the chart and its legend separately. Ordinals are days of month
// counted from start. The y range is the same one
// the canvas renderer uses, so both views agree on headroom.
func Timeseries(c LineChart, start time.Time, width int) (chart string, legend string) {
	maxValue := MaxValue(c.Current, c.Comparison)

	lc := timeserieslinechart.New(width, TerminalHeight(width))
	lc.AxisStyle = lipgloss.NewStyle().Foreground(AxisColor)
	lc.LabelStyle = lipgloss.NewStyle().Foreground(LabelColor)
	lc.XLabelFormatter = func(_ int, v float64) string {
		return time.Unix(int64(v), 0).UTC().Format("02")
	}
	lc.SetYRange(0, maxValue)
	lc.SetViewYRange(0, maxValue)
	lc.SetStyle(TerminalStyle(CurrentHex))
	lc.SetLineStyle(runes.ThinLineStyle)

	var legendBuilder strings.Builder
	sets := []struct {
		name   string
		hex    string
		series Series
	}{
		{c.ComparisonLabel, ComparisonHex, c.Comparison},
		{c.CurrentLabel, CurrentHex, c.Current},
	}
	for i, set := range sets {
		style := TerminalStyle(set.hex)
		if i > 0 {
			legendBuilder.WriteString("  ")
		}
		legendBuilder.WriteString(style.Render(fmt.Sprintf("%c %s", runes.FullBlock, set.name)))
		lc.SetDataSetStyle(set.name, style)
		times := dayTimes(start, set.series)
		for i, p := range set.series {
			lc.PushDataSet(set.name, timeserieslinechart.TimePoint{
				Time:  times[i],
				Value: p.Value,
			})
		}
	}

	lc.DrawBrailleAll()

	return lc.View(), legendBuilder.String()
}
