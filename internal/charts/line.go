package charts

import (
	"math"
	"strconv"

	"github.com/akasprzok/cubeplot/internal/canvas"
)

// Default legend labels for the comparison pair.
const (
	DefaultCurrentLabel    = "This Month"
	DefaultComparisonLabel = "Last Month"
)

// LineChart plots a current-period series against a comparison series on a
// shared scale, with gridlines, ordinal labels, point markers and a legend.
type LineChart struct {
	Current         Series
	Comparison      Series
	CurrentLabel    string
	ComparisonLabel string
	Insets          Insets
}

// NewLineChart returns a chart with the default labels and insets.
func NewLineChart(current, comparison Series) LineChart {
	return LineChart{
		Current:         current,
		Comparison:      comparison,
		CurrentLabel:    DefaultCurrentLabel,
		ComparisonLabel: DefaultComparisonLabel,
		Insets:          DefaultInsets,
	}
}

// Layout computes the scale for a surface of the given logical size.
func (c LineChart) Layout(width, height float64) Scale {
	plot := Rect{
		X:      c.Insets.Left,
		Y:      c.Insets.Top,
		Width:  width - c.Insets.Left - c.Insets.Right,
		Height: height - c.Insets.Top - c.Insets.Bottom - LegendReserve,
	}
	return NewScale(plot, len(AxisOrdinals(c.Current)), c.Current, c.Comparison)
}

// Draw paints the chart. A nil context is ignored.
func (c LineChart) Draw(ctx canvas.Context, width, height, ratio float64) {
	if ctx == nil {
		return
	}
	ctx.Resize(width, height, ratio)
	s := c.Layout(width, height)

	drawGrid(ctx, s)
	drawAxisLabels(ctx, s, AxisOrdinals(c.Current), height-AxisLabelOffset)

	drawTrace(ctx, s, c.Comparison, ComparisonHex, 2, 2)
	drawTrace(ctx, s, c.Current, CurrentHex)
	drawMarkers(ctx, s, c.Current, CurrentHex)

	c.drawLegend(ctx, height-LegendOffset)
}

func drawGrid(ctx canvas.Context, s Scale) {
	ctx.BeginPath()
	ctx.SetStrokeColor(Color(GridHex))
	ctx.SetLineWidth(1)
	ctx.SetLineDash(2, 2)
	for _, v := range s.GridValues() {
		y := s.Y(v)
		ctx.MoveTo(s.Plot.X, y)
		ctx.LineTo(s.Plot.X+s.Plot.Width, y)
	}
	ctx.Stroke()
	ctx.SetLineDash()
}

func drawAxisLabels(ctx canvas.Context, s Scale, ordinals []int, baseline float64) {
	ctx.SetFillColor(Color(AxisLabelHex))
	ctx.SetFontSize(LabelFontSize)
	ctx.SetTextAlign(canvas.AlignCenter)
	for i, o := range ordinals {
		ctx.FillText(strconv.Itoa(o), s.X(i), baseline)
	}
}

func drawTrace(ctx canvas.Context, s Scale, series Series, hex string, dash ...float64) {
	if len(series) == 0 {
		return
	}
	ctx.BeginPath()
	ctx.SetStrokeColor(Color(hex))
	ctx.SetLineWidth(TraceWidth)
	ctx.SetLineDash(dash...)
	for i, p := range series {
		x, y := s.X(i), s.Y(p.Value)
		if i == 0 {
			ctx.MoveTo(x, y)
		} else {
			ctx.LineTo(x, y)
		}
	}
	ctx.Stroke()
	ctx.SetLineDash()
}

func drawMarkers(ctx canvas.Context, s Scale, series Series, hex string) {
	ctx.SetFillColor(Color(hex))
	for i, p := range series {
		ctx.BeginPath()
		ctx.Arc(s.X(i), s.Y(p.Value), MarkerRadius, 0, 2*math.Pi)
		ctx.Fill()
	}
}

// LegendEntry is the laid-out position of one legend item.
type LegendEntry struct {
	Label string
	Color string
	DotX  float64
	TextX float64
}

// LegendLayout positions the two legend entries. The second entry starts after
// the measured width of the first label plus LegendGap, so labels of any length
// never overlap.
func (c LineChart) LegendLayout(ctx canvas.Context) []LegendEntry {
	ctx.SetFontSize(LabelFontSize)
	first := LegendEntry{
		Label: c.CurrentLabel,
		Color: CurrentHex,
		DotX:  c.Insets.Left + LegendDotRadius + 2,
		TextX: c.Insets.Left + LegendDotRadius + 2 + LegendTextIndent,
	}
	secondX := first.TextX + ctx.MeasureText(first.Label) + LegendGap
	second := LegendEntry{
		Label: c.ComparisonLabel,
		Color: ComparisonHex,
		DotX:  secondX,
		TextX: secondX + LegendTextIndent,
	}
	return []LegendEntry{first, second}
}

func (c LineChart) drawLegend(ctx canvas.Context, y float64) {
	entries := c.LegendLayout(ctx)
	ctx.SetTextAlign(canvas.AlignLeft)
	for _, e := range entries {
		ctx.BeginPath()
		ctx.SetFillColor(Color(e.Color))
		ctx.Arc(e.DotX, y, LegendDotRadius, 0, 2*math.Pi)
		ctx.Fill()

		ctx.SetFillColor(Color(LegendTextHex))
		ctx.FillText(e.Label, e.TextX, y+LegendDotRadius)
	}
}
