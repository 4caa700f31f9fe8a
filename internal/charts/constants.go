package charts

const (
	// ChartHeightRatio determines terminal chart height as width/ChartHeightRatio.
	ChartHeightRatio = 8

	// MinChartHeight is the floor for terminal chart height.
	MinChartHeight = 8

	// HeadroomFactor keeps the highest point off the top edge.
	HeadroomFactor = 1.2

	// DefaultMaxValue is used when no series holds a positive value.
	DefaultMaxValue = 4.5

	// LegendReserve is the space kept below the plot for the legend row.
	LegendReserve = 15

	// AxisLabelOffset is the distance of the x-axis label baseline from the bottom edge.
	AxisLabelOffset = 15

	// LegendOffset is the distance of the legend row from the bottom edge.
	LegendOffset = 5

	// LegendGap separates the end of one legend label from the next entry.
	LegendGap = 30

	// LegendDotRadius and LegendTextIndent lay out one legend entry.
	LegendDotRadius  = 3
	LegendTextIndent = 7

	// MarkerRadius is the radius of the point markers on the current trace.
	MarkerRadius = 3

	// TraceWidth is the stroke width of both traces.
	TraceWidth = 2

	// LabelFontSize is used for axis labels and the legend.
	LabelFontSize = 10

	// TopN is how many categories a breakdown names before folding the rest into Others.
	TopN = 3

	// GaugeHeight is the default drawing height of the gauge.
	GaugeHeight = 100

	// GaugeWidth is the stroke width of the gauge arc.
	GaugeWidth = 15

	// GaugeMargin is subtracted from the half-extent to get the gauge radius.
	GaugeMargin = 10

	// DefaultNeedleFraction positions the needle along the gauge sweep.
	DefaultNeedleFraction = 0.6

	// NeedleLength is the needle length relative to the gauge radius.
	NeedleLength = 0.7

	// HubRadius is the radius of the dot at the needle pivot.
	HubRadius = 5
)

// DefaultOrdinals label the x axis when a chart has no data.
var DefaultOrdinals = []int{1, 5, 10, 15, 20, 25, 28}

// GridFractions are the fractions of the maximum value that get a gridline.
var GridFractions = []float64{0.33, 0.66, 1}

// Insets are the padding between the surface edge and the plot area.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// DefaultInsets are the paddings used by LineChart.
var DefaultInsets = Insets{Top: 10, Right: 10, Bottom: 20, Left: 10}
