package commands

const (
	// DefaultChartWidth is the default logical width of rendered charts.
	DefaultChartWidth = 600

	// DefaultChartHeight is the default logical height of rendered line charts.
	DefaultChartHeight = 250

	// DefaultPixelRatio is the default device pixel ratio of rendered charts.
	DefaultPixelRatio = 2

	// ChartBackground fills rendered charts before drawing.
	ChartBackground = "#ffffff"
)
