// Package charts lays out and paints the dashboard charts: the comparison
// line chart and the categorical gauge. Every draw recomputes its layout from
// the inputs; nothing is retained between draws.
package charts

import "github.com/akasprzok/cubeplot/internal/canvas"

// Drawer paints a complete chart onto ctx at the given logical size and pixel ratio.
type Drawer interface {
	Draw(ctx canvas.Context, width, height, ratio float64)
}

var (
	_ Drawer = LineChart{}
	_ Drawer = Gauge{}
)
