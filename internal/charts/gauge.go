package charts

import (
	"math"

	"github.com/akasprzok/cubeplot/internal/canvas"
)

// Gauge draws a breakdown as a half-circle of colored segments with a needle.
type Gauge struct {
	Breakdown Breakdown
	// NeedleFraction is the needle position along the sweep, 0 (left) to 1 (right).
	NeedleFraction float64
}

// NewGauge returns a gauge with the needle at DefaultNeedleFraction.
func NewGauge(b Breakdown) Gauge {
	return Gauge{Breakdown: b, NeedleFraction: DefaultNeedleFraction}
}

// sweepEpsilon absorbs rounding when the shares add up to the full sweep.
const sweepEpsilon = 1e-9

// GaugeSegment is one colored span of the gauge arc, in radians.
type GaugeSegment struct {
	Color      string
	StartAngle float64
	EndAngle   float64
}

// Segments splits the upper half circle (π to 2π) in proportion to each
// entry's share of the total. Whatever the entries do not cover is painted in
// the track color.
func (g Gauge) Segments() []GaugeSegment {
	total := g.Breakdown.Total
	if !(total > 0) || math.IsInf(total, 0) {
		return []GaugeSegment{{Color: GaugeTrackHex, StartAngle: math.Pi, EndAngle: 2 * math.Pi}}
	}

	var segments []GaugeSegment
	angle := math.Pi
	for _, e := range g.Breakdown.All() {
		share := e.Value / total
		if !(share > 0) {
			continue
		}
		end := math.Min(angle+share*math.Pi, 2*math.Pi)
		segments = append(segments, GaugeSegment{Color: e.Color, StartAngle: angle, EndAngle: end})
		angle = end
	}
	if 2*math.Pi-angle > sweepEpsilon {
		segments = append(segments, GaugeSegment{Color: GaugeTrackHex, StartAngle: angle, EndAngle: 2 * math.Pi})
	}
	return segments
}

// NeedleAngle returns the needle direction in radians, clamped to the sweep.
func (g Gauge) NeedleAngle() float64 {
	f := math.Max(0, math.Min(1, g.NeedleFraction))
	if math.IsNaN(g.NeedleFraction) {
		f = 0
	}
	return math.Pi + f*math.Pi
}

// Draw paints the gauge centred on the surface. A nil context is ignored.
func (g Gauge) Draw(ctx canvas.Context, width, height, ratio float64) {
	if ctx == nil {
		return
	}
	ctx.Resize(width, height, ratio)

	cx, cy := width/2, height/2
	radius := math.Min(cx, cy) - GaugeMargin
	if radius <= 0 {
		return
	}

	ctx.SetLineWidth(GaugeWidth)
	for _, seg := range g.Segments() {
		ctx.BeginPath()
		ctx.SetStrokeColor(Color(seg.Color))
		ctx.Arc(cx, cy, radius, seg.StartAngle, seg.EndAngle)
		ctx.Stroke()
	}

	angle := g.NeedleAngle()
	ctx.BeginPath()
	ctx.MoveTo(cx, cy)
	ctx.LineTo(cx+radius*NeedleLength*math.Cos(angle), cy+radius*NeedleLength*math.Sin(angle))
	ctx.SetLineWidth(TraceWidth)
	ctx.SetStrokeColor(Color(NeedleHex))
	ctx.Stroke()

	ctx.BeginPath()
	ctx.Arc(cx, cy, HubRadius, 0, 2*math.Pi)
	ctx.SetFillColor(Color(NeedleHex))
	ctx.Fill()
}
