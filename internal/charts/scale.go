package charts

import (
	"github.com/samber/lo"
)

// Point is one plotted value. Ordinal is a day of month or a category index.
type Point struct {
	Ordinal int     `json:"ordinal" yaml:"ordinal"`
	Value   float64 `json:"value" yaml:"value"`
}

// Series is an ordered run of points; order is draw order.
type Series []Point

// Values returns the point values in order.
func (s Series) Values() []float64 {
	return lo.Map(s, func(p Point, _ int) float64 { return p.Value })
}

// Ordinals returns the point ordinals in order.
func (s Series) Ordinals() []int {
	return lo.Map(s, func(p Point, _ int) int { return p.Ordinal })
}

// Scaled returns a copy of s with every value multiplied by factor.
func (s Series) Scaled(factor float64) Series {
	return lo.Map(s, func(p Point, _ int) Point {
		return Point{Ordinal: p.Ordinal, Value: p.Value * factor}
	})
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Scale maps values and point indices to pixel positions inside Plot.
type Scale struct {
	MaxValue       float64
	PixelsPerUnitY float64
	PixelsPerUnitX float64
	Plot           Rect
}

// MaxValue returns the largest value across all series plus headroom, or
// DefaultMaxValue when there is nothing positive to scale against.
func MaxValue(series ...Series) float64 {
	values := lo.FlatMap(series, func(s Series, _ int) []float64 { return s.Values() })
	if len(values) == 0 {
		return DefaultMaxValue
	}
	m := lo.Max(values) * HeadroomFactor
	if !(m > 0) {
		return DefaultMaxValue
	}
	return m
}

// NewScale computes a scale shared by all series over pointCount x positions.
// With one point or fewer every index maps to the left edge of the plot.
func NewScale(plot Rect, pointCount int, series ...Series) Scale {
	s := Scale{
		MaxValue: MaxValue(series...),
		Plot:     plot,
	}
	s.PixelsPerUnitY = plot.Height / s.MaxValue
	if pointCount > 1 {
		s.PixelsPerUnitX = plot.Width / float64(pointCount-1)
	}
	return s
}

// X returns the horizontal position of the i-th point.
func (s Scale) X(i int) float64 {
	return s.Plot.X + float64(i)*s.PixelsPerUnitX
}

// Y returns the vertical position of value v; larger values sit higher.
func (s Scale) Y(v float64) float64 {
	return s.Plot.Y + s.Plot.Height - v*s.PixelsPerUnitY
}

// GridValues returns the values that get a horizontal gridline.
func (s Scale) GridValues() []float64 {
	return lo.Map(GridFractions, func(f float64, _ int) float64 { return s.MaxValue * f })
}

// AxisOrdinals returns the ordinals to label, falling back to DefaultOrdinals
// when the series is empty.
func AxisOrdinals(s Series) []int {
	if len(s) == 0 {
		return DefaultOrdinals
	}
	return s.Ordinals()
}
