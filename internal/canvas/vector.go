package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// svgDPI makes go-chart treat font sizes as pixels.
const svgDPI = 72

var errNoRenderer = errors.New("svg renderer not initialised")

// Vector draws through go-chart's SVG renderer. That renderer works in integer
// device pixels, so Vector applies the pixel ratio to every coordinate itself.
type Vector struct {
	r          chart.Renderer
	err        error
	background color.Color
	ratio      float64
	fontSize   float64
	fill       drawing.Color
	align      TextAlign
}

// NewVector creates an SVG surface. A nil background leaves it transparent.
func NewVector(background color.Color) *Vector {
	v := &Vector{background: background}
	v.Resize(1, 1, 1)
	return v
}

func toDrawingColor(c color.Color) drawing.Color {
	if c == nil {
		return drawing.ColorTransparent
	}
	r, g, b, a := c.RGBA()
	return drawing.ColorFromAlphaMixedRGBA(r, g, b, a)
}

func (v *Vector) px(f float64) int {
	return int(math.Round(f * v.ratio))
}

func (v *Vector) Resize(width, height, ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	v.ratio = ratio
	w := int(math.Max(1, math.Ceil(width*ratio)))
	h := int(math.Max(1, math.Ceil(height*ratio)))

	v.r, v.err = chart.SVG(w, h)
	if v.err != nil {
		v.err = fmt.Errorf("creating svg renderer: %w", v.err)
		return
	}
	v.r.SetDPI(svgDPI)
	font, err := chart.GetDefaultFont()
	if err != nil {
		v.err = fmt.Errorf("loading default font: %w", err)
		return
	}
	v.r.SetFont(font)

	if v.background != nil {
		v.r.SetFillColor(toDrawingColor(v.background))
		v.r.MoveTo(0, 0)
		v.r.LineTo(w, 0)
		v.r.LineTo(w, h)
		v.r.LineTo(0, h)
		v.r.Close()
		v.r.Fill()
	}

	v.fill = drawing.ColorBlack
	v.align = AlignLeft
	v.SetFontSize(10)
	v.r.SetStrokeColor(drawing.ColorBlack)
	v.r.SetStrokeWidth(ratio)
}

func (v *Vector) ok() bool {
	return v.err == nil && v.r != nil
}

// BeginPath is a no-op: the renderer clears its path on every Stroke and Fill.
func (v *Vector) BeginPath() {}

func (v *Vector) MoveTo(x, y float64) {
	if v.ok() {
		v.r.MoveTo(v.px(x), v.px(y))
	}
}

func (v *Vector) LineTo(x, y float64) {
	if v.ok() {
		v.r.LineTo(v.px(x), v.px(y))
	}
}

// Arc splits sweeps of half a turn or more, since an SVG arc whose start and
// end coincide draws nothing.
func (v *Vector) Arc(x, y, radius, startAngle, endAngle float64) {
	if !v.ok() {
		return
	}
	cx, cy := v.px(x), v.px(y)
	rr := radius * v.ratio
	delta := endAngle - startAngle
	steps := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if steps < 1 {
		steps = 1
	}
	step := delta / float64(steps)
	for i := 0; i < steps; i++ {
		v.r.ArcTo(cx, cy, rr, rr, startAngle+float64(i)*step, step)
	}
}

func (v *Vector) Stroke() {
	if v.ok() {
		v.r.Stroke()
	}
}

func (v *Vector) Fill() {
	if v.ok() {
		v.r.SetFillColor(v.fill)
		v.r.Fill()
	}
}

func (v *Vector) SetStrokeColor(c color.Color) {
	if v.ok() {
		v.r.SetStrokeColor(toDrawingColor(c))
	}
}

func (v *Vector) SetFillColor(c color.Color) {
	v.fill = toDrawingColor(c)
}

func (v *Vector) SetLineWidth(width float64) {
	if v.ok() {
		v.r.SetStrokeWidth(width * v.ratio)
	}
}

func (v *Vector) SetLineDash(pattern ...float64) {
	if !v.ok() {
		return
	}
	if len(pattern) == 0 {
		v.r.SetStrokeDashArray(nil)
		return
	}
	scaled := make([]float64, len(pattern))
	for i, p := range pattern {
		scaled[i] = p * v.ratio
	}
	v.r.SetStrokeDashArray(scaled)
}

func (v *Vector) SetFontSize(size float64) {
	v.fontSize = size
	if v.ok() {
		v.r.SetFontSize(size * v.ratio)
	}
}

func (v *Vector) SetTextAlign(align TextAlign) {
	v.align = align
}

func (v *Vector) MeasureText(text string) float64 {
	if !v.ok() {
		return 0
	}
	return float64(v.r.MeasureText(text).Width()) / v.ratio
}

func (v *Vector) FillText(text string, x, y float64) {
	if !v.ok() {
		return
	}
	x -= v.align.offset(v.MeasureText(text))
	v.r.SetFontColor(v.fill)
	v.r.Text(text, v.px(x), v.px(y))
}

func (v *Vector) Encode(w io.Writer) error {
	if v.err != nil {
		return v.err
	}
	if v.r == nil {
		return errNoRenderer
	}
	if err := v.r.Save(w); err != nil {
		return fmt.Errorf("encoding svg: %w", err)
	}
	return nil
}

func (*Vector) Extension() string {
	return "svg"
}
