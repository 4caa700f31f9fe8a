package canvas

import (
	"fmt"
	"image/color"
	"io"
	"slices"
	"strings"
	"unicode/utf8"
)

// Op names recorded by Recorder.
const (
	OpResize   = "resize"
	OpMoveTo   = "moveTo"
	OpLineTo   = "lineTo"
	OpArc      = "arc"
	OpStroke   = "stroke"
	OpFill     = "fill"
	OpFillText = "fillText"
)

// Op is one recorded drawing command together with the state it ran under.
type Op struct {
	Name  string
	Args  []float64
	Text  string
	Color string
	Width float64
	Dash  []float64
	Align TextAlign
}

func (o Op) String() string {
	var b strings.Builder
	b.WriteString(o.Name)
	for _, a := range o.Args {
		fmt.Fprintf(&b, " %.2f", a)
	}
	if o.Text != "" {
		fmt.Fprintf(&b, " %q %s", o.Text, o.Align)
	}
	if o.Color != "" {
		fmt.Fprintf(&b, " %s", o.Color)
	}
	if o.Name == OpStroke {
		fmt.Fprintf(&b, " w=%.1f", o.Width)
		if len(o.Dash) > 0 {
			fmt.Fprintf(&b, " dash=%v", o.Dash)
		}
	}
	return b.String()
}

// Recorder is a Context that keeps every command instead of drawing it.
// Text is measured as a fixed advance per rune of CharWidth × font size.
type Recorder struct {
	Ops       []Op
	CharWidth float64

	stroke   color.Color
	fill     color.Color
	width    float64
	dash     []float64
	fontSize float64
	align    TextAlign
}

// NewRecorder returns a Recorder measuring each rune as 0.6 of the font size.
func NewRecorder() *Recorder {
	return &Recorder{CharWidth: 0.6, fontSize: 10, width: 1}
}

func hexOf(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func (r *Recorder) record(op Op) {
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Resize(width, height, ratio float64) {
	r.Ops = r.Ops[:0]
	r.stroke, r.fill = color.Black, color.Black
	r.width, r.dash, r.fontSize, r.align = 1, nil, 10, AlignLeft
	r.record(Op{Name: OpResize, Args: []float64{width, height, ratio}})
}

func (*Recorder) BeginPath() {}

func (r *Recorder) MoveTo(x, y float64) {
	r.record(Op{Name: OpMoveTo, Args: []float64{x, y}})
}

func (r *Recorder) LineTo(x, y float64) {
	r.record(Op{Name: OpLineTo, Args: []float64{x, y}})
}

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.record(Op{Name: OpArc, Args: []float64{x, y, radius, startAngle, endAngle}})
}

func (r *Recorder) Stroke() {
	r.record(Op{Name: OpStroke, Color: hexOf(r.stroke), Width: r.width, Dash: slices.Clone(r.dash)})
}

func (r *Recorder) Fill() {
	r.record(Op{Name: OpFill, Color: hexOf(r.fill)})
}

func (r *Recorder) SetStrokeColor(c color.Color) { r.stroke = c }
func (r *Recorder) SetFillColor(c color.Color)   { r.fill = c }
func (r *Recorder) SetLineWidth(width float64)   { r.width = width }
func (r *Recorder) SetFontSize(size float64)     { r.fontSize = size }
func (r *Recorder) SetTextAlign(align TextAlign) { r.align = align }

func (r *Recorder) SetLineDash(pattern ...float64) {
	r.dash = slices.Clone(pattern)
}

func (r *Recorder) MeasureText(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * r.CharWidth * r.fontSize
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.record(Op{Name: OpFillText, Args: []float64{x, y}, Text: text, Color: hexOf(r.fill), Align: r.align})
}

// Filter returns the recorded ops with the given name, in order.
func (r *Recorder) Filter(name string) []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Name == name {
			ops = append(ops, op)
		}
	}
	return ops
}

// Encode writes one line per recorded op.
func (r *Recorder) Encode(w io.Writer) error {
	for _, op := range r.Ops {
		if _, err := fmt.Fprintln(w, op.String()); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	return nil
}

func (*Recorder) Extension() string {
	return "trace"
}
