package canvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// baseFontSize is the pixel height of basicfont.Face7x13.
const baseFontSize = 13

// Raster draws into an RGBA image using gg and encodes it as PNG.
type Raster struct {
	dc         *gg.Context
	background color.Color
	stroke     color.Color
	fill       color.Color
	fontSize   float64
	align      TextAlign
}

// NewRaster creates a raster surface. A nil background leaves it transparent.
func NewRaster(background color.Color) *Raster {
	r := &Raster{background: background}
	r.Resize(1, 1, 1)
	return r
}

func (r *Raster) Resize(width, height, ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	w := int(math.Max(1, math.Ceil(width*ratio)))
	h := int(math.Max(1, math.Ceil(height*ratio)))

	r.dc = gg.NewContext(w, h)
	if r.background != nil {
		r.dc.SetColor(r.background)
		r.dc.Clear()
	}
	r.dc.Scale(ratio, ratio)
	r.dc.SetFontFace(basicfont.Face7x13)

	r.stroke = color.Black
	r.fill = color.Black
	r.fontSize = 10
	r.align = AlignLeft
}

func (r *Raster) BeginPath() {
	r.dc.ClearPath()
}

func (r *Raster) MoveTo(x, y float64) {
	r.dc.MoveTo(x, y)
}

func (r *Raster) LineTo(x, y float64) {
	r.dc.LineTo(x, y)
}

func (r *Raster) Arc(x, y, radius, startAngle, endAngle float64) {
	r.dc.DrawArc(x, y, radius, startAngle, endAngle)
}

func (r *Raster) Stroke() {
	r.dc.SetColor(r.stroke)
	r.dc.Stroke()
}

func (r *Raster) Fill() {
	r.dc.SetColor(r.fill)
	r.dc.Fill()
}

func (r *Raster) SetStrokeColor(c color.Color) {
	r.stroke = c
}

func (r *Raster) SetFillColor(c color.Color) {
	r.fill = c
}

func (r *Raster) SetLineWidth(width float64) {
	r.dc.SetLineWidth(width)
}

func (r *Raster) SetLineDash(pattern ...float64) {
	r.dc.SetDash(pattern...)
}

func (r *Raster) SetFontSize(size float64) {
	r.fontSize = size
}

func (r *Raster) SetTextAlign(align TextAlign) {
	r.align = align
}

func (r *Raster) fontScale() float64 {
	return r.fontSize / baseFontSize
}

func (r *Raster) MeasureText(text string) float64 {
	w, _ := r.dc.MeasureString(text)
	return w * r.fontScale()
}

func (r *Raster) FillText(text string, x, y float64) {
	x -= r.align.offset(r.MeasureText(text))
	k := r.fontScale()

	r.dc.Push()
	r.dc.SetColor(r.fill)
	r.dc.ScaleAbout(k, k, x, y)
	r.dc.DrawString(text, x, y)
	r.dc.Pop()
}

// Image returns the backing image.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

func (r *Raster) Encode(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func (*Raster) Extension() string {
	return "png"
}
