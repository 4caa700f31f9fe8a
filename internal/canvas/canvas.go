// Package canvas defines the immediate-mode 2D drawing contract the chart
// renderers paint against, plus raster, vector and recording backends.
package canvas

import (
	"image/color"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// TextAlign controls where FillText anchors a string relative to x.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

func (a TextAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// offset returns how far left of x a string of the given width starts.
func (a TextAlign) offset(width float64) float64 {
	switch a {
	case AlignCenter:
		return width / 2
	case AlignRight:
		return width
	default:
		return 0
	}
}

// Context is a 2D immediate-mode drawing context. All coordinates are logical
// pixels; Resize installs the device pixel ratio as a uniform scale.
//
// Stroke and Fill consume the current path.
type Context interface {
	// Resize clears the surface and reallocates it at width*ratio by height*ratio.
	Resize(width, height, ratio float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a clockwise arc from startAngle to endAngle (radians, y down).
	Arc(x, y, radius, startAngle, endAngle float64)
	Stroke()
	Fill()

	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(width float64)
	// SetLineDash sets the dash pattern; no arguments means a solid line.
	SetLineDash(pattern ...float64)

	SetFontSize(size float64)
	SetTextAlign(align TextAlign)
	MeasureText(text string) float64
	// FillText draws text with its baseline at y using the fill color.
	FillText(text string, x, y float64)
}

// Encoder is implemented by contexts that can serialise what was drawn.
type Encoder interface {
	Encode(w io.Writer) error
	// Extension is the file extension of the encoded output, without a dot.
	Extension() string
}

// Surface is a Context that can also be written out.
type Surface interface {
	Context
	Encoder
}

// HexColor parses "#rrggbb" (or "rrggbb") into a color.
func HexColor(hex string) color.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// New returns a surface for the given output format ("png" or "svg").
// Unknown formats fall back to png.
func New(format string, background color.Color) Surface {
	switch format {
	case "svg":
		return NewVector(background)
	default:
		return NewRaster(background)
	}
}
