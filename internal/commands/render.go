package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/akasprzok/cubeplot/internal/canvas"
	"github.com/akasprzok/cubeplot/internal/charts"
	"github.com/akasprzok/cubeplot/internal/dashboard"
	"github.com/samber/lo"
)

type RenderCmd struct {
	Dir              string   `arg:"" optional:"" name:"dir" help:"Directory to write the charts to." default:"." type:"path"`
	Format           string   `name:"format" short:"f" help:"Image format." default:"png" enum:"png,svg"`
	Width            float64  `help:"Logical chart width in pixels." default:"600"`
	Height           float64  `help:"Logical line chart height in pixels." default:"250"`
	Ratio            float64  `help:"Device pixel ratio." default:"2"`
	ComparisonFactor float64  `name:"comparison-factor" help:"Multiplier deriving the comparison series from the current one." default:"0.9"`
	Needle           float64  `help:"Gauge needle position along the sweep, 0 to 1." default:"0.6"`
	Trace            bool     `help:"Print the recorded drawing commands instead of writing images."`
	Cards            []string `name:"card" short:"c" help:"Only render these cards."`
}

// drawing is one chart card ready to paint.
type drawing struct {
	card   dashboard.Card
	drawer charts.Drawer
	height float64
}

func (r *RenderCmd) Run(ctx *Context) error {
	if r.Ratio <= 0 {
		return fmt.Errorf("ratio must be positive, got %v", r.Ratio)
	}
	composer, err := ctx.Composer(dashboard.WithComparisonFactor(r.ComparisonFactor))
	if err != nil {
		return err
	}
	d := composer.Load(context.Background())

	drawings := r.drawings(d)
	if len(drawings) == 0 {
		return fmt.Errorf("no chart cards to render")
	}

	if r.Trace {
		return r.trace(ctx, drawings)
	}

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, dr := range drawings {
		path, err := r.write(dr)
		if err != nil {
			return err
		}
		ctx.Logger.Info().Str("card", dr.card.ID).Str("path", path).Msg("rendered chart")
		fmt.Fprintln(ctx.Out, path)
	}
	return nil
}

func (r *RenderCmd) drawings(d dashboard.Dashboard) []drawing {
	var out []drawing
	for _, v := range d.Views {
		if len(r.Cards) > 0 && !lo.Contains(r.Cards, v.Card.ID) {
			continue
		}
		switch v.Card.Kind {
		case dashboard.KindLine:
			out = append(out, drawing{card: v.Card, drawer: v.LineChart(), height: r.Height})
		case dashboard.KindGauge:
			out = append(out, drawing{card: v.Card, drawer: v.Gauge(r.Needle), height: charts.GaugeHeight})
		}
	}
	return out
}

func (r *RenderCmd) write(dr drawing) (string, error) {
	surface := canvas.New(r.Format, canvas.HexColor(ChartBackground))
	dr.drawer.Draw(surface, r.Width, dr.height, r.Ratio)

	path := filepath.Join(r.Dir, dr.card.ID+"."+surface.Extension())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := encodeAndClose(f, surface, path); err != nil {
		return "", err
	}
	return path, nil
}

// encodeAndClose writes enc to w and closes it. A failed close means the
// file may be incomplete, so it is reported like a failed encode.
func encodeAndClose(w io.WriteCloser, enc canvas.Encoder, name string) error {
	if err := enc.Encode(w); err != nil {
		_ = w.Close()
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	return nil
}

func (r *RenderCmd) trace(ctx *Context, drawings []drawing) error {
	for _, dr := range drawings {
		rec := canvas.NewRecorder()
		dr.drawer.Draw(rec, r.Width, dr.height, r.Ratio)
		fmt.Fprintf(ctx.Out, "# %s\n", dr.card.ID)
		if err := rec.Encode(ctx.Out); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	return nil
}
