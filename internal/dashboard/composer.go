package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akasprzok/cubeplot/internal/charts"
	"github.com/akasprzok/cubeplot/internal/cube"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Values a card keeps when its data is missing or could not be loaded.
const (
	PlaceholderLineTotal  = 125.49
	PlaceholderGaugeTotal = 68.2
)

// DefaultComparisonFactor derives the prior-period series from the current
// one when no real prior data is available.
const DefaultComparisonFactor = 0.9

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	dateLayout,
}

// View is one card shaped for rendering.
type View struct {
	Card       Card
	Total      float64
	Series     charts.Series
	Comparison charts.Series
	Breakdown  charts.Breakdown
	Rows       []cube.Row
	// Demo is set when a table had no rows and shows canned data instead.
	Demo bool
	// Err is the load failure, if any. The other fields then hold placeholders.
	Err error
}

// LineChart returns the view's series as a chart with the default labels.
func (v View) LineChart() charts.LineChart {
	return charts.NewLineChart(v.Series, v.Comparison)
}

// Gauge returns the view's breakdown as a gauge with the needle at fraction.
func (v View) Gauge(fraction float64) charts.Gauge {
	g := charts.NewGauge(v.Breakdown)
	g.NeedleFraction = fraction
	return g
}

// Dashboard is every card of a definition, loaded once.
type Dashboard struct {
	Title string
	Dates DateRange
	Views []View
}

// View looks a card's view up by id.
func (d Dashboard) View(id string) (View, bool) {
	return lo.Find(d.Views, func(v View) bool { return v.Card.ID == id })
}

// Err joins the load failures of all cards.
func (d Dashboard) Err() error {
	return errors.Join(lo.Map(d.Views, func(v View, _ int) error { return v.Err })...)
}

// Composer loads a dashboard definition through a query client.
type Composer struct {
	client           cube.Client
	definition       Definition
	dates            DateRange
	comparisonFactor float64
	logger           zerolog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithDateRange sets the range queried by every card.
func WithDateRange(r DateRange) Option {
	return func(c *Composer) { c.dates = r }
}

// WithComparisonFactor sets the multiplier deriving the comparison series.
func WithComparisonFactor(f float64) Option {
	return func(c *Composer) { c.comparisonFactor = f }
}

// WithLogger sets the logger load failures are reported to.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Composer) { c.logger = l }
}

// NewComposer returns a composer over the February 2025 range with the
// default comparison factor and a disabled logger.
func NewComposer(client cube.Client, def Definition, opts ...Option) *Composer {
	c := &Composer{
		client:           client,
		definition:       def,
		dates:            DefaultDateRange(),
		comparisonFactor: DefaultComparisonFactor,
		logger:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Definition returns the definition the composer loads.
func (c *Composer) Definition() Definition {
	return c.definition
}

// Dates returns the range the composer queries.
func (c *Composer) Dates() DateRange {
	return c.dates
}

// Load issues one request per card. A card that fails keeps its placeholder
// values and records the error; Load itself never fails.
func (c *Composer) Load(ctx context.Context) Dashboard {
	d := Dashboard{Title: c.definition.Title, Dates: c.dates}
	for _, card := range c.definition.Cards {
		d.Views = append(d.Views, c.LoadCard(ctx, card))
	}
	return d
}

// Placeholders returns the dashboard as it looks before anything loads.
func (c *Composer) Placeholders() Dashboard {
	d := Dashboard{Title: c.definition.Title, Dates: c.dates}
	for _, card := range c.definition.Cards {
		d.Views = append(d.Views, c.shape(card, nil))
	}
	return d
}

// LoadCard loads and shapes a single card.
func (c *Composer) LoadCard(ctx context.Context, card Card) View {
	log := c.logger.With().Str("card", card.ID).Str("kind", string(card.Kind)).Logger()

	results, err := c.Query(ctx, card)
	if err != nil {
		log.Warn().Err(err).Msg("loading card failed, keeping placeholders")
		v := c.shape(card, nil)
		v.Err = fmt.Errorf("loading card %s: %w", card.ID, err)
		return v
	}

	log.Debug().Int("rows", lo.SumBy(results, func(r cube.Result) int { return len(r.Data) })).Msg("loaded card")
	return c.shape(card, results)
}

// Query issues the card's queries and returns the raw results, one per query.
func (c *Composer) Query(ctx context.Context, card Card) ([]cube.Result, error) {
	queries := card.Queries(c.dates)
	results, err := c.client.Load(ctx, queries)
	if err != nil {
		return nil, err
	}
	if len(results) != len(queries) {
		return nil, fmt.Errorf("expected %d results, got %d", len(queries), len(results))
	}
	return results, nil
}

// shape turns results into a view. Missing results leave placeholders.
func (c *Composer) shape(card Card, results []cube.Result) View {
	v := View{Card: card}
	switch card.Kind {
	case KindLine:
		v.Total = PlaceholderLineTotal
		if len(results) == 2 {
			if total := firstFloat(results[0].Data, card.Measure()); total != 0 {
				v.Total = total
			}
			v.Series = LineSeries(results[1].Data, card.TimeDimension, card.Measure())
		}
		v.Comparison = v.Series.Scaled(c.comparisonFactor)
	case KindGauge:
		var rows []cube.Row
		if len(results) == 1 {
			rows = results[0].Data
		}
		v.Total = lo.SumBy(rows, func(r cube.Row) float64 { return floatOrZero(r, card.Measure()) })
		if v.Total == 0 {
			v.Total = PlaceholderGaugeTotal
		}
		v.Rows = rows
		v.Breakdown = charts.NewBreakdown(Categories(rows, card), v.Total)
	case KindTable:
		if len(results) == 1 {
			v.Rows = results[0].Data
		}
		if len(v.Rows) == 0 {
			v.Rows = DemoRows(card)
			v.Demo = true
		}
	}
	return v
}

// LineSeries reads one point per row: the day of month of the time member
// and the measure value. Rows whose timestamp cannot be parsed are numbered
// by position.
func LineSeries(rows []cube.Row, timeMember, measure string) charts.Series {
	return lo.Map(rows, func(r cube.Row, i int) charts.Point {
		ordinal := i + 1
		if t, ok := parseTimestamp(r.String(timeMember)); ok {
			ordinal = t.Day()
		} else if t, ok := parseTimestamp(r.String(timeMember + ".day")); ok {
			ordinal = t.Day()
		}
		return charts.Point{Ordinal: ordinal, Value: floatOrZero(r, measure)}
	})
}

// Categories reads the gauge categories in row order.
func Categories(rows []cube.Row, card Card) []charts.Category {
	return lo.Map(rows, func(r cube.Row, _ int) charts.Category {
		c := charts.Category{
			Label: r.String(card.Dimensions[0]),
			Value: floatOrZero(r, card.Measure()),
		}
		if card.ChangeField != "" {
			c.Change = floatOrZero(r, card.ChangeField)
		}
		return c
	})
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func firstFloat(rows []cube.Row, member string) float64 {
	if len(rows) == 0 {
		return 0
	}
	return floatOrZero(rows[0], member)
}

func floatOrZero(r cube.Row, member string) float64 {
	f, _ := r.Float(member)
	return f
}
