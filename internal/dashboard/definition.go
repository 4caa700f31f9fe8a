// Package dashboard turns card definitions into queries and shapes the query
// results into view models the chart renderers and tables consume.
package dashboard

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/akasprzok/cubeplot/internal/cube"
	"gopkg.in/yaml.v2"
)

// CardKind selects how a card is queried and shaped.
type CardKind string

const (
	KindLine  CardKind = "line"
	KindGauge CardKind = "gauge"
	KindTable CardKind = "table"
)

// Unit says how a card's primary measure is displayed.
type Unit string

const (
	UnitCount    Unit = "count"
	UnitCurrency Unit = "currency"
)

// Entity is what each row of a table card describes.
type Entity string

const (
	EntityOther Entity = ""
	EntitySKU   Entity = "sku"
	EntityCity  Entity = "city"
)

// Card describes one dashboard card. Members are fully qualified
// ("<dataset>.<field>"). Line cards chart Measures[0] over TimeDimension;
// gauge cards rank Dimensions[0] by Measures[0]; table cards list Dimensions
// then Measures as columns.
type Card struct {
	ID            string   `yaml:"id" json:"id"`
	Title         string   `yaml:"title" json:"title"`
	Kind          CardKind `yaml:"kind" json:"kind"`
	Measures      []string `yaml:"measures" json:"measures"`
	Dimensions    []string `yaml:"dimensions,omitempty" json:"dimensions,omitempty"`
	TimeDimension string   `yaml:"time_dimension,omitempty" json:"time_dimension,omitempty"`
	// ChangeField optionally carries a per-row period-over-period delta for gauges.
	ChangeField string `yaml:"change_field,omitempty" json:"change_field,omitempty"`
	// Unit defaults to count.
	Unit   Unit   `yaml:"unit,omitempty" json:"unit,omitempty"`
	Entity Entity `yaml:"entity,omitempty" json:"entity,omitempty"`
}

// Currency reports whether the card's primary measure is money.
func (c Card) Currency() bool {
	return c.Unit == UnitCurrency
}

// Measure returns the card's primary measure.
func (c Card) Measure() string {
	if len(c.Measures) == 0 {
		return ""
	}
	return c.Measures[0]
}

// Dataset returns the dataset of the card's primary member.
func (c Card) Dataset() string {
	member := c.Measure()
	if len(c.Dimensions) > 0 {
		member = c.Dimensions[0]
	}
	ds, _ := cube.SplitField(member)
	return ds
}

// Columns returns the members a table card displays, in order.
func (c Card) Columns() []string {
	cols := make([]string, 0, len(c.Dimensions)+len(c.Measures))
	cols = append(cols, c.Dimensions...)
	return append(cols, c.Measures...)
}

// Queries builds the card's queries for a date range. Line cards issue a
// total query followed by a daily series query.
func (c Card) Queries(dates DateRange) []cube.Query {
	switch c.Kind {
	case KindLine:
		total := cube.Query{
			Measures: []string{c.Measure()},
			TimeDimensions: []cube.TimeDimension{{
				Dimension: c.TimeDimension,
				DateRange: dates.Strings(),
			}},
		}
		series := cube.Query{
			Measures: []string{c.Measure()},
			TimeDimensions: []cube.TimeDimension{{
				Dimension:   c.TimeDimension,
				Granularity: cube.GranularityDay,
				DateRange:   dates.Strings(),
			}},
		}
		return []cube.Query{total, series}
	case KindGauge:
		return []cube.Query{{
			Measures:   c.Measures,
			Dimensions: c.Dimensions,
			Order:      []cube.Order{{Member: c.Measure(), Direction: cube.Desc}},
		}}
	default:
		return []cube.Query{{
			Measures:   c.Measures,
			Dimensions: c.Dimensions,
		}}
	}
}

// Validate reports the first structural problem with the card.
func (c Card) Validate() error {
	if c.ID == "" {
		return errors.New("card has no id")
	}
	if len(c.Measures) == 0 {
		return fmt.Errorf("card %q has no measures", c.ID)
	}
	switch c.Kind {
	case KindLine:
		if c.TimeDimension == "" {
			return fmt.Errorf("line card %q has no time dimension", c.ID)
		}
	case KindGauge:
		if len(c.Dimensions) == 0 {
			return fmt.Errorf("gauge card %q has no dimension", c.ID)
		}
	case KindTable:
	default:
		return fmt.Errorf("card %q has unknown kind %q", c.ID, c.Kind)
	}
	switch c.Unit {
	case "", UnitCount, UnitCurrency:
	default:
		return fmt.Errorf("card %q has unknown unit %q", c.ID, c.Unit)
	}
	switch c.Entity {
	case EntityOther, EntitySKU, EntityCity:
	default:
		return fmt.Errorf("card %q has unknown entity %q", c.ID, c.Entity)
	}
	return nil
}

// Definition is an ordered set of cards.
type Definition struct {
	Title string `yaml:"title" json:"title"`
	Cards []Card `yaml:"cards" json:"cards"`
}

// Card looks a card up by id.
func (d Definition) Card(id string) (Card, bool) {
	for _, c := range d.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// CardsOf returns the cards of one kind, in definition order.
func (d Definition) CardsOf(kind CardKind) []Card {
	var out []Card
	for _, c := range d.Cards {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Validate checks every card and rejects duplicate ids.
func (d Definition) Validate() error {
	seen := make(map[string]bool, len(d.Cards))
	for _, c := range d.Cards {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate card id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// LoadDefinition reads a YAML dashboard definition.
func LoadDefinition(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("reading dashboard: %w", err)
	}
	return ParseDefinition(data)
}

// ParseDefinition decodes and validates a YAML dashboard definition.
func ParseDefinition(data []byte) (Definition, error) {
	var d Definition
	if err := yaml.UnmarshalStrict(data, &d); err != nil {
		return Definition{}, fmt.Errorf("parsing dashboard: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Definition{}, fmt.Errorf("invalid dashboard: %w", err)
	}
	return d, nil
}

// Datasets and card ids of the built-in quick-commerce dashboard.
const (
	SKUDataset    = "blinkit_insights_sku"
	CityDataset   = "blinkit_insights_city"
	StreamDataset = "blinkit_scraping_stream"

	SalesCardID     = "sales"
	QuantityCardID  = "quantity"
	TopCitiesCardID = "top-cities"
	SKUTableCardID  = "skus"
	CityTableCardID = "cities"
)

func tableMeasures(dataset string) []string {
	return []string{
		cube.Field(dataset, "sales_mrp_sum"),
		cube.Field(dataset, "qty_sold"),
		cube.Field(dataset, "drr_7"),
		cube.Field(dataset, "drr_14"),
		cube.Field(dataset, "drr_30"),
		cube.Field(dataset, "days_of_inventory_14"),
		cube.Field(StreamDataset, "on_shelf_availability"),
		cube.Field(StreamDataset, "rank_avg"),
	}
}

// DefaultDefinition is the quick-commerce dashboard: two line cards, the top
// cities gauge and the SKU and city tables.
func DefaultDefinition() Definition {
	return Definition{
		Title: "Quick Commerce",
		Cards: []Card{
			{
				ID:            SalesCardID,
				Title:         "Sales (MRP)",
				Kind:          KindLine,
				Measures:      []string{cube.Field(SKUDataset, "sales_mrp_sum")},
				TimeDimension: cube.Field(SKUDataset, "created_at"),
				Unit:          UnitCurrency,
			},
			{
				ID:            QuantityCardID,
				Title:         "Total Quantity Sold",
				Kind:          KindLine,
				Measures:      []string{cube.Field(SKUDataset, "qty_sold")},
				TimeDimension: cube.Field(SKUDataset, "created_at"),
				Unit:          UnitCount,
			},
			{
				ID:          TopCitiesCardID,
				Title:       "Top Cities",
				Kind:        KindGauge,
				Measures:    []string{cube.Field(CityDataset, "sales_mrp_sum")},
				Dimensions:  []string{cube.Field(CityDataset, "name")},
				ChangeField: cube.Field(CityDataset, "change"),
				Unit:        UnitCurrency,
			},
			{
				ID:         SKUTableCardID,
				Title:      "SKU level data",
				Kind:       KindTable,
				Measures:   tableMeasures(SKUDataset),
				Dimensions: []string{cube.Field(SKUDataset, "id"), cube.Field(SKUDataset, "name")},
				Unit:       UnitCurrency,
				Entity:     EntitySKU,
			},
			{
				ID:         CityTableCardID,
				Title:      "City level data",
				Kind:       KindTable,
				Measures:   tableMeasures(CityDataset),
				Dimensions: []string{cube.Field(CityDataset, "id"), cube.Field(CityDataset, "name")},
				Unit:       UnitCurrency,
				Entity:     EntityCity,
			},
		},
	}
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

const dateLayout = "2006-01-02"

// DefaultDateRange is February 2025.
func DefaultDateRange() DateRange {
	return DateRange{
		From: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
	}
}

// ParseDateRange parses "YYYY-MM-DD" bounds.
func ParseDateRange(from, to string) (DateRange, error) {
	f, err := time.Parse(dateLayout, from)
	if err != nil {
		return DateRange{}, fmt.Errorf("parsing from date: %w", err)
	}
	t, err := time.Parse(dateLayout, to)
	if err != nil {
		return DateRange{}, fmt.Errorf("parsing to date: %w", err)
	}
	if t.Before(f) {
		return DateRange{}, fmt.Errorf("date range ends %s before it starts %s", to, from)
	}
	return DateRange{From: f, To: t}, nil
}

// Strings formats the range as the [from, to] pair the query service expects.
func (r DateRange) Strings() []string {
	return []string{r.From.Format(dateLayout), r.To.Format(dateLayout)}
}

// Days is the number of calendar days in the range.
func (r DateRange) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

func (r DateRange) String() string {
	return r.From.Format("Jan 02, 2006") + " - " + r.To.Format("Jan 02, 2006")
}
