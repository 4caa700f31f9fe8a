package dashboard

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/akasprzok/cubeplot/internal/cube"
)

// Demo data parameters.
const (
	DemoTotal       = 125490
	DemoSalesBase   = 5000
	DemoQtyBase     = 100
	DemoTrend       = 0.05
	DemoNoise       = 0.2
	DefaultDemoSeed = 1
)

// DemoCity is one canned top-cities row.
type DemoCity struct {
	Name   string
	Sales  float64
	Change float64
}

// DemoCities are the canned top-cities rows. Others is a real row here, as
// the upstream service reports it.
var DemoCities = []DemoCity{
	{Name: "New Delhi", Sales: 2650000000, Change: 1.8},
	{Name: "Mumbai", Sales: 164000000, Change: -3.3},
	{Name: "West Bengal", Sales: 122000000, Change: 2.2},
	{Name: "Others", Sales: 2430000000},
}

type demoItem struct {
	name         string
	sales        float64
	qty          float64
	drr7         string
	drr14        string
	drr30        string
	inventory    float64
	availability string
	rank         float64
}

var demoSKUs = []demoItem{
	{"Protein Bar 100g", 93132.12, 12303, "2.4%", "3.1%", "4.2%", 931.9, "1.68%", 3.2},
	{"Choco Bar 100g", 8526.32, 2960, "1.8%", "2.3%", "3.5%", 328, "3.28%", 4},
	{"Energy Drink 250ml", 9313, 1931.9, "1.2%", "1.8%", "2.7%", 931.9, "1.68%", 11},
	{"Organic Oats 500g", 0, 0, "0%", "0%", "0%", 0, "0", 0},
}

var demoCityItems = []demoItem{
	{"Delhi", 93132.12, 12303, "2.4%", "3.1%", "4.2%", 931.9, "1.68%", 3.2},
	{"Bengaluru", 8526.32, 2960, "1.8%", "2.3%", "3.5%", 328, "3.28%", 4},
	{"Mumbai", 9313, 1931.9, "1.2%", "1.8%", "2.7%", 931.9, "1.68%", 11},
	{"Hyderabad", 0, 0, "0%", "0%", "0%", 0, "0", 0},
}

// NewDemoClient answers every query the definition issues over dates with
// canned data. The same seed always yields the same series.
func NewDemoClient(def Definition, dates DateRange, seed uint64) *cube.StaticClient {
	client := cube.NewStaticClient()
	rng := rand.New(rand.NewPCG(seed, seed))
	for _, card := range def.Cards {
		queries := card.Queries(dates)
		switch card.Kind {
		case KindLine:
			client.Register(queries[0], cube.Result{Data: []cube.Row{{card.Measure(): float64(DemoTotal)}}})
			client.Register(queries[1], cube.Result{Data: demoSeries(card, dates, rng)})
		case KindGauge:
			client.Register(queries[0], cube.Result{Data: demoCityRows(card)})
		case KindTable:
			client.Register(queries[0], cube.Result{Data: DemoRows(card)})
		}
	}
	return client
}

func demoSeries(card Card, dates DateRange, rng *rand.Rand) []cube.Row {
	base := float64(DemoQtyBase)
	if card.Currency() {
		base = DemoSalesBase
	}
	days := dates.Days()
	rows := make([]cube.Row, 0, days)
	for i := range days {
		day := dates.From.AddDate(0, 0, i)
		rows = append(rows, cube.Row{
			card.TimeDimension: day.Format(time.RFC3339),
			card.Measure():     base + float64(i)*base*DemoTrend + rng.Float64()*base*DemoNoise,
		})
	}
	return rows
}

func demoCityRows(card Card) []cube.Row {
	rows := make([]cube.Row, 0, len(DemoCities))
	for _, c := range DemoCities {
		row := cube.Row{
			card.Dimensions[0]: c.Name,
			card.Measure():     c.Sales,
		}
		if card.ChangeField != "" {
			row[card.ChangeField] = c.Change
		}
		rows = append(rows, row)
	}
	return rows
}

// DemoRows returns the canned rows for a table card: cities for city cards,
// SKUs otherwise.
func DemoRows(card Card) []cube.Row {
	ds := card.Dataset()
	items, prefix := demoSKUs, "SKU"
	if card.Entity == EntityCity {
		items, prefix = demoCityItems, "CITY"
	}
	rows := make([]cube.Row, 0, len(items))
	for i, it := range items {
		rows = append(rows, cube.Row{
			cube.Field(ds, "id"):                               fmt.Sprintf("%s%03d", prefix, i+1),
			cube.Field(ds, "name"):                             it.name,
			cube.Field(ds, "sales_mrp_sum"):                    it.sales,
			cube.Field(ds, "qty_sold"):                         it.qty,
			cube.Field(ds, "drr_7"):                            it.drr7,
			cube.Field(ds, "drr_14"):                           it.drr14,
			cube.Field(ds, "drr_30"):                           it.drr30,
			cube.Field(ds, "days_of_inventory_14"):             it.inventory,
			cube.Field(StreamDataset, "on_shelf_availability"): it.availability,
			cube.Field(StreamDataset, "rank_avg"):              it.rank,
		})
	}
	return rows
}
