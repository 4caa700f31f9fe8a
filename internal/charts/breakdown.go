package charts

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
)

// OthersLabel names the bucket holding everything past the top entries.
const OthersLabel = "Others"

// Category is one labelled value fed into a breakdown. Change is the
// period-over-period delta in percent.
type Category struct {
	Label  string
	Value  float64
	Change float64
}

// BreakdownEntry is a category with its share of the total and display color.
type BreakdownEntry struct {
	Label   string
	Value   float64
	Percent int
	Color   string
	Change  float64
}

// PercentLabel renders the share as "N%".
func (e BreakdownEntry) PercentLabel() string {
	return fmt.Sprintf("%d%%", e.Percent)
}

// Breakdown is a top-N ranking plus an Others bucket.
type Breakdown struct {
	Total   float64
	Entries []BreakdownEntry
	Others  BreakdownEntry
}

// All returns the named entries followed by Others.
func (b Breakdown) All() []BreakdownEntry {
	return append(slices.Clone(b.Entries), b.Others)
}

// NewBreakdown takes the first TopN categories in the order given and folds the
// rest into Others, whose value is total minus the named values. A total that
// is not positive gives every entry 0%.
func NewBreakdown(categories []Category, total float64) Breakdown {
	top := categories
	if len(top) > TopN {
		top = top[:TopN]
	}

	b := Breakdown{Total: total}
	for i, c := range top {
		b.Entries = append(b.Entries, BreakdownEntry{
			Label:  c.Label,
			Value:  c.Value,
			Color:  BreakdownColor(i),
			Change: c.Change,
		})
	}
	named := lo.SumBy(top, func(c Category) float64 { return c.Value })
	b.Others = BreakdownEntry{Label: OthersLabel, Value: total - named, Color: OthersHex}

	percents := percentages(lo.Map(b.All(), func(e BreakdownEntry, _ int) float64 { return e.Value }), total)
	for i := range b.Entries {
		b.Entries[i].Percent = percents[i]
	}
	b.Others.Percent = percents[len(percents)-1]
	return b
}

// percentages converts values to whole percentages of total, each rounded to
// the nearest integer on its own. The results may sum to 99 or 101.
func percentages(values []float64, total float64) []int {
	out := make([]int, len(values))
	if !(total > 0) || math.IsInf(total, 0) {
		return out
	}
	for i, v := range values {
		exact := v / total * 100
		if math.IsNaN(exact) || math.IsInf(exact, 0) {
			return make([]int, len(values))
		}
		out[i] = int(math.Round(exact))
	}
	return out
}
