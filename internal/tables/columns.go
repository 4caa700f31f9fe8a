// Package tables lays out table cards as columns of formatted cells and
// renders them to the terminal, to text and to workbooks.
package tables

import (
	"github.com/akasprzok/cubeplot/internal/cube"
	"github.com/akasprzok/cubeplot/internal/dashboard"
	"github.com/samber/lo"
)

// Column is one displayed member of a table card.
type Column struct {
	Member string
	Header string
	Width  int
	// Summed columns get a total in the footer row.
	Summed bool
	label  bool
	format func(cube.Row, string) string
}

// Cell formats the column's member of row for display.
func (c Column) Cell(row cube.Row) string {
	if c.format == nil {
		return row.String(c.Member)
	}
	return c.format(row, c.Member)
}

// Value returns the raw cell value for export: a number when the member is
// numeric, the text otherwise.
func (c Column) Value(row cube.Row) any {
	if f, ok := row.Float(c.Member); ok {
		if _, isText := row[c.Member].(string); !isText {
			return f
		}
	}
	return row.String(c.Member)
}

type columnSpec struct {
	header string
	width  int
	summed bool
	format func(cube.Row, string) string
}

var columnSpecs = map[string]columnSpec{
	"id":                    {header: "ID", width: 9},
	"sales_mrp_sum":         {header: "Sales", width: 13, summed: true, format: currencyCell},
	"qty_sold":              {header: "Quantity", width: 11, summed: true, format: numberCell},
	"drr_7":                 {header: "DRR 7", width: 7},
	"drr_14":                {header: "DRR 14", width: 7},
	"drr_30":                {header: "DRR 30", width: 7},
	"days_of_inventory_14":  {header: "Days of inventory", width: 18, summed: true, format: numberCell},
	"on_shelf_availability": {header: "On-shelf availability", width: 22},
	"rank_avg":              {header: "Average rank", width: 13, format: numberCell},
}

// Columns returns the columns of a table card in display order.
func Columns(card dashboard.Card) []Column {
	return lo.Map(card.Columns(), func(member string, _ int) Column {
		_, field := cube.SplitField(member)
		if field == "name" {
			return Column{Member: member, Header: nameHeader(card), Width: 22, label: true}
		}
		cs, ok := columnSpecs[field]
		if !ok {
			return Column{Member: member, Header: field, Width: max(len(field)+1, 8)}
		}
		return Column{Member: member, Header: cs.header, Width: cs.width, Summed: cs.summed, format: cs.format}
	})
}

func nameHeader(card dashboard.Card) string {
	switch card.Entity {
	case dashboard.EntityCity:
		return "City Name"
	case dashboard.EntitySKU:
		return "SKU Name"
	default:
		return "Name"
	}
}

// Headers returns the column headers.
func Headers(cols []Column) []string {
	return lo.Map(cols, func(c Column, _ int) string { return c.Header })
}

// Cells formats every row into display strings, one slice per row.
func Cells(cols []Column, rows []cube.Row) [][]string {
	return lo.Map(rows, func(r cube.Row, _ int) []string {
		return lo.Map(cols, func(c Column, _ int) string { return c.Cell(r) })
	})
}

func currencyCell(r cube.Row, member string) string {
	f, ok := r.Float(member)
	if !ok {
		return dashboard.FormatTableCurrency(0)
	}
	return dashboard.FormatTableCurrency(f)
}

func numberCell(r cube.Row, member string) string {
	f, ok := r.Float(member)
	if !ok {
		return r.String(member)
	}
	return dashboard.FormatNumber(f)
}

// TotalLabel names the footer row.
const TotalLabel = "Total"

// sums adds up the summed columns over rows. Cells that are not numbers
// count as zero.
func sums(cols []Column, rows []cube.Row) []float64 {
	out := make([]float64, len(cols))
	for i, c := range cols {
		if !c.Summed {
			continue
		}
		out[i] = lo.SumBy(rows, func(r cube.Row) float64 {
			f, _ := r.Float(c.Member)
			return f
		})
	}
	return out
}

// labelColumn is the column that carries TotalLabel: the name column, else
// the first column that is not summed. It is -1 when every column is summed.
func labelColumn(cols []Column) int {
	if _, i, ok := lo.FindIndexOf(cols, func(c Column) bool { return c.label }); ok {
		return i
	}
	_, i, _ := lo.FindIndexOf(cols, func(c Column) bool { return !c.Summed })
	return i
}

// Totals formats the footer row: summed columns totalled and formatted like
// their cells, TotalLabel in the label column, blanks elsewhere.
func Totals(cols []Column, rows []cube.Row) []string {
	totals := sums(cols, rows)
	label := labelColumn(cols)
	out := make([]string, len(cols))
	for i, c := range cols {
		switch {
		case c.Summed:
			out[i] = c.Cell(cube.Row{c.Member: totals[i]})
		case i == label:
			out[i] = TotalLabel
		}
	}
	return out
}

// TotalValues is Totals with raw numbers for export. Blank cells are nil.
func TotalValues(cols []Column, rows []cube.Row) []any {
	totals := sums(cols, rows)
	label := labelColumn(cols)
	out := make([]any, len(cols))
	for i, c := range cols {
		switch {
		case c.Summed:
			out[i] = totals[i]
		case i == label:
			out[i] = TotalLabel
		}
	}
	return out
}
