package tables

import (
	"io"

	"github.com/akasprzok/cubeplot/internal/cube"
	"github.com/olekukonko/tablewriter"
)

// WriteText renders rows as a plain text table with a totals footer.
func WriteText(w io.Writer, cols []Column, rows []cube.Row) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(Headers(cols))
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment(alignments(cols))
	table.AppendBulk(Cells(cols, rows))
	table.SetFooter(Totals(cols, rows))
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)
	table.Render()
}

func alignments(cols []Column) []int {
	out := make([]int, len(cols))
	for i, c := range cols {
		if c.format != nil {
			out[i] = tablewriter.ALIGN_RIGHT
		} else {
			out[i] = tablewriter.ALIGN_LEFT
		}
	}
	return out
}
