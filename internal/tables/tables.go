package tables

import (
	"fmt"
	"strings"

	"github.com/akasprzok/cubeplot/internal/cube"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	teatable "github.com/evertras/bubble-table/table"
)

// PageSize is the number of rows shown per page.
const PageSize = 10

// Model is a filterable, paged terminal table of card rows.
type Model struct {
	table           teatable.Model
	filterTextInput textinput.Model
	totals          string
}

// NewModel builds a table model for the given columns and rows.
func NewModel(cols []Column, rows []cube.Row) Model {
	columns := make([]teatable.Column, 0, len(cols))
	for _, c := range cols {
		columns = append(columns, teatable.NewColumn(c.Member, c.Header, max(c.Width, len(c.Header)+1)).WithFiltered(true))
	}

	tableRows := make([]teatable.Row, 0, len(rows))
	for _, r := range rows {
		data := teatable.RowData{}
		for _, c := range cols {
			data[c.Member] = c.Cell(r)
		}
		tableRows = append(tableRows, teatable.NewRow(data))
	}

	m := Model{
		table: teatable.
			New(columns).
			Filtered(true).
			Focused(true).
			WithFooterVisibility(true).
			WithPageSize(PageSize).
			WithRows(tableRows),
		filterTextInput: textinput.New(),
		totals:          totalsLine(cols, rows),
	}
	return m.withFooter()
}

// totalsLine lists the summed columns' totals as "Header value" pairs.
func totalsLine(cols []Column, rows []cube.Row) string {
	totals := Totals(cols, rows)
	parts := []string{TotalLabel}
	for i, c := range cols {
		if c.Summed {
			parts = append(parts, c.Header+" "+totals[i])
		}
	}
	return strings.Join(parts, "  ")
}

// Footer is the text shown below the rows: the totals, then the current
// page when there is more than one.
func (m Model) Footer() string {
	footer := m.totals
	if pages := m.table.MaxPages(); pages > 1 {
		footer += fmt.Sprintf("  %d/%d", m.table.CurrentPage(), pages)
	}
	return footer
}

func (m Model) withFooter() Model {
	m.table = m.table.WithStaticFooter(m.Footer())
	return m
}

// Filtering reports whether the filter input has focus and owns key presses.
func (m Model) Filtering() bool {
	return m.filterTextInput.Focused()
}

// RowCount is the number of rows passing the current filter.
func (m Model) RowCount() int {
	return len(m.table.GetVisibleRows())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// event to filter
		if m.filterTextInput.Focused() {
			switch msg.String() {
			case "enter":
				m.filterTextInput.Blur()
			case "esc":
				m.filterTextInput.Reset()
				m.filterTextInput.Blur()
			default:
				m.filterTextInput, _ = m.filterTextInput.Update(msg)
			}
			m.table = m.table.WithFilterInput(m.filterTextInput)

			return m, tea.Batch(cmds...)
		}

		switch msg.String() {
		case "/":
			m.filterTextInput.Focus()
		default:
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m.withFooter(), tea.Batch(cmds...)
}

func (m Model) View() string {
	body := strings.Builder{}

	body.WriteString(m.table.View())
	if m.filterTextInput.Focused() {
		body.WriteString("\nFilter: " + m.filterTextInput.Value())
	} else {
		body.WriteString("\nPress / + letters to start filtering")
	}

	return body.String()
}
