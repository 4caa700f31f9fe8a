package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akasprzok/cubeplot/internal/cube"
	"github.com/akasprzok/cubeplot/internal/dashboard"
	"github.com/akasprzok/cubeplot/internal/tables"
	"gopkg.in/yaml.v2"
)

type QueryCmd struct {
	Card   string `arg:"" name:"card" help:"Card to query." required:"true"`
	Output string `name:"output" short:"o" help:"Output format." default:"table" enum:"table,json,yaml"`
}

func (q *QueryCmd) Run(ctx *Context) error {
	card, err := ctx.card(q.Card)
	if err != nil {
		return err
	}
	composer, err := ctx.Composer()
	if err != nil {
		return err
	}
	results, err := composer.Query(context.Background(), card)
	if err != nil {
		return err
	}

	rows := lastRows(results)
	if len(rows) == 0 {
		fmt.Fprintln(ctx.Out, "No Data")
		return nil
	}

	switch q.Output {
	case "json":
		out, err := toJSON(rows)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.Out, string(out))
	case "yaml":
		out, err := toYAML(rows)
		if err != nil {
			return err
		}
		fmt.Fprint(ctx.Out, string(out))
	default:
		tables.WriteText(ctx.Out, queryColumns(card, rows), rows)
	}
	return nil
}

// lastRows picks the most detailed result: the daily series for line cards.
func lastRows(results []cube.Result) []cube.Row {
	if len(results) == 0 {
		return nil
	}
	return results[len(results)-1].Data
}

func queryColumns(card dashboard.Card, rows []cube.Row) []tables.Column {
	if card.Kind == dashboard.KindTable {
		return tables.Columns(card)
	}
	members := card.Columns()
	if card.TimeDimension != "" {
		members = append([]string{card.TimeDimension}, members...)
	}
	if card.ChangeField != "" {
		if _, ok := rows[0][card.ChangeField]; ok {
			members = append(members, card.ChangeField)
		}
	}
	return tables.Columns(dashboard.Card{ID: card.ID, Kind: dashboard.KindTable, Measures: members})
}

func massageRows(rows []cube.Row) []map[string]interface{} {
	data := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		m := make(map[string]interface{}, len(r))
		for k, v := range r {
			if n, ok := v.(json.Number); ok {
				if f, err := n.Float64(); err == nil {
					m[k] = f
					continue
				}
			}
			m[k] = v
		}
		data = append(data, m)
	}
	return data
}

func toJSON(rows []cube.Row) ([]byte, error) {
	return json.MarshalIndent(massageRows(rows), "", "  ")
}

func toYAML(rows []cube.Row) ([]byte, error) {
	return yaml.Marshal(massageRows(rows))
}
