package commands

import (
	"fmt"
	"time"

	"github.com/akasprzok/cubeplot/internal/prometheus"
)

type PromQLCmd struct {
	Card string `arg:"" name:"card" help:"Card to translate." required:"true"`
}

func (p *PromQLCmd) Run(ctx *Context) error {
	card, err := ctx.card(p.Card)
	if err != nil {
		return err
	}
	dates, err := ctx.Dates()
	if err != nil {
		return err
	}

	for i, q := range card.Queries(dates) {
		translations, err := prometheus.Translate(q, time.Now())
		if err != nil {
			return fmt.Errorf("translating query %d: %w", i+1, err)
		}
		for _, t := range translations {
			kind := "instant"
			if t.Ranged {
				kind = fmt.Sprintf("range %s..%s step %s", t.Start.Format(time.DateOnly), t.End.Format(time.DateOnly), t.Step)
			}
			fmt.Fprintf(ctx.Out, "# %s (%s)\n%s\n", t.Measure, kind, prometheus.FormatQuery(t.PromQL))
		}
	}
	return nil
}
