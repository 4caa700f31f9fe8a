package commands

import (
	"context"
	"fmt"

	"github.com/akasprzok/cubeplot/internal/dashboard"
	"github.com/akasprzok/cubeplot/internal/tables"
)

type ExportCmd struct {
	File string `arg:"" name:"file" help:"Workbook to write." default:"dashboard.xlsx" type:"path"`
}

func (e *ExportCmd) Run(ctx *Context) error {
	composer, err := ctx.Composer()
	if err != nil {
		return err
	}
	d := composer.Load(context.Background())

	var sheets []tables.Sheet
	for _, v := range d.Views {
		if v.Card.Kind != dashboard.KindTable {
			continue
		}
		if v.Demo {
			ctx.Logger.Warn().Str("card", v.Card.ID).Msg("no rows returned, exporting demo rows")
		}
		sheets = append(sheets, tables.Sheet{
			Name:    v.Card.Title,
			Columns: tables.Columns(v.Card),
			Rows:    v.Rows,
		})
	}
	if len(sheets) == 0 {
		return fmt.Errorf("dashboard has no table cards")
	}

	if err := tables.Export(e.File, sheets); err != nil {
		return err
	}
	ctx.Logger.Info().Str("path", e.File).Int("sheets", len(sheets)).Msg("exported tables")
	fmt.Fprintln(ctx.Out, e.File)
	return nil
}
