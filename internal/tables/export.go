package tables

import (
	"fmt"

	"github.com/akasprzok/cubeplot/internal/cube"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the longest sheet name a workbook accepts.
const maxSheetName = 31

// Sheet is one table written to a workbook.
type Sheet struct {
	Name    string
	Columns []Column
	Rows    []cube.Row
}

// Export writes one sheet per table to a new workbook at path.
func Export(path string, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := WriteSheets(f, sheets); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// WriteSheets adds the tables to f and drops the default empty sheet.
func WriteSheets(f *excelize.File, sheets []Sheet) error {
	defaultSheet := f.GetSheetName(0)
	for _, s := range sheets {
		name := sheetName(s.Name)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, s); err != nil {
			return fmt.Errorf("writing sheet %s: %w", name, err)
		}
	}
	if len(sheets) > 0 && !containsSheet(sheets, defaultSheet) {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("deleting sheet %s: %w", defaultSheet, err)
		}
	}
	return nil
}

func writeSheet(f *excelize.File, name string, s Sheet) error {
	for i, c := range s.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, c.Header); err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, col, col, float64(c.Width)+2); err != nil {
			return err
		}
	}
	for r, row := range s.Rows {
		for i, c := range s.Columns {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, c.Value(row)); err != nil {
				return err
			}
		}
	}

	footer := len(s.Rows) + 2
	for i, v := range TotalValues(s.Columns, s.Rows) {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, footer)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func sheetName(name string) string {
	r := []rune(name)
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	return string(r)
}

func containsSheet(sheets []Sheet, name string) bool {
	for _, s := range sheets {
		if sheetName(s.Name) == name {
			return true
		}
	}
	return false
}
