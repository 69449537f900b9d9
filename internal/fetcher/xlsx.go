package fetcher

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the XLSX parser.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads an XLSX file and returns the selected sheet as a Table.
// The first row of the sheet is the header.
func ReadXLSX(path string, opts XLSXOptions) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		rows = append(rows, rowToValues(row, f.Date1904))
	}

	return newTable(path, rows), nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToValues(row *xlsx.Row, date1904 bool) []any {
	cells := make([]any, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cellValue(cell, date1904)
	}
	return cells
}

// cellValue maps a cell to bool, time.Time, float64, string, or nil.
func cellValue(cell *xlsx.Cell, date1904 bool) any {
	if cell == nil {
		return nil
	}
	switch cell.Type() {
	case xlsx.CellTypeBool:
		return cell.Bool()
	case xlsx.CellTypeNumeric, xlsx.CellTypeDate:
		if strings.TrimSpace(cell.Value) == "" {
			return nil
		}
		if cell.IsTime() {
			if t, err := cell.GetTime(date1904); err == nil {
				return t.UTC().Round(time.Second)
			}
		}
		if v, err := cell.Float(); err == nil {
			return v
		}
	}
	s := strings.TrimSpace(cell.String())
	if s == "" {
		return nil
	}
	return s
}
