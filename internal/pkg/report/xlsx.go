package report

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Table is a single-sheet spreadsheet: one bold header row followed by data rows.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]interface{}
}

// WriteXLSX renders t as an .xlsx workbook.
func WriteXLSX(t Table) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("Failed to close workbook", "error", err)
		}
	}()

	if err := writeHeader(f, defaultSheet, t.Headers); err != nil {
		return nil, fmt.Errorf("failed to write xlsx header: %w", err)
	}
	for i, row := range t.Rows {
		for j, value := range row {
			if err := writeCell(f, defaultSheet, j+1, i+2, value); err != nil {
				return nil, fmt.Errorf("failed to write xlsx row %d: %w", i+1, err)
			}
		}
	}

	if t.Sheet != "" && t.Sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, t.Sheet); err != nil {
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	}
	return f.WriteToBuffer()
}

func writeCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	if len(headers) == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	first, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return err
	}

	for i, h := range headers {
		if err := writeCell(f, sheet, i+1, 1, h); err != nil {
			return err
		}
	}
	return nil
}
