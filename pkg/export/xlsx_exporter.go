package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXExporter renders datasets into an Excel workbook.
type XLSXExporter struct {
	// Numeric headers are written as numbers instead of text when parseable.
	Numeric map[string]bool
}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter(numericHeaders ...string) *XLSXExporter {
	numeric := make(map[string]bool, len(numericHeaders))
	for _, h := range numericHeaders {
		numeric[h] = true
	}
	return &XLSXExporter{Numeric: numeric}
}

// Render writes a single-sheet workbook named after sheet (Sheet1 when empty).
func (e *XLSXExporter) Render(data Dataset, sheet string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if sheet == "" {
		sheet = defaultSheet
	} else if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range data.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header %s: %w", header, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(data.Headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	rowNo := 2
	for _, row := range append(append([]map[string]string{}, data.Rows...), data.Footer...) {
		for col, header := range data.Headers {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNo)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, e.cellValue(header, row[header])); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
		rowNo++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *XLSXExporter) cellValue(header, raw string) interface{} {
	if !e.Numeric[header] {
		return raw
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}
