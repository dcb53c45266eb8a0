// Package export writes table data as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/simp-lee/hrdesk/internal/table"
)

// ContentType is the MIME type of an XLSX workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

// XLSX writes one sheet named sheet with a bold header row followed by one
// row per record. Cells use the columns' rendered text.
func XLSX[T any](w io.Writer, sheet string, columns []table.Column[T], rows []T) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(defaultSheet)
	if err != nil {
		return fmt.Errorf("export: new stream writer: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: bold}); err != nil {
		return fmt.Errorf("export: header row: %w", err)
	}

	view := table.Render(rows, columns, table.State{}, table.Pagination{})
	if !view.Empty {
		for i, r := range view.Rows {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			values := make([]any, len(r.Cells))
			for j, c := range r.Cells {
				values[j] = c.Text
			}
			if err := sw.SetRow(cell, values); err != nil {
				return fmt.Errorf("export: row %d: %w", i+1, err)
			}
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}

	if name := sheetName(sheet); name != defaultSheet {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("export: rename sheet: %w", err)
		}
	}
	return f.Write(w)
}

// sheetName trims name to the 31 characters a sheet name may hold.
func sheetName(name string) string {
	if name == "" {
		return defaultSheet
	}
	r := []rune(name)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}
