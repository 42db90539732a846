package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SummaryRow is one batch outcome in the summary workbook.
type SummaryRow struct {
	File        string
	Status      string
	Extractions int
	OutputFile  string
	Error       string
}

// WriteBatchWorkbook writes the batch summary as an XLSX workbook, one row
// per processed file.
func (w *Writer) WriteBatchWorkbook(dest string, rows []SummaryRow) error {
	f := excelize.NewFile()
	const sheet = "Batch Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"File", "Status", "Extractions", "Output File", "Error"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.File)
		write(2, r.Status)
		write(3, r.Extractions)
		write(4, r.OutputFile)
		write(5, r.Error)
	}

	_ = f.SetColWidth(sheet, "A", "A", 48)
	_ = f.SetColWidth(sheet, "B", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 12)
	_ = f.SetColWidth(sheet, "D", "D", 48)
	_ = f.SetColWidth(sheet, "E", "E", 60)

	if err := f.SaveAs(dest); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
