package writer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

const xlsxSheet = "Transactions"

// XLSXWriter writes extracted records to a single-sheet workbook.
type XLSXWriter struct{}

// WriteToFile writes the statement as an XLSX workbook at the given
// path: one header row of canonical column names, one row per record.
func (w *XLSXWriter) WriteToFile(path string, st *models.Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, col := range st.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("invalid header cell: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for r, rec := range st.Records {
		for i, col := range st.Columns {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return fmt.Errorf("invalid cell: %w", err)
			}
			if err := f.SetCellValue(xlsxSheet, cell, rec[col]); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}
