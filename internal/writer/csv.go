package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// CSVWriter writes extracted records to CSV in profile column order.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, st *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, st)
}

// Write writes the statement in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, st *models.Statement) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	// Write metadata as comments (CSV header rows)
	if w.IncludeHeader {
		if st.Bank != "" {
			writer.Write([]string{"# Bank", st.Bank})
		}
		if st.Profile != "" {
			writer.Write([]string{"# Profile", string(st.Profile)})
		}
		writer.Write([]string{"# Transactions", fmt.Sprint(len(st.Records))})
	}

	if err := writer.Write(st.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range st.Records {
		row := make([]string, len(st.Columns))
		for i, col := range st.Columns {
			row[i] = rec[col]
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
