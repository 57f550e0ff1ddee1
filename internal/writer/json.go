package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// JSONWriter writes the record list as an indented JSON array, the
// same shape the records travel over the HTTP API in.
type JSONWriter struct{}

// WriteToFile writes the statement's records to a JSON file.
func (w *JSONWriter) WriteToFile(path string, st *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, st)
}

// Write writes the records as JSON to the given writer. An empty
// statement encodes as [], never null.
func (w *JSONWriter) Write(out io.Writer, st *models.Statement) error {
	records := st.Records
	if records == nil {
		records = []models.Record{}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}
