package writer

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

func testStatement() *models.Statement {
	return &models.Statement{
		Bank:    "HDFC",
		Profile: models.ProfileHDFC,
		Columns: []string{"date", "Narration", "Withdraw", "Deposit"},
		Records: []models.Record{
			{"date": "01/04/23", "Narration": "UPI PAYMENT", "Withdraw": "500.00", "Deposit": ""},
			{"date": "02/04/23", "Narration": "NEFT, INWARD", "Withdraw": "", "Deposit": "1,200.00"},
		},
	}
}

func TestCSVWrite(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, testStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1 // metadata rows are shorter than data rows
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	// 3 metadata rows + header + 2 records
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(rows))
	}
	if rows[0][0] != "# Bank" || rows[0][1] != "HDFC" {
		t.Errorf("bank metadata row = %v", rows[0])
	}
	if rows[3][0] != "date" {
		t.Errorf("header row = %v", rows[3])
	}
	if rows[4][2] != "500.00" {
		t.Errorf("withdraw cell = %q, want %q", rows[4][2], "500.00")
	}
	// Embedded comma must survive the round trip.
	if rows[5][1] != "NEFT, INWARD" {
		t.Errorf("narration cell = %q, want %q", rows[5][1], "NEFT, INWARD")
	}
}

func TestCSVWriteNoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: false}
	if err := w.Write(&buf, testStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "# Bank") {
		t.Error("metadata rows present without IncludeHeader")
	}
	if !strings.HasPrefix(out, "date,Narration,Withdraw,Deposit") {
		t.Errorf("output must start with the column header, got %q", out)
	}
}

func TestCSVWriteEmptyStatement(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	st := &models.Statement{
		Bank:    "HDFC",
		Profile: models.ProfileHDFC,
		Columns: []string{"date", "Narration"},
	}
	if err := w.Write(&buf, st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if rows[2][1] != "0" {
		t.Errorf("transaction count = %q, want %q", rows[2][1], "0")
	}
}
