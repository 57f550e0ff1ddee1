package engine

import (
	"testing"

	"github.com/insightdelivered/statement-scraper/internal/layout"
	"github.com/insightdelivered/statement-scraper/internal/models"
)

// headerPage lays out "Date" and "Narration" headers on separate rows
// inside the header scan region, shifted from the profile defaults.
func headerPage() models.Page {
	return models.Page{
		Width:  595,
		Height: 842,
		Tokens: []models.Token{
			{Text: "Date", X0: 12, X1: 48, Top: 150},
			{Text: "Narration", X0: 85, X1: 150, Top: 160},
			// Body text below the scan region must not participate.
			{Text: "Date", X0: 300, X1: 340, Top: 400},
		},
	}
}

func TestCalibrateAdvisoryByDefault(t *testing.T) {
	e := newTestEngine(t, models.ProfileHDFC)

	cols := make([]layout.Column, len(e.profile.Columns))
	copy(cols, e.profile.Columns)

	e.calibrate(headerPage(), cols)

	for i, col := range cols {
		want := e.profile.Columns[i]
		if col.X0 != want.X0 || col.X1 != want.X1 {
			t.Errorf("column %q moved without WithCalibration: got [%v,%v], want [%v,%v]",
				col.Name, col.X0, col.X1, want.X0, want.X1)
		}
	}
}

func TestCalibrateCommitsWhenEnabled(t *testing.T) {
	e, err := New(models.ProfileHDFC, WithCalibration(true))
	if err != nil {
		t.Fatal(err)
	}

	cols := make([]layout.Column, len(e.profile.Columns))
	copy(cols, e.profile.Columns)

	e.calibrate(headerPage(), cols)

	tests := []struct {
		name   string
		wantX0 float64
		wantX1 float64
	}{
		// Matched header box padded left 10 and right 20.
		{"Date", 2, 68},
		{"Narration", 75, 170},
	}
	for _, tt := range tests {
		col := findColumn(t, cols, tt.name)
		if col.X0 != tt.wantX0 || col.X1 != tt.wantX1 {
			t.Errorf("%s: got [%v,%v], want [%v,%v]", tt.name, col.X0, col.X1, tt.wantX0, tt.wantX1)
		}
	}

	// Columns whose headers are absent from the page keep their
	// hand-tuned defaults.
	bal := findColumn(t, cols, "ClosingBalance")
	def, _ := e.profile.Find("ClosingBalance")
	if bal.X0 != def.X0 || bal.X1 != def.X1 {
		t.Errorf("ClosingBalance moved without a header match: got [%v,%v]", bal.X0, bal.X1)
	}
}

func TestCalibrateEmptyHeaderRegion(t *testing.T) {
	e, err := New(models.ProfileHDFC, WithCalibration(true))
	if err != nil {
		t.Fatal(err)
	}

	cols := make([]layout.Column, len(e.profile.Columns))
	copy(cols, e.profile.Columns)

	page := models.Page{Width: 595, Height: 842, Tokens: []models.Token{
		{Text: "body text only", X0: 100, X1: 200, Top: 500},
	}}
	e.calibrate(page, cols)

	for i, col := range cols {
		want := e.profile.Columns[i]
		if col.X0 != want.X0 || col.X1 != want.X1 {
			t.Errorf("column %q moved with no header lines", col.Name)
		}
	}
}

func findColumn(t *testing.T, cols []layout.Column, name string) layout.Column {
	t.Helper()
	for _, c := range cols {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("column %q not found", name)
	return layout.Column{}
}
