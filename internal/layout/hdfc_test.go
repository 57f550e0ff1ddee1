package layout

import (
	"testing"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

func TestHDFCColumns(t *testing.T) {
	p, err := New(models.ProfileHDFC)
	if err != nil {
		t.Fatal(err)
	}

	if len(p.Columns) != 7 {
		t.Fatalf("expected 7 columns, got %d", len(p.Columns))
	}
	if got := len(p.ColumnsOfKind(KindAmount)); got != 2 {
		t.Errorf("expected 2 amount columns, got %d", got)
	}

	// Bands must not overlap and must be declared left to right.
	for i := 1; i < len(p.Columns); i++ {
		prev, cur := p.Columns[i-1], p.Columns[i]
		if cur.X0 < prev.X1 {
			t.Errorf("column %q (x0=%v) overlaps %q (x1=%v)", cur.Name, cur.X0, prev.Name, prev.X1)
		}
	}
}

func TestHDFCPostProcessDateSync(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		valueDt string
		want    [2]string // Date, ValueDt after post-processing
	}{
		{
			name: "value date fills from date",
			date: "01/04/23", valueDt: "",
			want: [2]string{"01/04/23", "01/04/23"},
		},
		{
			name: "date fills from value date",
			date: "", valueDt: "02/04/23",
			want: [2]string{"02/04/23", "02/04/23"},
		},
		{
			name: "both present stay distinct",
			date: "01/04/23", valueDt: "02/04/23",
			want: [2]string{"01/04/23", "02/04/23"},
		},
		{
			name: "both empty stay empty",
			date: "", valueDt: "",
			want: [2]string{"", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.Record{"Date": tt.date, "ValueDt": tt.valueDt}
			got := hdfcPostProcess(rec)
			if got["Date"] != tt.want[0] || got["ValueDt"] != tt.want[1] {
				t.Errorf("got Date=%q ValueDt=%q, want %q %q",
					got["Date"], got["ValueDt"], tt.want[0], tt.want[1])
			}
		})
	}
}

func TestHDFCDatePattern(t *testing.T) {
	p, err := New(models.ProfileHDFC)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in    string
		match bool
	}{
		{"01/04/23", true},
		{"1/4/2023", true},
		{"01-04-23", true},
		{"12:30:45", false},
		{"NEFT", false},
	}

	for _, tt := range tests {
		if got := p.DatePrefix.MatchString(tt.in); got != tt.match {
			t.Errorf("DatePrefix(%q) = %v, want %v", tt.in, got, tt.match)
		}
	}
}
