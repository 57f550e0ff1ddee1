package engine

import (
	"strings"

	"github.com/insightdelivered/statement-scraper/internal/layout"
)

// assignColumns maps each token of a line to the column with the
// greatest positive horizontal overlap and space-joins the text per
// column (the "flat row"). Ties go to the first declared column;
// tokens overlapping no column are dropped.
func assignColumns(line Line, cols []layout.Column) map[string]string {
	grouped := make(map[string][]string)
	for _, tok := range line.Tokens {
		best := ""
		maxOverlap := 0.0
		for _, col := range cols {
			overlap := min(tok.X1, col.X1) - max(tok.X0, col.X0)
			if overlap > maxOverlap {
				maxOverlap = overlap
				best = col.Name
			}
		}
		if best != "" {
			grouped[best] = append(grouped[best], tok.Text)
		}
	}

	flat := make(map[string]string, len(grouped))
	for name, parts := range grouped {
		if v := strings.TrimSpace(strings.Join(parts, " ")); v != "" {
			flat[name] = v
		}
	}
	return flat
}
