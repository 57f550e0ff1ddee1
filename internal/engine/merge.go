package engine

import (
	"github.com/insightdelivered/statement-scraper/internal/layout"
	"github.com/insightdelivered/statement-scraper/internal/models"
)

// mergeSplitRecords reconciles adjacent records that are two halves of
// one transaction: same date, same non-empty reference, and exactly
// one side carrying monetary values. A single forward pass; a merged
// record is not re-scanned against its next neighbor, so a three-way
// split stays partially merged.
func mergeSplitRecords(recs []models.Record, p *layout.Profile) []models.Record {
	if len(recs) < 2 {
		return recs
	}

	dateCol := firstColumnName(p, layout.KindDate)
	narrCol := firstColumnName(p, layout.KindNarration)
	amountCols := p.ColumnsOfKind(layout.KindAmount)

	var merged []models.Record
	for i := 0; i < len(recs); i++ {
		curr := recs[i]
		if i+1 < len(recs) {
			next := recs[i+1]

			ref := sharedReference(p, curr, next)
			sameDate := dateCol != "" && curr[dateCol] == next[dateCol]
			currMoney := hasMoney(curr, amountCols)
			nextMoney := hasMoney(next, amountCols)

			if ref != "" && sameDate && currMoney != nextMoney {
				combined := curr.Clone()
				if narrCol != "" {
					joined := joinNonEmpty(curr[narrCol], next[narrCol])
					combined[narrCol] = p.CleanField(narrCol, joined)
				}
				for _, col := range amountCols {
					if next[col.Name] != "" {
						combined[col.Name] = next[col.Name]
					}
				}
				merged = append(merged, combined)
				i++ // consumed the next record
				continue
			}
		}
		merged = append(merged, curr)
	}
	return merged
}

// sharedReference returns the value of the first reference column that
// is non-empty and identical in both records, or "".
func sharedReference(p *layout.Profile, a, b models.Record) string {
	for _, col := range p.ColumnsOfKind(layout.KindReference) {
		if v := a[col.Name]; v != "" && v == b[col.Name] {
			return v
		}
	}
	return ""
}

func hasMoney(rec models.Record, amountCols []layout.Column) bool {
	for _, col := range amountCols {
		if rec[col.Name] != "" {
			return true
		}
	}
	return false
}

func firstColumnName(p *layout.Profile, kind layout.ColumnKind) string {
	cols := p.ColumnsOfKind(kind)
	if len(cols) == 0 {
		return ""
	}
	return cols[0].Name
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
