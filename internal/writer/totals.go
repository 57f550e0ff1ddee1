package writer

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// Totals sums the withdraw- and deposit-like fields across all
// records. Values are statement-formatted strings ("1,234.56"); exact
// decimal arithmetic avoids float drift on large statements.
// Unparseable values are skipped.
func Totals(st *models.Statement) (withdraw, deposit decimal.Decimal) {
	for _, rec := range st.Records {
		for key, val := range rec {
			if val == "" {
				continue
			}
			amt, err := decimal.NewFromString(strings.ReplaceAll(val, ",", ""))
			if err != nil {
				continue
			}
			switch {
			case strings.Contains(key, "Withdraw"):
				withdraw = withdraw.Add(amt)
			case strings.Contains(key, "Deposit"):
				deposit = deposit.Add(amt)
			}
		}
	}
	return withdraw, deposit
}
