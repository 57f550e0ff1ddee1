package layout

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// unionBankProfile is the layout for Union Bank account statements.
func unionBankProfile() *Profile {
	p := &Profile{
		ID:           models.ProfileUnionBank,
		FriendlyName: "Union Bank",
		Columns: []Column{
			{Name: "Date", X0: 0, X1: 100, Kind: KindDate},
			{Name: "Remarks", X0: 100, X1: 198, Kind: KindNarration},
			{Name: "Tran Id-1", X0: 198, X1: 278, Kind: KindReference},
			// Always empty in this bank's format; kept for schema parity.
			{Name: "Instr. ID", X0: 0, X1: 0, Kind: KindReference},
			{Name: "UTR Number", X0: 278, X1: 450, Kind: KindReference},
			{Name: "Withdrawals", X0: 450, X1: 545, Kind: KindAmount},
			{Name: "Deposits", X0: 545, X1: 642, Kind: KindAmount},
			{Name: "Balance", X0: 642, X1: 842, Kind: KindBalance},
		},
		HeaderAliases: map[string][]string{
			"Date":        {"Date", "Txn Date"},
			"Remarks":     {"Remarks", "Particulars", "Description"},
			"Tran Id-1":   {"Tran Id", "Ref No", "Transaction ID"},
			"Instr. ID":   {"Instr. ID", "Instrument"},
			"UTR Number":  {"UTR Number", "UTR"},
			"Withdrawals": {"Withdrawals", "Debit"},
			"Deposits":    {"Deposits", "Credit"},
			"Balance":     {"Balance"},
		},
		Rules: PageRules{
			HeaderYMax:      250,
			FooterRatio:     0.92,
			ContinuationGap: 45,
		},
		StartKeywords: []string{"rtgs", "epay", "neft:", "collection", "imps"},
		NoiseKeywords: []string{
			"for any queries", "customer service", "this is a system generated",
			"no signature", "avail our loan", "missed call", "sms", "discrepancy",
			"page no", "union bank", "statement of account", "generated on",
			"missed call at", "uloan", "computer generated", "visit our website",
		},
		DatePattern: regexp.MustCompile(`\d{2}[/-]\d{2}[/-]\d{2,4}`),
		RejoinVocab: []string{"NETBANK", "PHONE", "HDFCBANK", "PAYMENT", "FROM", "COLLECTION"},
		Misreads: map[string]string{
			"ULTISTATECOOP": "MULTISTATE COOP",
			"SOLERPLY":      "SOLAR SUPPLY",
		},
		PostProcess: unionBankPostProcess,
		KeyMap: map[string]string{
			"Date":        "date",
			"Withdrawals": "Withdrawal",
			"Deposits":    "Deposit",
			"Balance":     "balance",
		},
	}
	return p.finish()
}

var (
	// Decimal amounts inside a bled balance cell. The class excludes
	// the dot so "5,000.00100.00" splits into two amounts instead of
	// greedily matching as one.
	bledAmountRe = regexp.MustCompile(`[0-9,]+\.\d{2}`)
	senderNoRe   = regexp.MustCompile(`(?i)Sender\s*No[:\s]*([A-Z0-9\s]+)`)

	unionDebitKeywords  = []string{"charges", "neftdr", "rtgsdr", "interest", "penal", "dr"}
	unionCreditKeywords = []string{"neft", "rtgs", "cash", "loan", "cr"}
)

// unionBankPostProcess repairs the issuer's known layout defects:
// amounts bled into the Balance column, "Sender No" metadata scattered
// across text fields, and balance cells that are pure amount spillover.
func unionBankPostProcess(rec models.Record) models.Record {
	remarks := rec["Remarks"]
	withdrawals := rec["Withdrawals"]
	deposits := rec["Deposits"]
	balance := rec["Balance"]
	tranID := rec["Tran Id-1"]
	utr := rec["UTR Number"]

	// Balance bleed: both amount columns empty but the balance cell
	// carries at least two decimal amounts. The first is the bled
	// transaction amount; the rest (after a trailing sign marker) is
	// the corrected balance.
	if withdrawals == "" && deposits == "" && balance != "" {
		parts := bledAmountRe.FindAllString(balance, -1)
		if len(parts) >= 2 {
			amt := parts[0]
			rest := balance[len(amt):]
			if i := strings.LastIndex(rest, "-"); i >= 0 {
				rest = rest[i+1:]
			}
			balance = strings.TrimSpace(rest)

			// Classify the bled amount by narration keywords; debit
			// vocabulary is checked first, debit wins when ambiguous.
			remLower := strings.ToLower(remarks)
			switch {
			case containsAny(remLower, unionDebitKeywords):
				withdrawals = amt
			case containsAny(remLower, unionCreditKeywords):
				deposits = amt
			default:
				withdrawals = amt
			}
		}
	}

	// Relocate "Sender No" metadata into the UTR field.
	joint := tranID + " " + remarks + " " + utr
	if m := senderNoRe.FindStringSubmatch(joint); m != nil {
		full := strings.TrimSpace(m[0])
		id := strings.TrimSpace(m[1])
		utr = "Sender No: " + whitespaceRe.ReplaceAllString(id, "")
		remarks = strings.TrimSpace(strings.ReplaceAll(remarks, full, ""))
		remarks = strings.TrimSpace(strings.ReplaceAll(remarks, id, ""))
		tranID = strings.TrimSpace(strings.ReplaceAll(tranID, full, ""))
	}

	tranID = whitespaceRe.ReplaceAllString(tranID, "")
	remarks = strings.TrimSpace(whitespaceRe.ReplaceAllString(remarks, " "))

	// A balance identical to the transaction amount is spillover, not
	// a real running balance.
	amount := withdrawals
	if amount == "" {
		amount = deposits
	}
	if amount != "" && balance == amount {
		balance = ""
	}

	return models.Record{
		"Date":        rec["Date"],
		"Remarks":     remarks,
		"Tran Id-1":   tranID,
		"Instr. ID":   rec["Instr. ID"],
		"UTR Number":  utr,
		"Withdrawals": withdrawals,
		"Deposits":    deposits,
		"Balance":     balance,
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
