package layout

import (
	"regexp"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// hdfcProfile is the layout for HDFC Bank account statements.
// Column coordinates come from layout analysis of real statements and
// are the hand-tuned defaults; header calibration may refine them.
func hdfcProfile() *Profile {
	p := &Profile{
		ID:           models.ProfileHDFC,
		FriendlyName: "HDFC",
		Columns: []Column{
			{Name: "Date", X0: 0, X1: 68, Kind: KindDate},
			{Name: "Narration", X0: 68, X1: 260, Kind: KindNarration},
			{Name: "Chq./Ref.No.", X0: 260, X1: 350, Kind: KindReference},
			{Name: "ValueDt", X0: 350, X1: 410, Kind: KindDate},
			{Name: "WithdrawalAmt", X0: 410, X1: 490, Kind: KindAmount},
			{Name: "DepositAmt", X0: 490, X1: 560, Kind: KindAmount},
			{Name: "ClosingBalance", X0: 560, X1: 850, Kind: KindBalance},
		},
		HeaderAliases: map[string][]string{
			"Date":           {"Date", "Txn Date", "date"},
			"Narration":      {"Narration", "Description", "Particulars", "narration"},
			"Chq./Ref.No.":   {"Chq./Ref.No.", "Ref No", "Cheque No", "Reference"},
			"ValueDt":        {"Value Dt", "Value Date"},
			"WithdrawalAmt":  {"Withdrawal Amt", "Debit", "Withdrawal"},
			"DepositAmt":     {"Deposit Amt", "Credit", "Deposit"},
			"ClosingBalance": {"Closing Balance", "Balance", "closingbalance"},
		},
		Rules: PageRules{
			HeaderYMax:      200,
			FooterRatio:     0.90,
			ContinuationGap: 40,
		},
		StartKeywords: []string{"rtgs", "imps", "upi", "neft", "chqdep"},
		NoiseKeywords: []string{
			"closing balance includes", "closingbalanceincludes",
			"contents of this statement", "contentsofthisstatement",
			"registered office", "registeredoffice",
			"gstin", "generated on", "requesting branch",
			"this is a computer generated", "thisisacomputergenerated",
			"page no", "hdfc bank", "hdfcbank", "stateaccountreceipt",
			"fundsearmarked", "statutorydisclaimer", "disclaimer",
		},
		DatePattern: regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
		RejoinVocab: []string{"NETBANK", "PHONE", "HDFCBANK", "PAYMENT", "FROM"},
		Misreads: map[string]string{
			"ULTISTATECOOP": "MULTISTATE COOP",
			"SOLERPLY":      "SOLAR SUPPLY",
		},
		FooterMarkers:  []string{"RegisteredOffice", "HDFCBankHouse", "*Closingbalance"},
		RefMetaPattern: regexp.MustCompile(`(?i)(GeneratedBy|RequestingBranchCode).*`),
		PostProcess:    hdfcPostProcess,
		KeyMap: map[string]string{
			"Date":          "date",
			"WithdrawalAmt": "Withdraw",
			"DepositAmt":    "Deposit",
		},
	}
	return p.finish()
}

// hdfcPostProcess keeps Date and ValueDt synchronized when exactly one
// of them was lost to a wrapped or clipped row.
func hdfcPostProcess(rec models.Record) models.Record {
	dt, vdt := rec["Date"], rec["ValueDt"]
	switch {
	case dt != "" && vdt == "":
		rec["ValueDt"] = dt
	case vdt != "" && dt == "":
		rec["Date"] = vdt
	}
	return rec
}
