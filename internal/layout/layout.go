// Package layout holds the declarative per-bank configuration that
// parameterizes the extraction engine: column geometry, header aliases,
// noise and transaction-start keywords, page thresholds, field-cleaning
// rules and output key normalization.
package layout

import (
	"fmt"
	"regexp"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// ColumnKind is the semantic category of a column. It drives field
// cleaning and the monetary retention rule.
type ColumnKind int

const (
	KindDate ColumnKind = iota
	KindNarration
	KindReference
	KindAmount
	KindBalance
)

// Column is a named horizontal band of the page mapped to a semantic field.
type Column struct {
	Name string
	X0   float64
	X1   float64
	Kind ColumnKind
}

// PageRules are the per-profile vertical thresholds.
type PageRules struct {
	HeaderYMax      float64 // header furniture lives above this on page 1
	FooterRatio     float64 // footer noise region starts at height*ratio
	ContinuationGap float64 // max vertical gap for continuation merging
}

// Profile is the per-bank configuration. It is loaded once and shared
// read-only across documents; the engine copies column geometry per run
// so header calibration never mutates a shared profile.
type Profile struct {
	ID           models.ProfileID
	FriendlyName string

	// Columns in declaration order; order breaks overlap ties.
	Columns []Column

	// HeaderAliases lists, per column, the phrases its header may be
	// printed as. The first alias is the primary query for calibration.
	HeaderAliases map[string][]string

	Rules         PageRules
	StartKeywords []string // lowercase; issuer codes that mark a new row
	NoiseKeywords []string // lowercase; disclaimer/footer vocabulary

	// DatePattern matches the profile's transaction date anywhere in a
	// string; DatePrefix is the same pattern anchored to the start.
	DatePattern *regexp.Regexp
	DatePrefix  *regexp.Regexp

	// Narration cleaning configuration.
	RejoinVocab   []string          // words the extractor tends to letter-split
	Misreads      map[string]string // literal known-misread substitutions
	FooterMarkers []string          // truncate narration at the first of these

	// RefMetaPattern strips trailing metadata from reference fields.
	// May be nil.
	RefMetaPattern *regexp.Regexp

	// PostProcess runs after per-column cleaning and before key
	// normalization. May be nil.
	PostProcess func(models.Record) models.Record

	// KeyMap maps raw column names to canonical output keys; unmapped
	// names pass through unchanged.
	KeyMap map[string]string

	// Derived, compiled at construction.
	rejoinRes     []*regexp.Regexp
	noiseStripRes []*regexp.Regexp
	footerRe      *regexp.Regexp
}

// New returns the profile for the given identifier. The set of
// supported profiles is closed; adding a bank means adding a
// constructor and a case here.
func New(id models.ProfileID) (*Profile, error) {
	switch id {
	case models.ProfileHDFC:
		return hdfcProfile(), nil
	case models.ProfileUnionBank:
		return unionBankProfile(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
}

// ErrUnknownProfile reports a bank identifier with no registered layout.
var ErrUnknownProfile = fmt.Errorf("unknown bank profile")

// IDs lists the supported profile identifiers.
func IDs() []models.ProfileID {
	return []models.ProfileID{models.ProfileHDFC, models.ProfileUnionBank}
}

// finish compiles the derived cleaning patterns. Every profile
// constructor must call it last.
func (p *Profile) finish() *Profile {
	p.DatePrefix = regexp.MustCompile(`^(?:` + p.DatePattern.String() + `)`)
	for _, w := range p.RejoinVocab {
		p.rejoinRes = append(p.rejoinRes, interleavedPattern(w))
	}
	for _, k := range p.NoiseKeywords {
		p.noiseStripRes = append(p.noiseStripRes, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(k)))
	}
	if len(p.FooterMarkers) > 0 {
		alt := ""
		for i, m := range p.FooterMarkers {
			if i > 0 {
				alt += "|"
			}
			alt += regexp.QuoteMeta(m)
		}
		p.footerRe = regexp.MustCompile(`(?i)` + alt)
	}
	return p
}

// interleavedPattern builds a case-insensitive pattern matching word
// with an optional space between every pair of letters, so that
// "N E T B A NK" collapses back to "NETBANK".
func interleavedPattern(word string) *regexp.Regexp {
	pat := `(?i)`
	for i, r := range word {
		if i > 0 {
			pat += `\s?`
		}
		pat += regexp.QuoteMeta(string(r))
	}
	return regexp.MustCompile(pat)
}

// Find returns the column with the given raw name.
func (p *Profile) Find(name string) (Column, bool) {
	for _, c := range p.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnsOfKind returns the columns of the given kind in declaration order.
func (p *Profile) ColumnsOfKind(kind ColumnKind) []Column {
	var out []Column
	for _, c := range p.Columns {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// OutputColumns returns the canonical output keys in declaration order.
func (p *Profile) OutputColumns() []string {
	out := make([]string, 0, len(p.Columns))
	for _, c := range p.Columns {
		out = append(out, p.canonicalKey(c.Name))
	}
	return out
}

func (p *Profile) canonicalKey(raw string) string {
	if mapped, ok := p.KeyMap[raw]; ok {
		return mapped
	}
	return raw
}

// NormalizeKeys maps a raw-keyed record to canonical output keys.
func (p *Profile) NormalizeKeys(rec models.Record) models.Record {
	out := make(models.Record, len(rec))
	for k, v := range rec {
		out[p.canonicalKey(k)] = v
	}
	return out
}
