package layout

import (
	"regexp"
	"strings"
)

// Shared cleaning patterns. The identifier-join pair repairs IDs broken
// across a wrapped line: the halves are only joined when the seam is
// digit-on-digit, so a proper name next to an unrelated numeric ID
// (e.g. "REF998877 ACME") is left alone.
var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	trailingSepRe = regexp.MustCompile(`[,\-_\s]+$`)
	nonAmountRe   = regexp.MustCompile(`[^\d.,\-]`)
	alphaRe       = regexp.MustCompile(`[A-Za-z]`)

	idJoinShortLong = regexp.MustCompile(`([A-Z0-9]{2,}[0-9])\s+([0-9][A-Z0-9]{7,})`)
	idJoinLongShort = regexp.MustCompile(`([A-Z0-9]{7,}[0-9])\s+([0-9][A-Z0-9]{2,})`)
)

// CleanField sanitizes a raw accumulated value according to the named
// column's semantic kind. Cleaning is idempotent for every kind.
func (p *Profile) CleanField(name, val string) string {
	if val == "" {
		return ""
	}
	col, ok := p.Find(name)
	if !ok {
		return strings.TrimSpace(val)
	}

	switch col.Kind {
	case KindNarration:
		return p.cleanNarration(val)
	case KindAmount, KindBalance:
		return cleanAmount(val)
	case KindReference:
		return p.cleanReference(val)
	default:
		return strings.TrimSpace(val)
	}
}

func (p *Profile) cleanNarration(val string) string {
	// Reassemble letter-split words for the known vocabulary.
	for i, re := range p.rejoinRes {
		val = re.ReplaceAllString(val, p.RejoinVocab[i])
	}

	// Join identifier halves split across a line break.
	val = idJoinShortLong.ReplaceAllString(val, "$1$2")
	val = idJoinLongShort.ReplaceAllString(val, "$1$2")

	// Known misreads from the issuer's statement generator.
	for bad, good := range p.Misreads {
		val = strings.ReplaceAll(val, bad, good)
	}

	// Drop noise phrases that slipped through line filtering.
	for _, re := range p.noiseStripRes {
		val = re.ReplaceAllString(val, "")
	}

	// Truncate at footer boilerplate.
	if p.footerRe != nil {
		if loc := p.footerRe.FindStringIndex(val); loc != nil {
			val = val[:loc[0]]
		}
	}

	val = whitespaceRe.ReplaceAllString(val, " ")
	val = strings.TrimSpace(val)
	return trailingSepRe.ReplaceAllString(val, "")
}

// cleanAmount keeps only digits, separators and sign. A value carrying
// any letter is header or disclaimer bleed, not a number.
func cleanAmount(val string) string {
	if alphaRe.MatchString(val) {
		return ""
	}
	return strings.TrimSpace(nonAmountRe.ReplaceAllString(val, ""))
}

func (p *Profile) cleanReference(val string) string {
	if p.RefMetaPattern != nil {
		val = p.RefMetaPattern.ReplaceAllString(val, "")
	}
	val = trailingSepRe.ReplaceAllString(val, "")
	// Reference numbers are never space-separated.
	val = whitespaceRe.ReplaceAllString(val, "")
	return strings.TrimSpace(val)
}
