package engine

import (
	"regexp"
	"strings"
)

// Start-zone thresholds: a transaction's first token sits at the left
// margin. Keyword-triggered starts tolerate a slightly deeper indent.
const (
	startZoneStrict = 120.0
	startZoneLoose  = 150.0
)

// clockRe matches a bare time-of-day token, which banks print on its
// own row and must never open a transaction.
var clockRe = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

// criticalNoise is always blocked regardless of position or profile.
var criticalNoise = []string{
	"registered office", "gstin", "contents of this statement",
	"for any queries", "customer service",
}

// isNoise decides whether a line is disclaimer/boilerplate. A line in
// the footer region containing any noise keyword is noise; anywhere on
// the page, two distinct noise keywords or one critical phrase is
// enough.
func (e *Engine) isNoise(text string, top, pageHeight float64) bool {
	lower := strings.ToLower(text)

	if top > pageHeight*e.profile.Rules.FooterRatio {
		for _, kw := range e.profile.NoiseKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}

	matches := 0
	for _, kw := range e.profile.NoiseKeywords {
		if strings.Contains(lower, kw) {
			matches++
			if matches >= 2 {
				return true
			}
		}
	}

	for _, phrase := range criticalNoise {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// isStart decides whether a line begins a new transaction. A valid
// start implies a date: either the first token is one, or a start
// keyword appears alongside a date somewhere in the line.
func (e *Engine) isStart(line Line, text string) bool {
	if len(line.Tokens) == 0 {
		return false
	}
	first := strings.TrimSpace(line.Tokens[0].Text)
	x := line.Tokens[0].X0

	// A bare clock time is a timestamp row, not a transaction.
	if clockRe.MatchString(first) {
		return false
	}

	if e.profile.DatePrefix.MatchString(first) && x < startZoneStrict {
		return true
	}

	if e.profile.DatePattern.MatchString(text) && x < startZoneLoose {
		lower := strings.ToLower(text)
		for _, kw := range e.profile.StartKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
