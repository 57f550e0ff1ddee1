package engine

import (
	"github.com/insightdelivered/statement-scraper/internal/layout"
	"github.com/insightdelivered/statement-scraper/internal/models"
)

// verdict is the boundary classification of one line.
type verdict int

const (
	verdictNoise verdict = iota
	verdictStart
	verdictContinuation
)

// accumulator owns the single open-record buffer for one document run.
// It is the explicit form of the engine's state machine: IDLE when
// open is nil, OPEN otherwise. Exactly one record may be open at a
// time; pages are fed in document order so a transaction can straddle
// a page break.
type accumulator struct {
	profile *layout.Profile
	columns []layout.Column

	open    map[string]string // nil ⇒ IDLE
	lastTop float64

	finalize func(map[string]string) models.Record // nil result drops the record
	out      []models.Record
}

func newAccumulator(p *layout.Profile, cols []layout.Column, finalize func(map[string]string) models.Record) *accumulator {
	return &accumulator{profile: p, columns: cols, finalize: finalize}
}

// feed advances the state machine by one classified line. flat is the
// line's column-assigned row; top its vertical position.
func (a *accumulator) feed(v verdict, flat map[string]string, top float64) {
	switch v {
	case verdictNoise:
		a.emit()

	case verdictStart:
		a.emit()
		a.open = copyRow(flat)
		a.lastTop = top

	case verdictContinuation:
		if a.open != nil {
			gap := top - a.lastTop
			if gap >= a.profile.Rules.ContinuationGap {
				// Too far below the open record to belong to it, and
				// not a start: the line is orphaned and dropped.
				return
			}
			a.lastTop = top
			a.merge(flat)
			return
		}
		// No open record. A continuation-shaped line that still
		// carries a reference is treated as a tentative start; the
		// emptiness check at finalize time discards duds.
		if a.hasReference(flat) {
			a.open = copyRow(flat)
			a.lastTop = top
		}
	}
}

// merge folds a continuation row into the open record. Each non-empty
// value is appended with a single space unless it repeats the
// accumulated text exactly.
func (a *accumulator) merge(flat map[string]string) {
	for _, col := range a.columns {
		v := flat[col.Name]
		if v == "" {
			continue
		}
		old := a.open[col.Name]
		if v == old {
			continue
		}
		if old == "" {
			a.open[col.Name] = v
		} else {
			a.open[col.Name] = old + " " + v
		}
	}
}

func (a *accumulator) hasReference(flat map[string]string) bool {
	for _, col := range a.columns {
		if col.Kind == layout.KindReference && flat[col.Name] != "" {
			return true
		}
	}
	return false
}

// emit finalizes and appends the open record, returning to IDLE.
func (a *accumulator) emit() {
	if a.open == nil {
		return
	}
	if rec := a.finalize(a.open); rec != nil {
		a.out = append(a.out, rec)
	}
	a.open = nil
}

// flush is the end-of-document terminal action.
func (a *accumulator) flush() []models.Record {
	a.emit()
	return a.out
}

func copyRow(flat map[string]string) map[string]string {
	c := make(map[string]string, len(flat))
	for k, v := range flat {
		c[k] = v
	}
	return c
}
