// Package engine reconstructs a structured transaction table from the
// positioned text tokens of a statement document. It is parameterized
// by a layout profile and runs strictly sequentially per document:
// continuation detection depends on the previous line's position, so
// there is no intra-document parallelism. Engines hold no per-document
// state and may process documents concurrently from separate
// goroutines.
package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/insightdelivered/statement-scraper/internal/extractor"
	"github.com/insightdelivered/statement-scraper/internal/layout"
	"github.com/insightdelivered/statement-scraper/internal/models"
)

// Engine drives extraction for one layout profile.
type Engine struct {
	profile          *layout.Profile
	log              *zap.Logger
	applyCalibration bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger; default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithCalibration controls whether header calibration commits refined
// column bounds. Off by default: the computed shift is logged only and
// the profile's hand-tuned coordinates stand.
func WithCalibration(apply bool) Option {
	return func(e *Engine) { e.applyCalibration = apply }
}

// New builds an engine for the given bank profile. Unknown identifiers
// return layout.ErrUnknownProfile.
func New(id models.ProfileID, opts ...Option) (*Engine, error) {
	p, err := layout.New(id)
	if err != nil {
		return nil, err
	}
	e := &Engine{profile: p, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Profile returns the engine's layout profile.
func (e *Engine) Profile() *layout.Profile { return e.profile }

// Extract opens the document at path and reconstructs its transaction
// table. A nil error with an empty slice means the document parsed but
// no record passed the monetary retention rule; that is a legitimate
// outcome, distinct from an open failure (*extractor.OpenError).
func (e *Engine) Extract(path, password string) ([]models.Record, error) {
	doc, err := extractor.Open(path, password)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return e.ExtractPages(doc.Pages()), nil
}

// ExtractPages runs the reconstruction over already-extracted pages.
// Any internal fault is recovered at this boundary and converted to an
// empty result with a logged cause, so one bad document cannot crash a
// batch.
func (e *Engine) ExtractPages(pages []models.Page) (records []models.Record) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("extraction aborted by internal fault", zap.Any("cause", r))
			records = []models.Record{}
		}
	}()

	// Per-run copy: calibration may adjust bounds once, and the shared
	// profile must stay immutable.
	cols := make([]layout.Column, len(e.profile.Columns))
	copy(cols, e.profile.Columns)

	if len(pages) > 0 {
		e.calibrate(pages[0], cols)
	}

	acc := newAccumulator(e.profile, cols, e.finalize)

	for _, page := range pages {
		for _, line := range buildLines(page.Tokens) {
			text := line.Text()
			start := e.isStart(line, text)

			// Header furniture on the upper part of the page: a row
			// mentioning "Date" is the column header, not data.
			if line.Top < e.profile.Rules.HeaderYMax && strings.Contains(text, "Date") && !start {
				continue
			}

			// Start detection overrides noise classification.
			if e.isNoise(text, line.Top, page.Height) && !start {
				acc.feed(verdictNoise, nil, line.Top)
				continue
			}

			flat := assignColumns(line, cols)
			if len(flat) == 0 {
				continue
			}

			v := verdictContinuation
			if start {
				v = verdictStart
			}
			acc.feed(v, flat, line.Top)
		}
	}

	raw := acc.flush()
	raw = mergeSplitRecords(raw, e.profile)

	records = make([]models.Record, 0, len(raw))
	for _, rec := range raw {
		if e.retained(rec) {
			records = append(records, e.profile.NormalizeKeys(rec))
		}
	}
	e.log.Debug("extraction complete", zap.Int("records", len(records)))
	return records
}

// finalize cleans an accumulated row into a raw-keyed record, applying
// the profile's post-processing. Returns nil when the record carries
// no narration, reference or monetary value at all.
func (e *Engine) finalize(row map[string]string) models.Record {
	rec := make(models.Record, len(e.profile.Columns))
	for _, col := range e.profile.Columns {
		rec[col.Name] = e.profile.CleanField(col.Name, row[col.Name])
	}

	if e.empty(rec) {
		return nil
	}

	if e.profile.PostProcess != nil {
		rec = e.profile.PostProcess(rec)
	}
	return rec
}

func (e *Engine) empty(rec models.Record) bool {
	for _, col := range e.profile.Columns {
		switch col.Kind {
		case layout.KindNarration, layout.KindReference, layout.KindAmount, layout.KindBalance:
			if rec[col.Name] != "" {
				return false
			}
		}
	}
	return true
}

// retained keeps only records with an actual transaction amount; a
// balance alone is statement furniture.
func (e *Engine) retained(rec models.Record) bool {
	for _, col := range e.profile.ColumnsOfKind(layout.KindAmount) {
		if rec[col.Name] != "" {
			return true
		}
	}
	return false
}
