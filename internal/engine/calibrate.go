package engine

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"go.uber.org/zap"

	"github.com/insightdelivered/statement-scraper/internal/layout"
	"github.com/insightdelivered/statement-scraper/internal/models"
)

// Header calibration constants. The scan region extends a little past
// the profile's header limit because column headers sit at its edge;
// the committed range pads the matched header's box to capture the
// data printed below it.
const (
	headerScanPadding  = 50.0
	headerLineEpsilon  = 5.0
	aliasScoreMin      = 90
	calibrateLeftPad   = 10.0
	calibrateRightPad  = 20.0
	calibrateShiftSig  = 20.0
)

// headerLine is one candidate header row: its concatenated text plus
// the horizontal extent of its tokens.
type headerLine struct {
	text   string
	x0, x1 float64
}

// calibrate fuzzy-matches each column's header aliases against the
// first page's header lines. A match must score above aliasScoreMin
// both ways: primary alias against line text, then matched text back
// against the column's full alias list. The refined range is committed
// into cols only when the engine was built with WithCalibration(true);
// otherwise it is logged and the hand-tuned defaults stand.
func (e *Engine) calibrate(page models.Page, cols []layout.Column) {
	if len(e.profile.HeaderAliases) == 0 {
		return
	}

	lines := headerCandidateLines(page, e.profile.Rules.HeaderYMax+headerScanPadding)
	if len(lines) == 0 {
		return
	}
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.text
	}

	for i := range cols {
		aliases := e.profile.HeaderAliases[cols[i].Name]
		if len(aliases) == 0 {
			continue
		}

		best, err := fuzzy.ExtractOne(aliases[0], texts)
		if err != nil || best == nil || best.Score <= aliasScoreMin {
			continue
		}
		matched := lines[indexOf(texts, best.Match)]

		// Re-validate against the full alias list so a strong match on
		// an unrelated phrase does not move the column.
		check, err := fuzzy.ExtractOne(best.Match, aliases)
		if err != nil || check == nil || check.Score <= aliasScoreMin {
			continue
		}

		newX0 := max(0, matched.x0-calibrateLeftPad)
		newX1 := matched.x1 + calibrateRightPad
		shifted := abs(cols[i].X0-newX0) > calibrateShiftSig || abs(cols[i].X1-newX1) > calibrateShiftSig

		e.log.Debug("header located",
			zap.String("column", cols[i].Name),
			zap.String("matched", best.Match),
			zap.Int("score", best.Score),
			zap.Float64("x0", newX0),
			zap.Float64("x1", newX1),
			zap.Bool("significantShift", shifted),
		)

		if e.applyCalibration {
			cols[i].X0 = newX0
			cols[i].X1 = newX1
		}
	}
}

// headerCandidateLines groups the page's header-region tokens into
// lines using the same vertical-proximity rule as the line builder,
// with a slightly wider band for multi-word headers like "Value Date".
func headerCandidateLines(page models.Page, limit float64) []headerLine {
	var tokens []models.Token
	for _, t := range page.Tokens {
		if t.Top < limit {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	var out []headerLine
	var group []models.Token
	for _, line := range buildLinesEpsilon(tokens, headerLineEpsilon) {
		group = line.Tokens
		out = append(out, headerLine{
			text: line.Text(),
			x0:   group[0].X0,
			x1:   group[len(group)-1].X1,
		})
	}
	return out
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return 0
}
