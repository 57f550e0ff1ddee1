package engine

import (
	"sort"
	"strings"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// lineEpsilon is the vertical proximity (in page units) within which
// tokens belong to the same visual row.
const lineEpsilon = 3.0

// Line is one visual row of text: tokens sorted ascending by X0,
// sharing a vertical band. Top is the leftmost token's baseline.
type Line struct {
	Tokens []models.Token
	Top    float64
}

// Text returns the space-joined token text in reading order.
func (l Line) Text() string {
	parts := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// buildLines groups a page's tokens into ordered lines by vertical
// proximity. Every token lands in exactly one line; lines come out
// sorted ascending by Top, tokens within a line ascending by X0.
func buildLines(tokens []models.Token) []Line {
	return buildLinesEpsilon(tokens, lineEpsilon)
}

func buildLinesEpsilon(tokens []models.Token, epsilon float64) []Line {
	if len(tokens) == 0 {
		return nil
	}

	sorted := make([]models.Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Top < sorted[j].Top })

	var lines []Line
	current := []models.Token{sorted[0]}
	for _, tok := range sorted[1:] {
		if abs(tok.Top-current[len(current)-1].Top) < epsilon {
			current = append(current, tok)
			continue
		}
		lines = append(lines, closeLine(current))
		current = []models.Token{tok}
	}
	return append(lines, closeLine(current))
}

func closeLine(tokens []models.Token) Line {
	sort.SliceStable(tokens, func(i, j int) bool { return tokens[i].X0 < tokens[j].X0 })
	return Line{Tokens: tokens, Top: tokens[0].Top}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
