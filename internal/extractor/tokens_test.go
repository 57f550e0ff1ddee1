package extractor

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

const testPageHeight = 842.0

func TestTokensFromTextsWordAssembly(t *testing.T) {
	// "500.00" emitted as three adjacent runs on one baseline.
	texts := []pdf.Text{
		{X: 420, Y: 542, W: 16, S: "50"},
		{X: 436, Y: 542, W: 18, S: "0.0"},
		{X: 454, Y: 542, W: 8, S: "0"},
	}

	tokens := tokensFromTexts(texts, testPageHeight)
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	tok := tokens[0]
	if tok.Text != "500.00" {
		t.Errorf("Text = %q, want %q", tok.Text, "500.00")
	}
	if tok.X0 != 420 || tok.X1 != 462 {
		t.Errorf("extent = [%v,%v], want [420,462]", tok.X0, tok.X1)
	}
}

func TestTokensFromTextsGapSplitsWords(t *testing.T) {
	texts := []pdf.Text{
		{X: 70, Y: 542, W: 25, S: "UPI"},
		// 5 units of gap, past the join threshold.
		{X: 100, Y: 542, W: 60, S: "PAYMENT"},
	}

	tokens := tokensFromTexts(texts, testPageHeight)
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	if tokens[0].Text != "UPI" || tokens[1].Text != "PAYMENT" {
		t.Errorf("unexpected tokens: %v", tokens)
	}
}

func TestTokensFromTextsCoordinateFlip(t *testing.T) {
	// PDF Y grows upward from the bottom; token Top is measured from
	// the top of the page.
	texts := []pdf.Text{
		{X: 0, Y: 742, W: 40, S: "high"},
		{X: 0, Y: 100, W: 40, S: "low"},
	}

	tokens := tokensFromTexts(texts, testPageHeight)
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	if tokens[0].Text != "high" || tokens[0].Top != 100 {
		t.Errorf("first token = %q Top=%v, want %q Top=100", tokens[0].Text, tokens[0].Top, "high")
	}
	if tokens[1].Text != "low" || tokens[1].Top != 742 {
		t.Errorf("second token = %q Top=%v, want %q Top=742", tokens[1].Text, tokens[1].Top, "low")
	}
}

func TestTokensFromTextsBaselineGrouping(t *testing.T) {
	// Sub-epsilon Y jitter stays on one baseline; a real line break
	// does not join even when x ranges are adjacent.
	texts := []pdf.Text{
		{X: 70, Y: 542.0, W: 10, S: "A"},
		{X: 80.5, Y: 542.3, W: 10, S: "B"},
		{X: 90, Y: 530, W: 10, S: "C"},
	}

	tokens := tokensFromTexts(texts, testPageHeight)
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2: %v", len(tokens), tokens)
	}
	if tokens[0].Text != "AB" {
		t.Errorf("jittered runs should join: got %q", tokens[0].Text)
	}
	if tokens[1].Text != "C" {
		t.Errorf("next baseline must stand alone: got %q", tokens[1].Text)
	}
}

func TestTokensFromTextsDropsBlankRuns(t *testing.T) {
	texts := []pdf.Text{
		{X: 0, Y: 542, W: 5, S: "  "},
		{X: 10, Y: 542, W: 5, S: ""},
	}
	if tokens := tokensFromTexts(texts, testPageHeight); tokens != nil {
		t.Errorf("expected nil for blank input, got %v", tokens)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("/nonexistent/statement.pdf", "")
	if err == nil {
		t.Fatal("expected error")
	}
	openErr, ok := err.(*OpenError)
	if !ok {
		t.Fatalf("expected *OpenError, got %T", err)
	}
	if openErr.Path != "/nonexistent/statement.pdf" {
		t.Errorf("Path = %q", openErr.Path)
	}
	if openErr.Unwrap() == nil {
		t.Error("OpenError must wrap its cause")
	}
}
