// Package extractor turns a PDF statement into pages of positioned
// text tokens for the engine. It only handles documents with a real
// text layer; scanned/image-based statements are out of scope.
package extractor

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// OpenError reports a document that could not be opened or decrypted:
// wrong or missing password and corrupt structure both surface here.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Document is an open PDF. Close must be called on every exit path.
type Document struct {
	f *os.File
	r *pdf.Reader
}

// Open opens the PDF at path, decrypting with password when the file
// is protected. The password is tried once; there is no retry loop,
// interactive prompting is a front-end concern.
func Open(path, password string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}

	attempts := 0
	r, err := pdf.NewReaderEncrypted(f, fi.Size(), func() string {
		attempts++
		if attempts > 1 {
			return "" // stop: the supplied password was wrong
		}
		return password
	})
	if err != nil {
		f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	return &Document{f: f, r: r}, nil
}

// Close releases the underlying file handle.
func (d *Document) Close() error { return d.f.Close() }

// Pages extracts every page's positioned tokens in document order.
// Library faults on a single page are recovered; the page comes back
// empty rather than aborting the document.
func (d *Document) Pages() []models.Page {
	numPages := d.r.NumPage()
	pages := make([]models.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		pages = append(pages, d.extractPage(i))
	}
	return pages
}

func (d *Document) extractPage(num int) (page models.Page) {
	defer func() {
		if r := recover(); r != nil {
			page = models.Page{Width: defaultPageWidth, Height: defaultPageHeight}
		}
	}()

	p := d.r.Page(num)
	width, height := pageSize(p)
	page = models.Page{Width: width, Height: height}
	if p.V.IsNull() {
		return page
	}

	page.Tokens = tokensFromTexts(p.Content().Text, height)
	return page
}

// A4 fallback when the page tree carries no usable MediaBox.
const (
	defaultPageWidth  = 595.28
	defaultPageHeight = 841.89
)

// pageSize reads the page's MediaBox, climbing the page tree for
// inherited boxes.
func pageSize(p pdf.Page) (w, h float64) {
	v := p.V
	for depth := 0; !v.IsNull() && depth < 16; depth++ {
		box := v.Key("MediaBox")
		if !box.IsNull() && box.Len() == 4 {
			w = box.Index(2).Float64() - box.Index(0).Float64()
			h = box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}

// wordJoinGap is the maximum horizontal gap (page units) between two
// text runs on the same baseline that still belong to one word. PDF
// generators frequently emit words as several show-text operations.
const wordJoinGap = 2.0

// baselineEpsilon groups raw text runs onto a shared baseline before
// word assembly.
const baselineEpsilon = 0.5

// tokensFromTexts converts the library's raw text runs into word-level
// tokens with a top-left origin: PDF Y grows upward, token Top is the
// distance from the top of the page.
func tokensFromTexts(texts []pdf.Text, pageHeight float64) []models.Token {
	runs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			runs = append(runs, t)
		}
	}
	if len(runs) == 0 {
		return nil
	}

	// Baseline-major, then left-to-right.
	sort.SliceStable(runs, func(i, j int) bool {
		if di := runs[i].Y - runs[j].Y; di > baselineEpsilon || di < -baselineEpsilon {
			return runs[i].Y > runs[j].Y // higher on the page first
		}
		return runs[i].X < runs[j].X
	})

	var tokens []models.Token
	cur := tokenFromRun(runs[0], pageHeight)
	curY := runs[0].Y
	for _, r := range runs[1:] {
		sameBaseline := abs(r.Y-curY) <= baselineEpsilon
		if sameBaseline && r.X-cur.X1 <= wordJoinGap {
			cur.Text += r.S
			cur.X1 = r.X + r.W
			continue
		}
		tokens = append(tokens, cur)
		cur = tokenFromRun(r, pageHeight)
		curY = r.Y
	}
	return append(tokens, cur)
}

func tokenFromRun(t pdf.Text, pageHeight float64) models.Token {
	return models.Token{
		Text: t.S,
		X0:   t.X,
		X1:   t.X + t.W,
		Top:  pageHeight - t.Y,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
