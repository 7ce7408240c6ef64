package layout

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable is returned when a PDF yields no usable text.
var ErrUnreadable = errors.New("no readable text in PDF")

// Load reads a PDF file and groups its glyphs into positioned text blocks.
func Load(filePath string, p Params) (*Document, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filePath, err)
	}
	defer f.Close()

	doc, err := analyzeReader(r, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return doc, nil
}

// LoadBytes is Load for a PDF already held in memory.
func LoadBytes(data []byte, p Params) (*Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	return analyzeReader(r, p)
}

func analyzeReader(r *pdf.Reader, p Params) (doc *Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages: %w", ErrUnreadable)
	}

	pages := make([][]Glyph, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, t := range page.Content().Text {
			pages[i-1] = append(pages[i-1], Glyph{
				X:        t.X,
				Y:        t.Y,
				W:        t.W,
				FontSize: t.FontSize,
				S:        t.S,
			})
		}
	}

	doc = Analyze(pages, p)
	if !IsReadable(doc) {
		return nil, ErrUnreadable
	}
	return doc, nil
}

// textQuality returns the ratio of basic ASCII readable characters (a-z,
// A-Z, 0-9, common punctuation, whitespace) to total characters.
// unicode.IsLetter is too broad: it accepts the accented garbage that
// identity-encoded fonts decode to.
func textQuality(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(".,-/:;()'\"$%&@#!?+=*", r) {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords appear in virtually every bank statement.
var commonWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "deposit",
	"withdrawal", "checking", "opening", "closing", "transfer",
	"number", "page", "period",
}

// IsReadable reports whether doc holds enough plain text, mostly ASCII,
// containing at least one word expected on a statement.
func IsReadable(doc *Document) bool {
	text := doc.Text()
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
