// Package testpdf writes small single-font PDFs for tests.
package testpdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

// Segment is a run of text starting at X on its line.
type Segment struct {
	X    float64
	Text string
}

// Line is drawn on baseline Y, measured up from the bottom of the page
// the way the loader reports positions.
type Line struct {
	Y        float64
	Segments []Segment
}

// Text is a one-segment line at x=50.
func Text(y float64, s string) Line {
	return Line{Y: y, Segments: []Segment{{X: 50, Text: s}}}
}

// Row is a table row: left text at x=50 and an amount at x=500.
func Row(y float64, left, amount string) Line {
	return Line{Y: y, Segments: []Segment{{X: 50, Text: left}, {X: 500, Text: amount}}}
}

// FontSize is the size every segment is drawn at.
const FontSize = 10

const pageHeight = 792 // US Letter, in points

// Build returns a Letter-sized PDF with one page per element of pages,
// every segment drawn in Helvetica.
func Build(pages [][]Line) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetFont("Helvetica", "", FontSize)
	for _, lines := range pages {
		doc.AddPage()
		for _, l := range lines {
			for _, seg := range l.Segments {
				doc.Text(seg.X, pageHeight-l.Y, seg.Text)
			}
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering test PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes Build(pages) to path.
func WriteFile(path string, pages [][]Line) error {
	data, err := Build(pages)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
