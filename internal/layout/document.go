// Package layout turns PDF pages into an ordered list of positioned text
// blocks and offers the lookups the statement parser walks over.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoElement is returned when a traversal moves past either end of the document.
var ErrNoElement = errors.New("no element at requested position")

// Element is one text block on a page. Index is its position in document order.
type Element struct {
	Index int
	Page  int
	X0    float64
	Y0    float64
	X1    float64
	Y1    float64
	Text  string
}

// Lines splits the element text on line breaks.
func (e Element) Lines() []string {
	return strings.Split(e.Text, "\n")
}

// Document is a read-only sequence of elements, ordered page by page.
type Document struct {
	Elements []Element
	NumPages int
}

// FindExactText returns every element whose text equals s.
func (d *Document) FindExactText(s string) []Element {
	var found []Element
	for _, el := range d.Elements {
		if el.Text == s {
			found = append(found, el)
		}
	}
	return found
}

// MoveForwards returns the element n positions after from, crossing page
// boundaries as needed.
func (d *Document) MoveForwards(from Element, n int) (Element, error) {
	if from.Index < 0 || from.Index >= len(d.Elements) {
		return Element{}, fmt.Errorf("element %d not in document: %w", from.Index, ErrNoElement)
	}
	idx := from.Index + n
	if idx < 0 || idx >= len(d.Elements) {
		return Element{}, fmt.Errorf("moving %d from element %d of %d: %w", n, from.Index, len(d.Elements), ErrNoElement)
	}
	return d.Elements[idx], nil
}

// Text joins every element's text, pages separated by blank lines.
func (d *Document) Text() string {
	var b strings.Builder
	page := 0
	for i, el := range d.Elements {
		if i > 0 {
			if el.Page != page {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}
		page = el.Page
		b.WriteString(el.Text)
	}
	return b.String()
}

// PageTexts returns the text of each page.
func (d *Document) PageTexts() []string {
	pages := make([]string, d.NumPages)
	for _, el := range d.Elements {
		if el.Page < 1 || el.Page > d.NumPages {
			continue
		}
		if pages[el.Page-1] != "" {
			pages[el.Page-1] += "\n"
		}
		pages[el.Page-1] += el.Text
	}
	return pages
}

// FromPages builds a document from text blocks already split per page.
// Positions are synthetic; each block sits below the previous one.
func FromPages(pages [][]string) *Document {
	doc := &Document{NumPages: len(pages)}
	for p, blocks := range pages {
		for b, text := range blocks {
			top := float64(800 - 20*b)
			doc.Elements = append(doc.Elements, Element{
				Index: len(doc.Elements),
				Page:  p + 1,
				X0:    0,
				Y0:    top - 10,
				X1:    600,
				Y1:    top,
				Text:  strings.TrimSpace(text),
			})
		}
	}
	return doc
}

// FromText builds a document from plain page texts. Blocks within a page
// are separated by one or more blank lines.
func FromText(pages []string) *Document {
	blocks := make([][]string, 0, len(pages))
	for _, page := range pages {
		var pageBlocks []string
		var cur []string
		flush := func() {
			if len(cur) > 0 {
				pageBlocks = append(pageBlocks, strings.Join(cur, "\n"))
				cur = nil
			}
		}
		for _, line := range strings.Split(strings.ReplaceAll(page, "\r\n", "\n"), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				flush()
				continue
			}
			cur = append(cur, line)
		}
		flush()
		blocks = append(blocks, pageBlocks)
	}
	return FromPages(blocks)
}
