package parser

import (
	"errors"
	"fmt"

	"github.com/insightdelivered/statement-parser/internal/layout"
)

// Document is the read-only view of a loaded statement the extractor walks.
type Document interface {
	FindExactText(s string) []layout.Element
	MoveForwards(from layout.Element, n int) (layout.Element, error)
}

// SectionLayout describes how an institution lays out a transaction section.
type SectionLayout struct {
	DebitsHeading  string
	CreditsHeading string
	// Continuation is the last line of every page-chunk that resumes on a later page.
	Continuation string
	// PageOffset is how many elements separate one page's chunk from the
	// next page's, skipping the page furniture in between.
	PageOffset int
}

// SectionExtractor returns the raw lines under a heading.
type SectionExtractor func(doc Document, title string, l SectionLayout) ([]string, error)

// ExtractSection collects the lines of the section headed by title across
// as many pages as it continues on. The first line of each chunk restates
// the column heading and is dropped, as is every continuation marker.
// A missing heading yields no lines and no error.
func ExtractSection(doc Document, title string, l SectionLayout) ([]string, error) {
	headings := doc.FindExactText(title)
	if len(headings) > 1 {
		return nil, fmt.Errorf("%q found %d times: %w", title, len(headings), ErrDuplicateHeading)
	}
	if len(headings) == 0 {
		return []string{}, nil
	}

	chunk, err := doc.MoveForwards(headings[0], 1)
	if err != nil {
		return nil, sectionErr(title, err)
	}

	lines := []string{}
	for {
		split := chunk.Lines()
		if split[len(split)-1] != l.Continuation {
			if len(split) > 1 {
				lines = append(lines, split[1:]...)
			}
			return lines, nil
		}

		if len(split) > 2 {
			lines = append(lines, split[1:len(split)-1]...)
		}
		if l.PageOffset < 1 {
			return nil, fmt.Errorf("%q continues but page offset is %d", title, l.PageOffset)
		}
		chunk, err = doc.MoveForwards(chunk, l.PageOffset)
		if err != nil {
			return nil, sectionErr(title, err)
		}
	}
}

func sectionErr(title string, err error) error {
	if errors.Is(err, layout.ErrNoElement) {
		return fmt.Errorf("%q: %w: %w", title, ErrSectionTruncated, err)
	}
	return fmt.Errorf("%q: %w", title, err)
}
